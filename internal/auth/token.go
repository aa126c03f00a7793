// package auth owns access/refresh token state, expiry checking, broker
// refresh retries, and the one-time interactive authorization handshake.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ohess/heartbroken/internal/shared"
)

// expiryMarginSeconds is the safety margin applied when deciding whether a
// token is expired, so a token is never presented right at its deadline.
const expiryMarginSeconds = 1

// Token holds the credential state persisted between runs.
//
// ExpiresAt is absolute epoch seconds, recomputed as issue time plus
// ExpiresIn on every refresh or exchange.
type Token struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int64   `json:"expires_in"`
	ExpiresAt    float64 `json:"expires_at"`
}

// Expired reports whether the token is expired at the given instant.
// A token within the one second safety margin counts as expired.
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt-float64(now.UnixNano())/float64(time.Second) <= expiryMarginSeconds
}

// FileStore persists a [Token] as a single JSON file, rewritten wholesale on
// every save.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Load reads the persisted token state.
//
// Returns [shared.ErrNoCredentials] if the file does not exist.
func (s *FileStore) Load() (*Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, shared.ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return &token, nil
}

// Save stamps the token's ExpiresAt from the current time and ExpiresIn,
// then rewrites the credentials file.
func (s *FileStore) Save(token *Token) error {
	token.ExpiresAt = float64(s.now().UnixNano())/float64(time.Second) + float64(token.ExpiresIn)

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	return nil
}
