package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ohess/heartbroken/internal/shared"
)

const (
	defaultRefreshAttempts = 21
	defaultRetryDelay      = 3 * time.Second
)

// BrokerClient talks to the remote token broker that holds the client secret
// and issues access tokens on our behalf.
type BrokerClient struct {
	tokenURL   string
	authKey    string
	httpClient *http.Client
	logger     *log.Logger

	attempts   int
	retryDelay time.Duration
}

// NewBrokerClient creates a broker client for the given token endpoint.
// The HTTP client defaults to [http.DefaultClient].
func NewBrokerClient(config shared.BrokerConfig, client *http.Client, logger *log.Logger) *BrokerClient {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &BrokerClient{
		tokenURL:   config.TokenURL,
		authKey:    config.AuthKey,
		httpClient: client,
		logger:     logger,
		attempts:   defaultRefreshAttempts,
		retryDelay: defaultRetryDelay,
	}
}

type refreshRequest struct {
	AuthKey      string `json:"auth_key"`
	RefreshToken string `json:"refresh_token"`
}

type exchangeRequest struct {
	GrantType    string  `json:"grant_type"`
	OAuthCode    string  `json:"oauth_code"`
	RefreshToken *string `json:"refresh_token"`
	AuthKey      string  `json:"auth_key"`
}

// Refresh requests a fresh access token using the stored refresh token.
//
// Retries up to the configured attempt budget, sleeping between failures.
// Returns [shared.ErrBrokerExhausted] once the final attempt fails; the
// caller is expected to treat that as unrecoverable.
func (b *BrokerClient) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	body := refreshRequest{AuthKey: b.authKey, RefreshToken: refreshToken}

	for attempt := 1; ; attempt++ {
		token, status, err := b.post(ctx, body)
		if err == nil {
			return token, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt >= b.attempts {
			b.logger.Error("token broker refresh failed on final attempt", "status", status)
			return nil, fmt.Errorf("%w: HTTP %d", shared.ErrBrokerExhausted, status)
		}

		b.logger.Warnf("failed to get access token from broker (attempt %d/%d)", attempt, b.attempts)

		select {
		case <-time.After(b.retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Exchange trades an authorization code for a refresh/access token pair.
// Single attempt; a non-200 response is an authorization failure.
func (b *BrokerClient) Exchange(ctx context.Context, code string) (*Token, error) {
	body := exchangeRequest{GrantType: "authorization_code", OAuthCode: code, AuthKey: b.authKey}

	token, status, err := b.post(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("%w: HTTP %d", shared.ErrAuthFailed, status)
	}

	return token, nil
}

// post sends one JSON request to the token endpoint and decodes the token
// response. Returns the HTTP status alongside any failure.
func (b *BrokerClient) post(ctx context.Context, body any) (*Token, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal broker request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create broker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("broker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode broker response: %w", err)
	}

	return &token, resp.StatusCode, nil
}
