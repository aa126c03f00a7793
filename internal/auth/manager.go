package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ohess/heartbroken/internal/server"
	"github.com/ohess/heartbroken/internal/shared"
	"golang.org/x/oauth2"
)

// authorizeTimeout bounds the wait for the loopback callback during the
// interactive handshake.
const authorizeTimeout = 100 * time.Second

// Manager drives the token lifecycle: expiry checks, refresh against the
// broker, and the one-time interactive authorization handshake.
type Manager struct {
	account shared.AccountConfig
	broker  *BrokerClient
	store   *FileStore
	logger  *log.Logger

	openBrowser func(string) error
	waitTimeout time.Duration
	now         func() time.Time
}

// NewManager creates a Manager with the given account settings, broker
// client, and credential store.
func NewManager(account shared.AccountConfig, broker *BrokerClient, store *FileStore, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Manager{
		account:     account,
		broker:      broker,
		store:       store,
		logger:      logger,
		openBrowser: shared.OpenBrowser,
		waitTimeout: authorizeTimeout,
		now:         time.Now,
	}
}

// Expired reports whether the persisted token is missing or past its expiry
// margin.
func (m *Manager) Expired() bool {
	token, err := m.store.Load()
	if err != nil {
		return true
	}
	return token.Expired(m.now())
}

// AccessToken returns a usable access token.
//
// If no credentials are persisted, or they carry no refresh token, it
// returns [shared.ErrNoCredentials] and the caller must run [Manager.Authorize].
// A non-expired token is returned as-is. An expired one is refreshed through
// the broker; the refresh token is carried over and the new state persisted.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	token, err := m.store.Load()
	if err != nil {
		if errors.Is(err, shared.ErrNoCredentials) {
			return "", shared.ErrNoCredentials
		}
		return "", err
	}

	if token.RefreshToken == "" {
		return "", shared.ErrNoCredentials
	}

	if !token.Expired(m.now()) {
		return token.AccessToken, nil
	}

	m.logger.Info("access token expired, acquiring new token")

	fresh, err := m.broker.Refresh(ctx, token.RefreshToken)
	if err != nil {
		return "", err
	}

	fresh.RefreshToken = token.RefreshToken
	if err := m.store.Save(fresh); err != nil {
		return "", err
	}

	return fresh.AccessToken, nil
}

// Authorize runs the interactive authorization handshake: it opens the
// consent URL in the user's browser, receives the authorization code on a
// short-lived loopback listener, exchanges it at the broker, and persists
// the resulting token pair.
//
// The listener accepts a single callback and is torn down after delivering
// it, or after the wait timeout elapses.
func (m *Manager) Authorize(ctx context.Context) (*Token, error) {
	state := shared.GenerateState()

	config := &oauth2.Config{
		ClientID:    m.account.ClientID,
		RedirectURL: m.account.RedirectURI(),
		Scopes:      []string{m.account.Scope},
		Endpoint:    oauth2.Endpoint{AuthURL: m.account.AuthURL},
	}
	authURL := config.AuthCodeURL(state)

	handler := server.NewCallbackHandler(state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(m.logger))
	router.Handler(handler)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", m.account.CallbackPort),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		m.logger.Info("starting authorization callback listener", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	if err := m.openBrowser(authURL); err != nil {
		m.logger.Warn("failed to open browser automatically", "error", err)
		m.logger.Warnf("open this URL in your browser: %s", authURL)
	}

	timeout := time.NewTimer(m.waitTimeout)
	defer timeout.Stop()

	var result server.CallbackResult
	var waitErr error

	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		waitErr = fmt.Errorf("callback listener error: %w", err)
	case <-timeout.C:
		waitErr = fmt.Errorf("%w: no authorization callback received", shared.ErrTimeout)
	case <-ctx.Done():
		waitErr = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		m.logger.Warn("error shutting down callback listener", "error", err)
	}

	if waitErr != nil {
		return nil, waitErr
	}
	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	token, err := m.broker.Exchange(ctx, result.Code)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(token); err != nil {
		return nil, err
	}

	return token, nil
}
