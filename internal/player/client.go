// package player wraps the streaming service's player endpoints with a thin
// operation set: get-current, skip, and pause.
package player

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ohess/heartbroken/internal/auth"
	"github.com/ohess/heartbroken/internal/shared"
	"golang.org/x/oauth2"
)

// restrictionViolated is the service's transient-conflict signal: the user
// interacted with the player while a command of ours was in flight.
const restrictionViolated = "Player command failed: Restriction violated"

// Client is the authenticated playback session. It tracks the current and
// previous track snapshots; previous is only replaced when the incoming
// track id differs, so repeats do not clobber history.
type Client struct {
	apiURL       string
	tokens       *auth.Manager
	logger       *log.Logger
	compensation time.Duration

	base    *http.Client
	session *http.Client

	current  *Track
	previous *Track
}

// NewClient creates a playback client. The session is not established until
// [Client.Connect] succeeds.
func NewClient(config *shared.Config, tokens *auth.Manager, logger *log.Logger) *Client {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		apiURL:       config.Account.APIURL,
		tokens:       tokens,
		logger:       logger,
		compensation: time.Duration(config.Watch.DelayCompensationMS) * time.Millisecond,
		base:         http.DefaultClient,
	}
}

// Connect ensures a usable access token and builds the bearer session.
//
// Returns [shared.ErrNoCredentials] when the authorization handshake still
// has to be run.
func (c *Client) Connect(ctx context.Context) error {
	accessToken, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	c.session = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	return nil
}

// CurrentTrack returns the latest poll result, nil when nothing is playing.
func (c *Client) CurrentTrack() *Track { return c.current }

// PreviousTrack returns the last distinct track snapshot.
func (c *Client) PreviousTrack() *Track { return c.previous }

// ready fails soft when no session has been established.
func (c *Client) ready(op string) error {
	if c.session == nil {
		c.logger.Warnf("playback session was uninitialized while trying to call %s", op)
		return shared.ErrNotReady
	}
	return nil
}

// Current fetches the current playback state.
//
// Returns (nil, nil) when nothing is playing, the response was empty, or
// the played item is not a track. On success the current snapshot is
// replaced, and the previous one only when the track id changed.
func (c *Client) Current(ctx context.Context) (*Track, error) {
	if err := c.ready("Current"); err != nil {
		return nil, err
	}

	resp, body, err := c.do(ctx, http.MethodGet, "/me/player/currently-playing")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("something went wrong while requesting the current song",
			"status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		c.current = nil
		return nil, nil
	}

	var playback playbackResponse
	if err := json.Unmarshal(body, &playback); err != nil {
		c.logger.Error("unexpected response while requesting the current song", "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	track := newTrack(&playback)
	if track == nil {
		c.current = nil
		return nil, nil
	}

	if c.current != nil && c.current.ID != track.ID {
		c.previous = c.current
	}
	c.current = track

	return track, nil
}

// Skip requests the next track and re-fetches the new playback state.
//
// A 403 carrying the restriction-violated message is a transient conflict,
// absorbed by waiting the compensation delay and re-fetching instead of
// failing.
func (c *Client) Skip(ctx context.Context) (*Track, error) {
	if err := c.ready("Skip"); err != nil {
		return nil, err
	}

	resp, body, err := c.do(ctx, http.MethodPost, "/me/player/next")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusForbidden {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message == restrictionViolated {
			sleepContext(ctx, c.compensation)
			return c.Current(ctx)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("something went wrong while trying to skip the current song",
			"status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	// Give the player a moment to settle before reading the new state.
	sleepContext(ctx, c.compensation)

	return c.Current(ctx)
}

// Stop pauses playback. On success the current snapshot moves to previous
// and current becomes nil.
func (c *Client) Stop(ctx context.Context) error {
	if err := c.ready("Stop"); err != nil {
		return err
	}

	resp, body, err := c.do(ctx, http.MethodPut, "/me/player/pause")
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("something went wrong while trying to stop playback",
			"status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	c.previous = c.current
	c.current = nil

	return nil
}

// do performs one authenticated request and reads the full body.
func (c *Client) do(ctx context.Context, method, endpoint string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp, body, nil
}

// sleepContext sleeps for d unless the context is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
