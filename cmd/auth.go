package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ohess/heartbroken/internal/player"
	"github.com/ohess/heartbroken/internal/shared"
	"github.com/ohess/heartbroken/internal/watch"
	"github.com/urfave/cli/v3"
)

// Auth runs the interactive authorization handshake and persists the
// resulting credentials.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadIfSet(cmd); err != nil {
		return err
	}

	if r.config.Account.ClientID == "" {
		return fmt.Errorf("%w: account.client_id is not set, run 'heartbroken setup' first", shared.ErrInvalidConfig)
	}

	r.logger.Info("starting authorization handshake")

	if _, err := r.tokens.Authorize(ctx); err != nil {
		return cli.Exit(fmt.Sprintf("authorization failed: %v", err), watch.ExitAuthStartup)
	}

	return r.writePlain("✓ Account connected\n")
}

// statusReport is the status command's output shape.
type statusReport struct {
	Connected    bool   `json:"connected"`
	TokenExpired bool   `json:"token_expired"`
	NowPlaying   string `json:"now_playing"`
}

// Status reports credential state and the currently playing track.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadIfSet(cmd); err != nil {
		return err
	}

	report := statusReport{}

	if _, err := os.Stat(r.config.Storage.CredentialsPath); err == nil {
		report.Connected = true
		report.TokenExpired = r.tokens.Expired()
	}

	if report.Connected {
		current, err := player.CurrentOnce(ctx, r.config, r.tokens, r.logger)
		if err != nil {
			if errors.Is(err, shared.ErrBrokerExhausted) {
				return cli.Exit(fmt.Sprintf("token refresh failed: %v", err), watch.ExitTokenInvalid)
			}
			r.logger.Warn("could not fetch playback state", "error", err)
		}
		report.NowPlaying = current.String()
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	if !report.Connected {
		r.writePlain("✗ Not connected\n")
		return r.writePlain("Run 'heartbroken auth' to connect your account\n")
	}

	r.writePlain("✓ Connected\n")
	if report.TokenExpired {
		r.writePlain("Token: expired, will refresh on next request\n")
	} else {
		r.writePlain("Token: valid\n")
	}
	return r.writePlain("Now playing: %s\n", report.NowPlaying)
}
