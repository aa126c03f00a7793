package player

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/ohess/heartbroken/internal/auth"
	"github.com/ohess/heartbroken/internal/shared"
)

// One-shot variants for callers without a live session, such as control
// panel actions and CLI subcommands. Each call builds its own short-lived
// authenticated session rather than sharing the watch loop's.

// CurrentOnce fetches the currently playing track with a fresh session.
func CurrentOnce(ctx context.Context, config *shared.Config, tokens *auth.Manager, logger *log.Logger) (*Track, error) {
	client := NewClient(config, tokens, logger)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client.Current(ctx)
}

// SkipOnce skips the currently playing track with a fresh session.
func SkipOnce(ctx context.Context, config *shared.Config, tokens *auth.Manager, logger *log.Logger) error {
	client := NewClient(config, tokens, logger)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	_, err := client.Skip(ctx)
	return err
}
