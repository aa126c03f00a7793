package main

import (
	"context"
	"os"

	"github.com/ohess/heartbroken/internal/shared"
	"github.com/ohess/heartbroken/internal/watch"
	"github.com/urfave/cli/v3"
)

// Setup initializes the configuration file and the dislike store.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		if err := r.reload(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
			if err := r.reload(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
			}
		}
	}

	r.logger.Info("initializing dislike store", "path", r.config.Storage.DatabasePath)

	if err := r.store.Init(); err != nil {
		return cli.Exit(err, watch.ExitStoreFailed)
	}

	r.writePlain("✓ Setup complete\n")
	r.writePlain("Config: %s\n", configPath)
	r.writePlain("Dislike store: %s\n", r.config.Storage.DatabasePath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Fill in account.client_id and broker settings in %s\n", configPath)
	r.writePlain("2. Run 'heartbroken auth' to connect your account\n")
	r.writePlain("3. Run 'heartbroken run' to start watching playback\n")

	return nil
}
