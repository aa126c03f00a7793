package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ohess/heartbroken/internal/player"
	"github.com/ohess/heartbroken/internal/shared"
	"github.com/ohess/heartbroken/internal/ui"
	"github.com/ohess/heartbroken/internal/watch"
	"github.com/urfave/cli/v3"
)

// Watch starts the playback watch loop, interactively unless --headless.
//
// Exit codes follow the loop's: 0 on a clean shutdown, 1 when the account
// cannot be connected at startup, 2 when the token becomes invalid mid-run,
// 3 when the dislike store cannot be initialized.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadIfSet(cmd); err != nil {
		return err
	}

	if err := r.store.Init(); err != nil {
		return cli.Exit(fmt.Sprintf("dislike store unavailable: %v", err), watch.ExitStoreFailed)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	headless := cmd.Bool("headless")
	if !headless {
		// Logs go to a file while bubbletea owns the terminal.
		fileLogger, err := shared.NewFileLogger("./tmp/heartbroken.log")
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		r.SetLogger(fileLogger)
	}

	client := player.NewClient(r.config, r.tokens, r.logger)
	if err := r.connect(ctx, client); err != nil {
		return cli.Exit(fmt.Sprintf("could not connect your account: %v", err), watch.ExitAuthStartup)
	}

	loop := watch.New(watch.Options{
		Client:   client,
		Dislikes: r.store,
		Tokens:   r.tokens,
		Logger:   r.logger,
		Interval: time.Duration(r.config.Watch.RequestIntervalSeconds) * time.Second,
	})

	var code int
	if headless {
		code = loop.Run(ctx)
	} else {
		var err error
		if code, err = r.runPanel(ctx, loop); err != nil {
			return err
		}
	}

	if code != watch.ExitNormal {
		return cli.Exit("watch loop terminated", code)
	}
	return nil
}

// connect establishes the playback session, running the authorization
// handshake first if no credentials are persisted yet.
func (r *Runner) connect(ctx context.Context, client *player.Client) error {
	err := client.Connect(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNoCredentials) {
		return err
	}

	r.logger.Info("no stored credentials, starting authorization handshake")
	if _, err := r.tokens.Authorize(ctx); err != nil {
		return err
	}

	return client.Connect(ctx)
}

// runPanel runs the loop alongside the interactive control panel. Whichever
// finishes first tears the other down.
func (r *Runner) runPanel(ctx context.Context, loop *watch.Loop) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := watch.NewActions(r.config, r.tokens, r.store, r.logger)
	model := ui.NewModel(ctx, actions, loop.Gate(), loop.NowPlaying)
	program := tea.NewProgram(model)

	codes := make(chan int, 1)
	go func() {
		codes <- loop.Run(ctx)
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-codes
		return 0, fmt.Errorf("error running control panel: %w", err)
	}

	cancel()
	return <-codes, nil
}
