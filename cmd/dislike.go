package main

import (
	"context"
	"fmt"

	"github.com/ohess/heartbroken/internal/shared"
	"github.com/ohess/heartbroken/internal/store"
	"github.com/ohess/heartbroken/internal/watch"
	"github.com/urfave/cli/v3"
)

// kindArg parses and validates the track|album|artist positional argument.
func kindArg(cmd *cli.Command) (store.Kind, error) {
	switch raw := cmd.StringArg("kind"); raw {
	case "track":
		return store.KindTrack, nil
	case "album":
		return store.KindAlbum, nil
	case "artist":
		return store.KindArtist, nil
	case "":
		return "", fmt.Errorf("%w: expected track, album, or artist", shared.ErrInvalidArgument)
	default:
		return "", fmt.Errorf("%w: %q is not track, album, or artist", shared.ErrInvalidArgument, raw)
	}
}

// Dislike records the currently playing item as disliked and skips it.
func (r *Runner) Dislike(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadIfSet(cmd); err != nil {
		return err
	}

	kind, err := kindArg(cmd)
	if err != nil {
		return err
	}

	actions := watch.NewActions(r.config, r.tokens, r.store, r.logger)
	status, err := actions.Dislike(ctx, kind)
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s\n", status)
}

// Undislike removes the dislike record for the currently playing item.
func (r *Runner) Undislike(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadIfSet(cmd); err != nil {
		return err
	}

	kind, err := kindArg(cmd)
	if err != nil {
		return err
	}

	actions := watch.NewActions(r.config, r.tokens, r.store, r.logger)
	status, err := actions.Undislike(ctx, kind)
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s\n", status)
}
