package watch

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ohess/heartbroken/internal/auth"
	"github.com/ohess/heartbroken/internal/player"
	"github.com/ohess/heartbroken/internal/shared"
	"github.com/ohess/heartbroken/internal/store"
)

// Actions are the on-demand dislike/un-dislike operations triggered from
// the control panel or the CLI. Each invocation builds its own short-lived
// authenticated session instead of sharing the watch loop's.
type Actions struct {
	config *shared.Config
	tokens *auth.Manager
	store  *store.Store
	logger *log.Logger
}

// NewActions creates the action set.
func NewActions(config *shared.Config, tokens *auth.Manager, dislikes *store.Store, logger *log.Logger) *Actions {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Actions{config: config, tokens: tokens, store: dislikes, logger: logger}
}

// Dislike records the currently playing item of the given kind as disliked,
// then skips it.
func (a *Actions) Dislike(ctx context.Context, kind store.Kind) (string, error) {
	current, err := player.CurrentOnce(ctx, a.config, a.tokens, a.logger)
	if err != nil {
		return "", fmt.Errorf("could not establish session; is your account connected? (%w)", err)
	}
	if current == nil {
		return "", fmt.Errorf("cannot dislike %s: %w", kind, shared.ErrNothingPlaying)
	}

	var name string
	switch kind {
	case store.KindArtist:
		err = a.store.Add(store.KindArtist, current.ArtistIDs()...)
		name = current.ArtistList()
	case store.KindAlbum:
		err = a.store.Add(store.KindAlbum, current.AlbumID)
		name = current.Album
	case store.KindTrack:
		err = a.store.Add(store.KindTrack, current.ID)
		name = current.Name
	default:
		return "", fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidArgument, kind)
	}
	if err != nil {
		return "", fmt.Errorf("something went wrong while disliking the %s: %w", kind, err)
	}

	a.logger.Info("disliked, skipping", "kind", kind, "name", name)

	if err := player.SkipOnce(ctx, a.config, a.tokens, a.logger); err != nil {
		return "", fmt.Errorf("disliked the %s but failed to skip it: %w", kind, err)
	}

	return fmt.Sprintf("disliked %s %q, skipped", kind, name), nil
}

// Undislike removes the dislike record(s) for the currently playing item of
// the given kind.
func (a *Actions) Undislike(ctx context.Context, kind store.Kind) (string, error) {
	current, err := player.CurrentOnce(ctx, a.config, a.tokens, a.logger)
	if err != nil {
		return "", fmt.Errorf("could not establish session; is your account connected? (%w)", err)
	}
	if current == nil {
		return "", fmt.Errorf("cannot un-dislike %s: %w", kind, shared.ErrNothingPlaying)
	}

	var name string
	switch kind {
	case store.KindArtist:
		err = a.store.RemoveArtists(current.ArtistIDs()...)
		name = current.ArtistList()
	case store.KindAlbum:
		err = a.store.Remove("", current.AlbumID)
		name = current.Album
	case store.KindTrack:
		err = a.store.Remove(current.ID, "")
		name = current.Name
	default:
		return "", fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidArgument, kind)
	}
	if err != nil {
		return "", fmt.Errorf("something went wrong while un-disliking the %s: %w", kind, err)
	}

	return fmt.Sprintf("un-disliked %s %q", kind, name), nil
}
