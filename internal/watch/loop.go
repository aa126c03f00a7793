// package watch runs the polling state machine that detects track changes,
// classifies them against the dislike store, and skips matches.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ohess/heartbroken/internal/player"
	"github.com/ohess/heartbroken/internal/shared"
	"github.com/ohess/heartbroken/internal/store"
	"golang.org/x/time/rate"
)

// Process exit codes for the loop's outer driver.
const (
	ExitNormal       = 0 // normal shutdown
	ExitAuthStartup  = 1 // authorization failed at startup
	ExitTokenInvalid = 2 // token became invalid mid-run
	ExitStoreFailed  = 3 // persistent store could not be initialized
)

// Playback is the slice of the playback client the loop depends on.
type Playback interface {
	Connect(ctx context.Context) error
	Current(ctx context.Context) (*player.Track, error)
	Skip(ctx context.Context) (*player.Track, error)
	Stop(ctx context.Context) error
	CurrentTrack() *player.Track
	PreviousTrack() *player.Track
}

// Classifier matches a track snapshot against the dislike store.
type Classifier interface {
	Classify(track *player.Track) (store.Match, error)
}

// TokenSource reports whether the persisted token has expired.
type TokenSource interface {
	Expired() bool
}

// pollResult is the outcome of one skip-if-disliked invocation.
type pollResult int

const (
	pollIdle    pollResult = iota // nothing playing, or an error ended the poll
	pollPlaying                   // a track that is not disliked is playing
)

// Options configures a [Loop].
type Options struct {
	Client   Playback
	Dislikes Classifier
	Tokens   TokenSource
	Gate     *Gate
	Logger   *log.Logger
	Interval time.Duration // fixed inter-request interval, default 1s
}

// Loop is the skip control loop.
type Loop struct {
	client   Playback
	dislikes Classifier
	tokens   TokenSource
	gate     *Gate
	logger   *log.Logger
	limiter  *rate.Limiter
	backoff  Backoff

	backingOff bool
	lastLogged *player.Track

	mu         sync.RWMutex
	nowPlaying *player.Track

	sleep func(ctx context.Context, d time.Duration)
}

// New creates a Loop from the given options.
func New(opts Options) *Loop {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Gate == nil {
		opts.Gate = NewGate()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}

	return &Loop{
		client:   opts.Client,
		dislikes: opts.Dislikes,
		tokens:   opts.Tokens,
		gate:     opts.Gate,
		logger:   opts.Logger,
		limiter:  rate.NewLimiter(rate.Every(opts.Interval), 1),
		sleep:    sleepContext,
	}
}

// Gate returns the loop's run/pause gate.
func (l *Loop) Gate() *Gate { return l.gate }

// NowPlaying returns the most recent track the loop saw playing, nil while
// idle. Safe for use from other goroutines.
func (l *Loop) NowPlaying() *player.Track {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nowPlaying
}

func (l *Loop) setNowPlaying(track *player.Track) {
	l.mu.Lock()
	l.nowPlaying = track
	l.mu.Unlock()
}

// Run drives the polling loop until the context is cancelled or the token
// becomes unrecoverable. The return value is the process exit code.
func (l *Loop) Run(ctx context.Context) int {
	// Prime the session state before the first iteration.
	if _, err := l.client.Current(ctx); err != nil {
		l.logger.Warn("initial playback poll failed", "error", err)
	}

	for {
		if err := l.gate.Wait(ctx); err != nil {
			return ExitNormal
		}

		if l.tokens.Expired() {
			if err := l.client.Connect(ctx); err != nil {
				l.logger.Error("something went wrong while trying to connect your account", "error", err)
				return ExitTokenInvalid
			}
		}

		switch l.skipIfDisliked(ctx) {
		case pollIdle:
			if !l.backingOff {
				l.logger.Info("nothing is currently playing, waiting...")
			}
			l.backingOff = true
			l.setNowPlaying(nil)
			l.sleep(ctx, l.backoff.Next())

		case pollPlaying:
			current := l.client.CurrentTrack()
			l.setNowPlaying(current)
			// A playing poll always ends the idle streak, even when the
			// track is one we already logged; only the log line is
			// suppressed for repeats.
			l.backoff.Reset()
			l.backingOff = false
			if current != nil && (l.lastLogged == nil || current.ID != l.lastLogged.ID) {
				l.logger.Info("currently playing", "track", current.String())
				l.lastLogged = current
			}
		}

		if ctx.Err() != nil {
			return ExitNormal
		}

		// Keep things nice rate-limiting-wise. Rely on back-off delay otherwise.
		if !l.backingOff {
			if err := l.limiter.Wait(ctx); err != nil {
				return ExitNormal
			}
		}
	}
}

// skipIfDisliked fetches the current track and keeps skipping while the
// track reached is disliked, so a run of disliked tracks is cleared in one
// invocation.
//
// A per-call set of skipped ids bounds the burst: reaching an id already
// skipped means the queue loops over disliked tracks only, and playback is
// stopped outright to break the cycle.
func (l *Loop) skipIfDisliked(ctx context.Context) pollResult {
	if _, err := l.client.Current(ctx); err != nil {
		return pollIdle
	}

	current := l.client.CurrentTrack()
	if current == nil {
		return pollIdle
	}

	if previous := l.client.PreviousTrack(); previous != nil && current.ID == previous.ID {
		return pollPlaying
	}

	skipped := make(map[string]bool)

	for {
		current = l.client.CurrentTrack()

		match, err := l.dislikes.Classify(current)
		if err != nil {
			return pollIdle
		}

		current.TrackHeartbroken = match.Found && match.Kind == store.KindTrack
		current.AlbumHeartbroken = match.Found && match.Kind == store.KindAlbum
		current.ArtistHeartbroken = match.Found && match.Kind == store.KindArtist

		if !match.Found {
			return pollPlaying
		}

		switch match.Kind {
		case store.KindTrack:
			l.logger.Info("skipping disliked track", "name", current.Name)
		case store.KindAlbum:
			l.logger.Info("skipping disliked album", "name", current.Album)
		case store.KindArtist:
			l.logger.Info("skipping disliked artist", "name", current.ArtistList())
		}

		skipped[current.ID] = true

		next, err := l.client.Skip(ctx)
		if err != nil {
			l.logger.Error("something went wrong while skipping disliked item", "kind", match.Kind, "error", err)
			return pollIdle
		}
		if next == nil {
			return pollIdle
		}

		if skipped[next.ID] {
			l.logger.Warn("current track has been skipped previously in the current queue; stopping playback to prevent an infinite loop")
			if err := l.client.Stop(ctx); err != nil {
				l.logger.Error("failed to stop playback", "error", err)
			}
			return pollIdle
		}
	}
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
