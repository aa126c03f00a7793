// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/ohess/heartbroken/internal/player"
	"github.com/ohess/heartbroken/internal/store"
)

// FakePlayback is a test double for the watch loop's playback dependency.
// It serves tracks from a circular queue: Skip advances the position, so a
// fully disliked queue naturally cycles back to an already-skipped id.
type FakePlayback struct {
	Queue      []*player.Track
	Pos        int
	Skips      int
	Stopped    bool
	ConnectErr error
	CurrentErr error
	SkipErr    error

	current  *player.Track
	previous *player.Track
}

func (f *FakePlayback) Connect(ctx context.Context) error { return f.ConnectErr }

func (f *FakePlayback) Current(ctx context.Context) (*player.Track, error) {
	if f.CurrentErr != nil {
		return nil, f.CurrentErr
	}
	if len(f.Queue) == 0 {
		f.current = nil
		return nil, nil
	}

	track := f.Queue[f.Pos]
	if f.current != nil && f.current.ID != track.ID {
		f.previous = f.current
	}
	f.current = track
	return track, nil
}

func (f *FakePlayback) Skip(ctx context.Context) (*player.Track, error) {
	if f.SkipErr != nil {
		return nil, f.SkipErr
	}
	f.Skips++
	if len(f.Queue) == 0 {
		return nil, nil
	}
	f.Pos = (f.Pos + 1) % len(f.Queue)
	return f.Current(ctx)
}

func (f *FakePlayback) Stop(ctx context.Context) error {
	f.Stopped = true
	f.previous = f.current
	f.current = nil
	return nil
}

func (f *FakePlayback) CurrentTrack() *player.Track  { return f.current }
func (f *FakePlayback) PreviousTrack() *player.Track { return f.previous }

// FakeDislikes is a test double for the dislike store with artist > album >
// track precedence.
type FakeDislikes struct {
	Disliked map[string]store.Kind // id -> kind
	Err      error
}

func (f *FakeDislikes) Classify(track *player.Track) (store.Match, error) {
	if f.Err != nil {
		return store.Match{}, f.Err
	}

	for _, id := range track.ArtistIDs() {
		if f.Disliked[id] == store.KindArtist {
			return store.Match{Found: true, Kind: store.KindArtist}, nil
		}
	}
	if f.Disliked[track.AlbumID] == store.KindAlbum {
		return store.Match{Found: true, Kind: store.KindAlbum}, nil
	}
	if f.Disliked[track.ID] == store.KindTrack {
		return store.Match{Found: true, Kind: store.KindTrack}, nil
	}
	return store.Match{}, nil
}

// FakeTokens is a test double for the token expiry check.
type FakeTokens struct {
	IsExpired bool
}

func (f *FakeTokens) Expired() bool { return f.IsExpired }

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
