package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ohess/heartbroken/internal/player"
	"github.com/ohess/heartbroken/internal/shared"
)

// setupStore creates an initialized store on a throwaway database file.
// A file is used rather than :memory: because the store opens a fresh
// connection per operation.
func setupStore(t *testing.T) *Store {
	t.Helper()

	s := New(filepath.Join(t.TempDir(), "heartbroken.db"), shared.NewLogger(nil))
	if err := s.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return s
}

func sampleTrack() *player.Track {
	return &player.Track{
		IsPlaying: true,
		ID:        "T1",
		Name:      "Song",
		Album:     "Album",
		AlbumID:   "AL1",
		Artists:   []player.TrackArtist{{Name: "A", ID: "AR1"}, {Name: "B", ID: "AR2"}},
	}
}

func TestClassify(t *testing.T) {
	t.Run("no match", func(t *testing.T) {
		s := setupStore(t)

		match, err := s.Classify(sampleTrack())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if match.Found {
			t.Errorf("expected no match, got %+v", match)
		}
	})

	t.Run("track match", func(t *testing.T) {
		s := setupStore(t)
		if err := s.Add(KindTrack, "T1"); err != nil {
			t.Fatalf("failed to add: %v", err)
		}

		match, err := s.Classify(sampleTrack())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !match.Found || match.Kind != KindTrack {
			t.Errorf("expected track match, got %+v", match)
		}
	})

	t.Run("any artist id matches", func(t *testing.T) {
		s := setupStore(t)
		if err := s.Add(KindArtist, "AR2"); err != nil {
			t.Fatalf("failed to add: %v", err)
		}

		match, err := s.Classify(sampleTrack())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !match.Found || match.Kind != KindArtist {
			t.Errorf("expected artist match, got %+v", match)
		}
	})

	t.Run("artist precedence over album and track", func(t *testing.T) {
		s := setupStore(t)
		for kind, id := range map[Kind]string{KindTrack: "T1", KindAlbum: "AL1", KindArtist: "AR1"} {
			if err := s.Add(kind, id); err != nil {
				t.Fatalf("failed to add %s: %v", kind, err)
			}
		}

		match, err := s.Classify(sampleTrack())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !match.Found || match.Kind != KindArtist {
			t.Errorf("expected artist precedence, got %+v", match)
		}
	})

	t.Run("album precedence over track", func(t *testing.T) {
		s := setupStore(t)
		for kind, id := range map[Kind]string{KindTrack: "T1", KindAlbum: "AL1"} {
			if err := s.Add(kind, id); err != nil {
				t.Fatalf("failed to add %s: %v", kind, err)
			}
		}

		match, err := s.Classify(sampleTrack())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !match.Found || match.Kind != KindAlbum {
			t.Errorf("expected album precedence, got %+v", match)
		}
	})

	t.Run("malformed id is unknown, not no-match", func(t *testing.T) {
		s := setupStore(t)

		track := sampleTrack()
		track.Artists = []player.TrackArtist{{Name: "X", ID: "bad'id; --"}}

		_, err := s.Classify(track)
		if !errors.Is(err, shared.ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("unreachable store is unknown", func(t *testing.T) {
		s := New(filepath.Join(t.TempDir(), "missing", "nested", "heartbroken.db"), shared.NewLogger(nil))

		_, err := s.Classify(sampleTrack())
		if !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestAdd(t *testing.T) {
	t.Run("idempotent insert", func(t *testing.T) {
		s := setupStore(t)

		if err := s.Add(KindTrack, "T1"); err != nil {
			t.Fatalf("first add failed: %v", err)
		}
		if err := s.Add(KindTrack, "T1"); err != nil {
			t.Fatalf("repeated add should be ignored, got: %v", err)
		}
	})

	t.Run("inserts each artist id", func(t *testing.T) {
		s := setupStore(t)

		if err := s.Add(KindArtist, "AR1", "AR2"); err != nil {
			t.Fatalf("failed to add artists: %v", err)
		}

		for _, id := range []string{"AR1", "AR2"} {
			track := sampleTrack()
			track.Artists = []player.TrackArtist{{Name: "X", ID: id}}
			match, err := s.Classify(track)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !match.Found || match.Kind != KindArtist {
				t.Errorf("expected artist %s to be disliked", id)
			}
		}
	})

	t.Run("rejects empty id list", func(t *testing.T) {
		s := setupStore(t)
		if err := s.Add(KindTrack); err == nil {
			t.Error("expected error for empty id list")
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("track and album in one call", func(t *testing.T) {
		s := setupStore(t)
		if err := s.Add(KindTrack, "T1"); err != nil {
			t.Fatal(err)
		}
		if err := s.Add(KindAlbum, "AL1"); err != nil {
			t.Fatal(err)
		}

		if err := s.Remove("T1", "AL1"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		match, err := s.Classify(sampleTrack())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if match.Found {
			t.Errorf("expected dislikes to be gone, got %+v", match)
		}
	})

	t.Run("artists loop per id", func(t *testing.T) {
		s := setupStore(t)
		if err := s.Add(KindArtist, "AR1", "AR2"); err != nil {
			t.Fatal(err)
		}

		if err := s.RemoveArtists("AR1", "AR2"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		match, err := s.Classify(sampleTrack())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if match.Found {
			t.Errorf("expected dislikes to be gone, got %+v", match)
		}
	})
}

func TestEntries(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		s := setupStore(t)

		entries, err := s.Entries()
		if err != nil {
			t.Fatalf("Entries failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
	})

	t.Run("returns rows grouped by kind", func(t *testing.T) {
		s := setupStore(t)
		if err := s.Add(KindTrack, "TR1"); err != nil {
			t.Fatal(err)
		}
		if err := s.Add(KindArtist, "AR1"); err != nil {
			t.Fatal(err)
		}
		if err := s.Add(KindAlbum, "AL1"); err != nil {
			t.Fatal(err)
		}

		entries, err := s.Entries()
		if err != nil {
			t.Fatalf("Entries failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}

		if entries[0].Kind() != KindArtist || entries[0].ID() != "AR1" {
			t.Errorf("expected artist entry first, got %+v", entries[0])
		}
		if entries[1].Kind() != KindAlbum || entries[1].ID() != "AL1" {
			t.Errorf("expected album entry second, got %+v", entries[1])
		}
		if entries[2].Kind() != KindTrack || entries[2].ID() != "TR1" {
			t.Errorf("expected track entry last, got %+v", entries[2])
		}
	})
}
