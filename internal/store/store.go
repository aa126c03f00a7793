// package store persists disliked artist/album/track ids and classifies
// track snapshots against them.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ohess/heartbroken/internal/player"
	"github.com/ohess/heartbroken/internal/shared"
)

// Kind names which id column a dislike record populates. A record populates
// exactly one.
type Kind string

const (
	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
	KindTrack  Kind = "track"
)

// Match is the classification result for one track snapshot.
type Match struct {
	Found bool
	Kind  Kind
}

// Item ids are base-62 strings; anything else fails the defensive check
// before reaching SQL.
var validID = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// Store is the dislike lookup table. Connections are short-lived, one per
// logical operation, so operations serialize naturally at the storage layer.
type Store struct {
	path   string
	logger *log.Logger
}

// New creates a Store backed by the SQLite database at path.
func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{path: path, logger: logger}
}

// Init creates the dislikes table if it does not exist. Each id column is
// independently unique; a row populates at most one of them.
func (s *Store) Init() error {
	return s.withDB(func(db *sql.DB) error {
		// Item ids are 22-char base-62 strings
		_, err := db.Exec(`CREATE TABLE IF NOT EXISTS heartbroken(
			artist_id TEXT DEFAULT NULL UNIQUE,
			album_id TEXT DEFAULT NULL UNIQUE,
			track_id TEXT DEFAULT NULL UNIQUE
		)`)
		return err
	})
}

// Classify checks whether any of the track's artist ids, its album id, or
// its track id is disliked. When several kinds match at once, artist takes
// priority over album and album over track.
//
// An id failing the format check, or an unreachable store, yields an error;
// callers must treat that as unknown, never as "no match".
func (s *Store) Classify(track *player.Track) (Match, error) {
	artistIDs := track.ArtistIDs()

	for _, id := range append([]string{track.AlbumID, track.ID}, artistIDs...) {
		if id != "" && !validID.MatchString(id) {
			s.logger.Warn("refusing to classify track with malformed id", "id", id)
			return Match{}, fmt.Errorf("%w: %q", shared.ErrInvalidID, id)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(artistIDs)), ",")
	if placeholders == "" {
		placeholders = "NULL"
	}

	query := fmt.Sprintf(`SELECT
			artist_id IN (%s),
			album_id = ?,
			track_id = ?
		FROM heartbroken
		WHERE artist_id IN (%s)
			OR album_id = ?
			OR track_id = ?
		LIMIT 1`, placeholders, placeholders)

	args := make([]any, 0, 2*len(artistIDs)+4)
	for _, id := range artistIDs {
		args = append(args, id)
	}
	args = append(args, track.AlbumID, track.ID)
	for _, id := range artistIDs {
		args = append(args, id)
	}
	args = append(args, track.AlbumID, track.ID)

	var match Match
	err := s.withDB(func(db *sql.DB) error {
		var artistHit, albumHit, trackHit sql.NullBool
		err := db.QueryRow(query, args...).Scan(&artistHit, &albumHit, &trackHit)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		match.Found = true
		switch {
		case artistHit.Valid && artistHit.Bool:
			match.Kind = KindArtist
		case albumHit.Valid && albumHit.Bool:
			match.Kind = KindAlbum
		default:
			match.Kind = KindTrack
		}
		return nil
	})
	if err != nil {
		s.logger.Error("database error while trying to check if the item is disliked", "error", err)
		return Match{}, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	return match, nil
}

// Add records one or more disliked ids of the given kind. Inserts are
// idempotent; for a set of artist ids each is inserted independently and
// the overall result fails if any insertion does.
func (s *Store) Add(kind Kind, ids ...string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no id specified", shared.ErrInvalidArgument)
	}

	return s.withDB(func(db *sql.DB) error {
		var failed error
		for _, id := range ids {
			var artistID, albumID, trackID any
			switch kind {
			case KindArtist:
				artistID = id
			case KindAlbum:
				albumID = id
			case KindTrack:
				trackID = id
			default:
				return fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidArgument, kind)
			}

			if _, err := db.Exec(
				"INSERT OR IGNORE INTO heartbroken (artist_id, album_id, track_id) VALUES (?, ?, ?)",
				artistID, albumID, trackID,
			); err != nil {
				s.logger.Error("error while trying to write to the dislike store", "error", err)
				failed = fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
			}
		}
		return failed
	})
}

// Remove deletes dislike rows matching the given track and/or album id in a
// single statement. Empty arguments match nothing.
func (s *Store) Remove(trackID, albumID string) error {
	return s.withDB(func(db *sql.DB) error {
		if trackID == "" {
			trackID = "_"
		}
		if albumID == "" {
			albumID = "_"
		}
		_, err := db.Exec("DELETE FROM heartbroken WHERE track_id = ? OR album_id = ?", trackID, albumID)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}
		return nil
	})
}

// RemoveArtists deletes dislike rows for each of the given artist ids in
// turn.
func (s *Store) RemoveArtists(ids ...string) error {
	return s.withDB(func(db *sql.DB) error {
		var failed error
		for _, id := range ids {
			if _, err := db.Exec("DELETE FROM heartbroken WHERE artist_id = ?", id); err != nil {
				s.logger.Error("error while trying to delete from the dislike store", "error", err)
				failed = fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
			}
		}
		return failed
	})
}

// Entry is one stored dislike row. Exactly one id field is populated.
type Entry struct {
	ArtistID string
	AlbumID  string
	TrackID  string
}

// Kind reports which id column the entry populates.
func (e Entry) Kind() Kind {
	switch {
	case e.ArtistID != "":
		return KindArtist
	case e.AlbumID != "":
		return KindAlbum
	default:
		return KindTrack
	}
}

// ID returns the entry's populated id.
func (e Entry) ID() string {
	switch {
	case e.ArtistID != "":
		return e.ArtistID
	case e.AlbumID != "":
		return e.AlbumID
	default:
		return e.TrackID
	}
}

// Entries returns every stored dislike row, artists first, then albums,
// then tracks.
func (s *Store) Entries() ([]Entry, error) {
	var entries []Entry
	err := s.withDB(func(db *sql.DB) error {
		rows, err := db.Query(`SELECT artist_id, album_id, track_id
			FROM heartbroken
			ORDER BY artist_id IS NULL, album_id IS NULL, track_id IS NULL`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var artistID, albumID, trackID sql.NullString
			if err := rows.Scan(&artistID, &albumID, &trackID); err != nil {
				return err
			}
			entries = append(entries, Entry{
				ArtistID: artistID.String,
				AlbumID:  albumID.String,
				TrackID:  trackID.String,
			})
		}
		return rows.Err()
	})
	if err != nil {
		s.logger.Error("database error while trying to list the dislike store", "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	return entries, nil
}

// withDB opens a connection, runs fn, and closes the connection again.
func (s *Store) withDB(fn func(*sql.DB) error) error {
	db, err := shared.NewDatabase(s.path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	defer db.Close()

	return fn(db)
}
