// Playback API response types based on the current-playback endpoint shape.
package player

import (
	"fmt"
	"strings"
)

// TrackArtist is one (name, id) pair on a track.
type TrackArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Track is an immutable snapshot of the playback state captured per poll.
//
// The three Heartbroken booleans are loop-local annotations set by the
// watch loop after classification; they are not API data.
type Track struct {
	IsPlaying       bool
	ID              string
	Name            string
	Album           string
	AlbumID         string
	Artists         []TrackArtist
	Type            string // track, episode, ad, unknown
	TimeRemainingMS int

	TrackHeartbroken  bool
	AlbumHeartbroken  bool
	ArtistHeartbroken bool
}

// ArtistIDs returns the ids of all artists on the track.
func (t *Track) ArtistIDs() []string {
	ids := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		ids = append(ids, a.ID)
	}
	return ids
}

// ArtistList renders the artist names as an English-joined list.
func (t *Track) ArtistList() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return FormatArtistList(names)
}

func (t *Track) String() string {
	if t == nil || !t.IsPlaying {
		return "Nothing is currently being played"
	}
	return fmt.Sprintf("%q by %q", t.Name, t.ArtistList())
}

// FormatArtistList turns a slice of artist names into an English list:
// "A", "A and B", "A, B, and C".
func FormatArtistList(names []string) string {
	filtered := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			filtered = append(filtered, n)
		}
	}

	switch len(filtered) {
	case 0:
		return ""
	case 1:
		return filtered[0]
	case 2:
		return filtered[0] + " and " + filtered[1]
	default:
		return strings.Join(filtered[:len(filtered)-1], ", ") + ", and " + filtered[len(filtered)-1]
	}
}

// playbackResponse mirrors the current-playback payload.
type playbackResponse struct {
	IsPlaying            bool          `json:"is_playing"`
	ProgressMS           int           `json:"progress_ms"`
	CurrentlyPlayingType string        `json:"currently_playing_type"`
	Item                 *playbackItem `json:"item"`
}

type playbackItem struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	DurationMS int           `json:"duration_ms"`
	Album      playbackAlbum `json:"album"`
	Artists    []TrackArtist `json:"artists"`
}

type playbackAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// newTrack builds a [Track] snapshot from a decoded playback response.
//
// Returns nil when nothing is actually playing or the played item is not a
// track (a podcast episode, for instance).
func newTrack(resp *playbackResponse) *Track {
	if resp == nil || !resp.IsPlaying || resp.Item == nil {
		return nil
	}
	if resp.CurrentlyPlayingType == "episode" {
		return nil
	}

	return &Track{
		IsPlaying:       true,
		ID:              resp.Item.ID,
		Name:            resp.Item.Name,
		Album:           resp.Item.Album.Name,
		AlbumID:         resp.Item.Album.ID,
		Artists:         resp.Item.Artists,
		Type:            resp.CurrentlyPlayingType,
		TimeRemainingMS: resp.Item.DurationMS - resp.ProgressMS,
	}
}
