package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the control panel.
type keyMap struct {
	pause         key.Binding
	dislikeTrack  key.Binding
	dislikeArtist key.Binding
	dislikeAlbum  key.Binding
	undoTrack     key.Binding
	undoArtist    key.Binding
	undoAlbum     key.Binding
	quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		pause:         key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		dislikeTrack:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dislike track")),
		dislikeArtist: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "dislike artist")),
		dislikeAlbum:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "dislike album")),
		undoTrack:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "un-dislike track")),
		undoArtist:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "un-dislike artist")),
		undoAlbum:     key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "un-dislike album")),
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.pause, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.pause, k.quit},
		{k.dislikeTrack, k.dislikeArtist, k.dislikeAlbum},
		{k.undoTrack, k.undoArtist, k.undoAlbum},
	}
}
