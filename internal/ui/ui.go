package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ohess/heartbroken/internal/player"
	"github.com/ohess/heartbroken/internal/store"
	"github.com/ohess/heartbroken/internal/watch"
)

// Actions is the subset of [watch.Actions] the control panel invokes.
type Actions interface {
	Dislike(ctx context.Context, kind store.Kind) (string, error)
	Undislike(ctx context.Context, kind store.Kind) (string, error)
}

// Model represents the control panel state.
type Model struct {
	ctx     context.Context
	actions Actions
	gate    *watch.Gate
	now     func() *player.Track
	busy    bool
	status  string
	err     error
	help    help.Model
	keys    keyMap
}

type tickMsg time.Time

type actionDoneMsg struct {
	status string
	err    error
}

// NewModel creates a control panel model with the provided dependencies. The
// now function reports the most recent track observed by the watch loop.
func NewModel(ctx context.Context, actions Actions, gate *watch.Gate, now func() *player.Track) *Model {
	return &Model{
		ctx:     ctx,
		actions: actions,
		gate:    gate,
		now:     now,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case actionDoneMsg:
		m.busy = false
		m.status = msg.status
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.pause):
		if m.gate.Running() {
			m.gate.Pause()
			m.status = "auto-skip paused"
		} else {
			m.gate.Resume()
			m.status = "auto-skip resumed"
		}
		return m, nil

	case key.Matches(msg, m.keys.dislikeTrack):
		return m, m.run(m.actions.Dislike, store.KindTrack)
	case key.Matches(msg, m.keys.dislikeArtist):
		return m, m.run(m.actions.Dislike, store.KindArtist)
	case key.Matches(msg, m.keys.dislikeAlbum):
		return m, m.run(m.actions.Dislike, store.KindAlbum)
	case key.Matches(msg, m.keys.undoTrack):
		return m, m.run(m.actions.Undislike, store.KindTrack)
	case key.Matches(msg, m.keys.undoArtist):
		return m, m.run(m.actions.Undislike, store.KindArtist)
	case key.Matches(msg, m.keys.undoAlbum):
		return m, m.run(m.actions.Undislike, store.KindAlbum)
	}

	return m, nil
}

// run dispatches an action as a non-blocking command. While one is in flight
// further action keys are ignored.
func (m *Model) run(action func(context.Context, store.Kind) (string, error), kind store.Kind) tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	m.err = nil
	m.status = fmt.Sprintf("working on %s...", kind)
	return func() tea.Msg {
		status, err := action(m.ctx, kind)
		return actionDoneMsg{status: status, err: err}
	}
}

// View renders the control panel.
func (m *Model) View() string {
	s := styles.title.Render("Heartbroken") + "\n"

	if m.gate.Running() {
		s += styles.ok.Render("● watching") + "\n"
	} else {
		s += styles.paused.Render("◌ paused") + "\n"
	}

	s += m.now().String() + "\n"

	if m.err != nil {
		s += styles.err.Render(m.err.Error()) + "\n"
	} else if m.status != "" {
		s += styles.help.Render(m.status) + "\n"
	}

	s += "\n" + m.help.View(m.keys)
	return s
}
