// Package tui is a terminal frontend for an inspector session: it lists the
// visible panel rows and edits them from the keyboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inspect3d/internal/config"
	"inspect3d/internal/inspect"
	"inspect3d/internal/panel"
)

// Frame is the tick interval the scene and the tweener advance at.
const Frame = time.Second / 30

// Ticker is advanced once per frame, typically the live scene.
type Ticker interface {
	Update(dt float32)
}

// Model holds the TUI state.
type Model struct {
	sess   *inspect.Session
	title  string
	scene  Ticker
	reload <-chan config.Config

	// UI state
	Selected int
	Offset   int
	Width    int
	Height   int
	Status   string

	// Field entry
	editing *panel.Control
	input   textinput.Model

	last time.Time
}

// New returns a model over the session panel. scene and reload may be nil.
func New(sess *inspect.Session, title string, scene Ticker, reload <-chan config.Config) Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 24
	ti.Prompt = ""
	return Model{
		sess:   sess,
		title:  title,
		scene:  scene,
		reload: reload,
		input:  ti,
		Height: 24,
		Width:  80,
	}
}

type tickMsg time.Time

type reloadMsg config.Config

func tick() tea.Cmd {
	return tea.Tick(Frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) waitReload() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	ch := m.reload
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(cfg)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitReload())
}

func (m Model) rows() []panel.Row {
	p := m.sess.Panel()
	if p == nil {
		return nil
	}
	return p.Rows()
}

// Editing reports whether a field has the keyboard.
func (m Model) Editing() bool { return m.editing != nil }
