package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inspect3d/internal/config"
	"inspect3d/internal/inspect"
	"inspect3d/internal/panel"
)

// Update handles events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.clamp()
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		dt := float32(Frame.Seconds())
		if !m.last.IsZero() {
			dt = float32(now.Sub(m.last).Seconds())
		}
		m.last = now
		m.advance(dt)
		return m, tick()

	case reloadMsg:
		m.sess.Reconfigure(config.Config(msg))
		m.Status = "config reloaded"
		m.clamp()
		return m, m.waitReload()

	case tea.KeyMsg:
		if m.editing != nil {
			return m.updateEntry(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// advance moves the scene and the camera tween forward by dt seconds.
func (m *Model) advance(dt float32) {
	if m.scene != nil {
		m.scene.Update(dt)
	}
	m.sess.Update(dt)
	m.clamp()
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	switch s {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "ctrl+z", "u":
		m.undo()
		return m, nil
	}
	if key, mods := splitKey(s); mods != 0 {
		if m.sess.HandleKey(key, mods) {
			m.follow()
		}
		return m, nil
	}

	switch s {
	case "up", "k":
		m.Selected--
	case "down", "j":
		m.Selected++
	case "pgup":
		m.Selected -= m.pageSize()
	case "pgdown":
		m.Selected += m.pageSize()
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = len(m.rows()) - 1
	case "enter", " ", "space", "o":
		return m.activate(false)
	case "O":
		return m.activate(true)
	case "right", "l":
		m.step(1)
	case "left", "h":
		m.step(-1)
	case "r":
		m.sess.Refresh()
		m.Status = "scene refreshed"
	}
	m.clamp()
	return m, nil
}

// splitKey turns a key string such as "shift+left" into the key and its
// modifiers.
func splitKey(s string) (inspect.Key, inspect.Modifiers) {
	parts := strings.Split(s, "+")
	if len(parts) < 2 || parts[len(parts)-1] == "" {
		return inspect.Key(s), 0
	}
	var mods inspect.Modifiers
	for _, p := range parts[:len(parts)-1] {
		m, err := inspect.ParseModifier(p)
		if err != nil {
			return inspect.Key(s), 0
		}
		mods |= m
	}
	return inspect.Key(parts[len(parts)-1]), mods
}

func (m Model) selected() (panel.Row, bool) {
	rows := m.rows()
	if m.Selected < 0 || m.Selected >= len(rows) {
		return panel.Row{}, false
	}
	return rows[m.Selected], true
}

// activate clicks a folder header, presses a button, flips a toggle, cycles
// a choice or starts text entry on a number or text field. reveal is the
// shift gesture.
func (m Model) activate(reveal bool) (tea.Model, tea.Cmd) {
	row, ok := m.selected()
	if !ok {
		return m, nil
	}
	switch w := row.Widget.(type) {
	case *panel.Folder:
		w.Click(reveal)
	case *panel.Control:
		switch w.Kind() {
		case panel.Button:
			m.report(w, w.Press())
		case panel.Toggle, panel.Choice:
			m.report(w, w.Nudge(1))
		default:
			m.editing = w
			m.input.SetValue(w.Display())
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}
	}
	m.clamp()
	return m, nil
}

// step opens or closes a folder, or nudges a control by one step.
func (m *Model) step(dir int) {
	row, ok := m.selected()
	if !ok {
		return
	}
	switch w := row.Widget.(type) {
	case *panel.Folder:
		if w.IsOpen() != (dir > 0) {
			w.Click(false)
		} else if dir < 0 {
			m.selectWidget(w.Parent())
		}
	case *panel.Control:
		m.report(w, w.Nudge(dir))
	}
}

// undo reverts the newest edit and selects its control.
func (m *Model) undo() {
	p := m.sess.Panel()
	if p == nil {
		return
	}
	c, err := p.History().Undo()
	switch {
	case errors.Is(err, panel.ErrNothingToUndo):
		m.Status = "nothing to undo"
	case err != nil:
		m.report(c, err)
	default:
		m.Status = "undid " + c.Label()
		m.selectWidget(c)
	}
}

func (m *Model) report(c *panel.Control, err error) {
	if err != nil {
		m.Status = fmt.Sprintf("%s: %v", c.Label(), err)
		return
	}
	m.Status = ""
}

func (m Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.report(m.editing, m.editing.SetValue(m.input.Value()))
		m.stopEntry()
		return m, nil
	case tea.KeyEsc:
		m.stopEntry()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEntry() {
	m.editing = nil
	m.input.Blur()
	m.input.SetValue("")
}

// follow selects the folder of the node navigation just focused, opening
// the folders above it.
func (m *Model) follow() {
	p := m.sess.Panel()
	if p == nil || p.Opened() == nil {
		return
	}
	target := p.Opened()
	var chain []*panel.Folder
	for f := target.Parent(); f != nil && f != p.Root(); f = f.Parent() {
		chain = append(chain, f)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].IsOpen() {
			continue
		}
		if lf := inspect.LazyOf(chain[i]); lf != nil {
			lf.Open(false)
		} else {
			chain[i].SetOpen(true)
		}
	}
	m.selectWidget(target)
}

func (m *Model) selectWidget(w panel.Widget) {
	for i, row := range m.rows() {
		if row.Widget == w {
			m.Selected = i
			break
		}
	}
	m.clamp()
}

// listHeight is the number of rows that fit between the header and the
// footer.
func (m Model) listHeight() int {
	return max(m.Height-4, 1)
}

func (m Model) pageSize() int {
	return max(m.listHeight()-1, 1)
}

// clamp keeps the selection on an existing row and scrolls it into view.
func (m *Model) clamp() {
	n := len(m.rows())
	m.Selected = min(m.Selected, n-1)
	m.Selected = max(m.Selected, 0)
	h := m.listHeight()
	if m.Selected < m.Offset {
		m.Offset = m.Selected
	}
	if m.Selected >= m.Offset+h {
		m.Offset = m.Selected - h + 1
	}
	m.Offset = max(min(m.Offset, n-h), 0)
}
