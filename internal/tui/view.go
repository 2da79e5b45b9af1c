package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"inspect3d/internal/panel"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#6C63FF")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	folderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	openedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true)
	parentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("183"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	editingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Underline(true)
)

const help = "↑/↓ move · enter open/edit · O open revealing hidden · ←/→ nudge · shift+arrows focus · u undo · r refresh · q quit"

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	if focus := m.sess.Cursor().ID(); focus != "" {
		b.WriteString(dimStyle.Render("  focus " + focus))
	}
	b.WriteString("\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  nothing to inspect"))
		b.WriteString("\n")
	}
	end := min(m.Offset+m.listHeight(), len(rows))
	for i := m.Offset; i < end; i++ {
		line := m.renderRow(rows[i], i == m.Selected)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString(statusStyle.Render(m.Status))
	} else {
		b.WriteString(dimStyle.Render(help))
	}
	return b.String()
}

func (m Model) renderRow(row panel.Row, selected bool) string {
	indent := strings.Repeat("  ", row.Depth)
	var line string
	switch w := row.Widget.(type) {
	case *panel.Folder:
		arrow := "▸"
		if w.IsOpen() {
			arrow = "▾"
		}
		style := folderStyle
		switch w.Highlight() {
		case panel.HighlightOpened:
			style = openedStyle
		case panel.HighlightParent:
			style = parentStyle
		}
		line = indent + style.Render(arrow+" "+w.Label())
	case *panel.Control:
		line = indent + "  " + m.renderControl(w)
	}
	if selected {
		return selectedStyle.Render(">") + line
	}
	return " " + line
}

func (m Model) renderControl(c *panel.Control) string {
	if c.Kind() == panel.Button {
		return buttonStyle.Render("[" + c.Label() + "]")
	}
	value := c.Display()
	if m.editing == c {
		value = editingStyle.Render(m.input.View())
	} else {
		switch c.Kind() {
		case panel.Choice:
			value = valueStyle.Render("‹" + value + "›")
		case panel.Toggle:
			mark := "[ ]"
			if value == "on" {
				mark = "[x]"
			}
			value = valueStyle.Render(mark)
		default:
			value = valueStyle.Render(value)
		}
	}
	if lo, hi, ok := c.Range(); ok {
		value += dimStyle.Render(fmt.Sprintf(" (%g..%g)", lo, hi))
	}
	return labelStyle.Render(c.Label()+": ") + value
}
