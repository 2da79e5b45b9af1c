package panel

import "errors"

const maxUndo = 50

var ErrNothingToUndo = errors.New("panel: nothing to undo")

// edit is the value a control held before a change.
type edit struct {
	control *Control
	before  any
	raw     bool
}

// History is a capped undo stack of control edits. Consecutive edits to one
// control collapse into a single entry, so a drag undoes in one step.
type History struct {
	edits []edit
}

func (h *History) Len() int { return len(h.edits) }

func (h *History) push(c *Control, before any, raw bool) {
	if n := len(h.edits); n > 0 && h.edits[n-1].control == c {
		return
	}
	if len(h.edits) >= maxUndo {
		h.edits = h.edits[1:]
	}
	h.edits = append(h.edits, edit{control: c, before: before, raw: raw})
}

// Undo restores the newest edit whose control is still in the tree and
// returns that control. Edits of removed controls are dropped on the way.
func (h *History) Undo() (*Control, error) {
	for len(h.edits) > 0 {
		e := h.edits[len(h.edits)-1]
		h.edits = h.edits[:len(h.edits)-1]
		if !e.control.attached() {
			continue
		}
		return e.control, e.control.restore(e.before, e.raw)
	}
	return nil, ErrNothingToUndo
}

// Clear forgets every edit.
func (h *History) Clear() { h.edits = nil }

func (c *Control) record(before any, raw bool) {
	if c.parent == nil || c.parent.panel == nil {
		return
	}
	c.parent.panel.history.push(c, before, raw)
}

// attached reports whether c can still be reached from its panel root.
func (c *Control) attached() bool {
	f := c.parent
	for f != nil && f.parent != nil {
		f = f.parent
	}
	return f != nil && f.panel != nil && f == f.panel.root
}
