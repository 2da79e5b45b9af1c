// Package panel is an in-memory widget tree of folders and leaf controls.
// It holds no drawing code; the ui and tui packages render it.
package panel

// Panel is the root of a widget tree.
type Panel struct {
	root    *Folder
	opened  *Folder
	history History
}

// New creates an empty panel.
func New(title string) *Panel {
	p := &Panel{}
	p.root = &Folder{name: title, panel: p, open: true}
	return p
}

func (p *Panel) Root() *Folder { return p.root }

// History returns the undo stack of control edits made in this panel.
func (p *Panel) History() *History { return &p.history }

// Opened returns the folder marked by the last MarkOpened call.
func (p *Panel) Opened() *Folder { return p.opened }

// MarkOpened highlights f as the last opened folder and its parent as the
// parent of it, clearing the previous pair.
func (p *Panel) MarkOpened(f *Folder) {
	if p.opened != nil {
		p.opened.highlight = HighlightNone
		if p.opened.parent != nil {
			p.opened.parent.highlight = HighlightNone
		}
	}
	p.opened = f
	if f == nil {
		return
	}
	if f.parent != nil {
		f.parent.highlight = HighlightParent
	}
	f.highlight = HighlightOpened
}

func (p *Panel) forget(f *Folder) {
	if p.opened == f {
		p.MarkOpened(nil)
	}
	f.highlight = HighlightNone
}

// Row is one visible line of the panel.
type Row struct {
	Widget Widget
	Depth  int
}

// Rows flattens the visible part of the tree: the children of every open
// folder, in order, starting below the root.
func (p *Panel) Rows() []Row {
	var rows []Row
	var walk func(f *Folder, depth int)
	walk = func(f *Folder, depth int) {
		for _, w := range f.children {
			rows = append(rows, Row{Widget: w, Depth: depth})
			if sub, ok := w.(*Folder); ok && sub.open {
				walk(sub, depth+1)
			}
		}
	}
	walk(p.root, 0)
	return rows
}
