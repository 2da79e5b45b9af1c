package panel

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicate = errors.New("panel: folder already exists")
	ErrEmptyName = errors.New("panel: folder name is empty")
	ErrNotChild  = errors.New("panel: widget is not a child of this folder")
)

// Widget is anything a folder holds: a *Control or a nested *Folder.
type Widget interface {
	Label() string
	Parent() *Folder
}

// Click is delivered to a folder's handlers when a header is clicked. The event
// starts at the clicked folder and bubbles up through its ancestors, so a
// handler must check Target to know whether the click was its own.
type Click struct {
	Target *Folder
	Label  string
	Shift  bool
}

// Highlight marks the most recently opened folder and its parent.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightParent
	HighlightOpened
)

// Folder is a collapsible group of widgets.
type Folder struct {
	name      string
	panel     *Panel
	parent    *Folder
	children  []Widget
	handlers  []func(Click)
	open      bool
	highlight Highlight

	properties map[string]any
}

func (f *Folder) Label() string          { return f.name }
func (f *Folder) Parent() *Folder        { return f.parent }
func (f *Folder) Panel() *Panel          { return f.panel }
func (f *Folder) IsOpen() bool           { return f.open }
func (f *Folder) Highlight() Highlight   { return f.highlight }
func (f *Folder) Children() []Widget     { return append([]Widget(nil), f.children...) }
func (f *Folder) OnClick(fn func(Click)) { f.handlers = append(f.handlers, fn) }

// SetOpen expands or collapses the folder without dispatching a click.
func (f *Folder) SetOpen(open bool) { f.open = open }

// SetProperty attaches an arbitrary value to the folder under key.
func (f *Folder) SetProperty(key string, value any) {
	if f.properties == nil {
		f.properties = map[string]any{}
	}
	f.properties[key] = value
}

// Property returns the value stored under key, or nil.
func (f *Folder) Property(key string) any {
	return f.properties[key]
}

// AddFolder creates a sub-folder. Names are unique among a folder's sub-folders.
func (f *Folder) AddFolder(name string) (*Folder, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if f.Folder(name) != nil {
		return nil, fmt.Errorf("%w: %q in %q", ErrDuplicate, name, f.name)
	}
	sub := &Folder{name: name, panel: f.panel, parent: f}
	f.children = append(f.children, sub)
	return sub, nil
}

// EnsureFolder returns the sub-folder with this name, creating it if needed.
func (f *Folder) EnsureFolder(name string) (*Folder, error) {
	if sub := f.Folder(name); sub != nil {
		return sub, nil
	}
	return f.AddFolder(name)
}

// Folder returns the direct sub-folder with this name, or nil.
func (f *Folder) Folder(name string) *Folder {
	for _, w := range f.children {
		if sub, ok := w.(*Folder); ok && sub.name == name {
			return sub
		}
	}
	return nil
}

// Find follows a path of sub-folder names.
func (f *Folder) Find(path ...string) *Folder {
	cur := f
	for _, name := range path {
		if cur = cur.Folder(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Folders returns the direct sub-folders in creation order.
func (f *Folder) Folders() []*Folder {
	var out []*Folder
	for _, w := range f.children {
		if sub, ok := w.(*Folder); ok {
			out = append(out, sub)
		}
	}
	return out
}

// Controls returns the direct leaf controls in creation order.
func (f *Folder) Controls() []*Control {
	var out []*Control
	for _, w := range f.children {
		if c, ok := w.(*Control); ok {
			out = append(out, c)
		}
	}
	return out
}

// Control returns the first direct control with this label, or nil.
func (f *Folder) Control(label string) *Control {
	for _, c := range f.Controls() {
		if c.label == label {
			return c
		}
	}
	return nil
}

func (f *Folder) add(c *Control, opts []Option) *Control {
	c.parent = f
	for _, opt := range opts {
		opt(c)
	}
	f.children = append(f.children, c)
	return c
}

func (f *Folder) AddNumber(label string, b Binding, opts ...Option) *Control {
	return f.add(&Control{label: label, kind: Number, binding: b}, opts)
}

func (f *Folder) AddText(label string, b Binding) *Control {
	return f.add(&Control{label: label, kind: Text, binding: b}, nil)
}

func (f *Folder) AddToggle(label string, b Binding) *Control {
	return f.add(&Control{label: label, kind: Toggle, binding: b}, nil)
}

// AddChoice adds a drop-down whose binding reads and writes labels.
func (f *Folder) AddChoice(label string, choices []string, b Binding) *Control {
	return f.add(&Control{label: label, kind: Choice, binding: b, choices: choices}, nil)
}

func (f *Folder) AddButton(label string, fn func()) *Control {
	return f.add(&Control{label: label, kind: Button, action: fn}, nil)
}

// Remove detaches a direct child. Removing a folder drops its whole subtree.
func (f *Folder) Remove(w Widget) error {
	for i, c := range f.children {
		if c == w {
			f.children = append(f.children[:i], f.children[i+1:]...)
			switch w := w.(type) {
			case *Folder:
				w.detach()
			case *Control:
				w.parent = nil
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q in %q", ErrNotChild, w.Label(), f.name)
}

func (f *Folder) detach() {
	if f.panel != nil {
		f.panel.forget(f)
	}
	for _, w := range f.children {
		if sub, ok := w.(*Folder); ok {
			sub.detach()
		}
	}
	f.parent = nil
	f.open = false
}

// Click simulates a click on the folder header: it toggles the folder and
// dispatches the event to this folder and then to each ancestor.
func (f *Folder) Click(shift bool) {
	f.open = !f.open
	ev := Click{Target: f, Label: f.name, Shift: shift}
	for cur := f; cur != nil; cur = cur.parent {
		for _, fn := range cur.handlers {
			fn(ev)
		}
	}
}

// Path returns the folder names from the root down to f, excluding the root.
func (f *Folder) Path() []string {
	var path []string
	for cur := f; cur != nil && cur.parent != nil; cur = cur.parent {
		path = append([]string{cur.name}, path...)
	}
	return path
}
