package inspect

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/davecgh/go-spew/spew"

	"inspect3d/internal/panel"
)

// PopulateFunc fills an empty folder with widgets. reveal is set while the
// reveal gesture is held and asks for hidden fields too.
type PopulateFunc func(f *panel.Folder, reveal bool)

const lazyProperty = "inspect.lazy"

// LazyFolder materializes its widgets only while it is open. Opening calls
// the populate func and records what it added; closing removes exactly
// those widgets, newest first. Reopening therefore rebuilds from live state.
//
// While closed the folder holds no widgets of its own.
type LazyFolder struct {
	folder   *panel.Folder
	target   any
	populate PopulateFunc
	loaded   bool
	handles  []panel.Widget
	logger   *slog.Logger

	// OnOpen and OnClose run after the folder is populated and after it is
	// emptied.
	OnOpen  func()
	OnClose func()
}

// EnsureFolder returns the lazy folder called name under parent. An existing
// folder of that name is reused and rebound to target and populate.
func EnsureFolder(name string, parent *panel.Folder, target any, populate PopulateFunc) (*LazyFolder, error) {
	if parent == nil {
		return nil, fmt.Errorf("inspect: folder %q has no parent", name)
	}
	f, err := parent.EnsureFolder(name)
	if err != nil {
		return nil, err
	}
	if lf, ok := f.Property(lazyProperty).(*LazyFolder); ok {
		lf.target = target
		lf.populate = populate
		return lf, nil
	}
	lf := &LazyFolder{folder: f, target: target, populate: populate, logger: slog.Default()}
	f.SetProperty(lazyProperty, lf)
	f.OnClick(lf.handleClick)
	return lf, nil
}

// LazyOf returns the lazy folder controlling f, if any.
func LazyOf(f *panel.Folder) *LazyFolder {
	if f == nil {
		return nil
	}
	lf, _ := f.Property(lazyProperty).(*LazyFolder)
	return lf
}

func (lf *LazyFolder) SetLogger(l *slog.Logger) {
	if l != nil {
		lf.logger = l
	}
}

func (lf *LazyFolder) Folder() *panel.Folder { return lf.folder }
func (lf *LazyFolder) Target() any           { return lf.target }
func (lf *LazyFolder) Loaded() bool          { return lf.loaded }

// Handles returns the widgets materialized by the last open, in creation order.
func (lf *LazyFolder) Handles() []panel.Widget {
	return append([]panel.Widget(nil), lf.handles...)
}

// handleClick receives header clicks bubbling up from descendants too, so it
// only reacts to clicks on its own header.
func (lf *LazyFolder) handleClick(c panel.Click) {
	if c.Target != lf.folder || c.Label != lf.folder.Label() {
		return
	}
	lf.Activate(c.Shift)
}

// Activate toggles between collapsed and expanded.
func (lf *LazyFolder) Activate(reveal bool) {
	if lf.loaded {
		lf.Close()
		return
	}
	lf.Open(reveal)
}

// Open populates the folder if it is not loaded yet.
func (lf *LazyFolder) Open(reveal bool) {
	if lf.loaded {
		return
	}
	if reveal {
		lf.dump()
	}
	lf.folder.SetOpen(true)
	lf.loaded = true
	func() {
		defer func() {
			if r := recover(); r != nil {
				lf.logger.Error("populate failed", "folder", lf.folder.Label(), "panic", r)
			}
		}()
		if lf.populate != nil {
			lf.populate(lf.folder, reveal)
		}
	}()
	lf.handles = lf.folder.Children()
	if p := lf.folder.Panel(); p != nil {
		p.MarkOpened(lf.folder)
	}
	if lf.OnOpen != nil {
		lf.OnOpen()
	}
}

// Close removes every recorded widget, newest first. Nested lazy folders are
// closed before they are removed so their OnClose hooks run.
func (lf *LazyFolder) Close() {
	if !lf.loaded {
		return
	}
	for i := len(lf.handles) - 1; i >= 0; i-- {
		h := lf.handles[i]
		if sub, ok := h.(*panel.Folder); ok {
			if nested := LazyOf(sub); nested != nil {
				nested.Close()
			}
		}
		// a handle may already be gone if populate code removed it itself
		_ = lf.folder.Remove(h)
	}
	lf.handles = nil
	lf.loaded = false
	lf.folder.SetOpen(false)
	if lf.OnClose != nil {
		lf.OnClose()
	}
}

// dump logs the raw target: the field named like the folder when the target
// has one, otherwise the whole target.
func (lf *LazyFolder) dump() {
	if lf.target == nil {
		return
	}
	var v any = lf.target
	if fv, ok := fieldByKey(reflect.ValueOf(lf.target), lf.folder.Label()); ok && fv.CanInterface() {
		v = fv.Interface()
	}
	lf.logger.Info("reveal", "folder", lf.folder.Label(), "value", spew.Sdump(v))
}

// fieldByKey finds the exported struct field whose key matches name.
func fieldByKey(v reflect.Value, name string) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	for _, f := range structFields(v) {
		if sameKey(f.key, name) {
			return f.value, true
		}
	}
	return reflect.Value{}, false
}
