package inspect

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"

	"cogentcore.org/core/base/errors"

	"inspect3d/internal/panel"
)

// Walker builds the scene folder: one folder per node type holding one lazy
// folder per node, in pre-order. It also owns the identity map used to
// resolve nodes by id.
type Walker struct {
	classifier *Classifier
	logger     *slog.Logger

	// memo and ordinals survive rebuilds so generated ids never change.
	memo     map[any]string
	ordinals map[string]int

	nodes   map[string]Node
	folders map[string]*LazyFolder
	types   map[string]*panel.Folder
	unnamed map[string]int
	seen    map[string]int
	used    map[*panel.Folder]map[string]bool
	added   int
}

func NewWalker(c *Classifier, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{
		classifier: c,
		logger:     logger,
		memo:       map[any]string{},
		ordinals:   map[string]int{},
		nodes:      map[string]Node{},
		folders:    map[string]*LazyFolder{},
		types:      map[string]*panel.Folder{},
	}
}

func (w *Walker) SetLogger(l *slog.Logger) { w.logger = l }

// IdentityOf returns the intrinsic id of n, or a generated "<type>:<ordinal>"
// assigned the first time n is seen.
func (w *Walker) IdentityOf(n Node) string {
	if n == nil {
		return ""
	}
	if id := n.UniqueID(); id != "" {
		return id
	}
	// Interface fields can hold unhashable values, so the type alone is not enough.
	stable := reflect.ValueOf(n).Comparable()
	if stable {
		if id, ok := w.memo[n]; ok {
			return id
		}
	}
	t := typeOf(n)
	w.ordinals[t]++
	id := fmt.Sprintf("%s:%d", t, w.ordinals[t])
	if stable {
		w.memo[n] = id
	} else {
		w.logger.Debug("node type is not comparable, identity is not stable", "type", t)
	}
	return id
}

// Node resolves id to a live node. Removed nodes resolve to nil.
func (w *Walker) Node(id string) Node {
	n := w.nodes[id]
	if !alive(n) {
		return nil
	}
	return n
}

// Folder returns the lazy folder built for id by the last build.
func (w *Walker) Folder(id string) *LazyFolder {
	return w.folders[id]
}

// Len returns how many nodes the last build added.
func (w *Walker) Len() int { return len(w.nodes) }

// Build walks scene from its root and fills parent with type folders.
// Folders of nodes that are gone since the previous build are removed.
func (w *Walker) Build(parent *panel.Folder, scene SceneGraph) error {
	if parent == nil {
		return fmt.Errorf("inspect: build: no parent folder")
	}
	if scene == nil || scene.Root() == nil {
		return fmt.Errorf("%w: scene has no root", ErrNoCapability)
	}
	stale := w.folders
	w.nodes = map[string]Node{}
	w.folders = map[string]*LazyFolder{}
	w.unnamed = map[string]int{}
	w.seen = map[string]int{}
	w.used = map[*panel.Folder]map[string]bool{}
	w.added = 0

	visited := map[string]bool{}
	var walk func(n Node)
	walk = func(n Node) {
		if n == nil {
			return
		}
		id := w.IdentityOf(n)
		if visited[id] {
			return
		}
		visited[id] = true
		w.add(parent, n, id)
		for _, c := range w.children(n, id) {
			walk(c)
		}
	}
	walk(scene.Root())

	w.prune(parent, stale)
	return nil
}

// add creates the folder for one node. Failures are isolated to the node.
func (w *Walker) add(parent *panel.Folder, n Node, id string) {
	t := typeOf(n)
	w.seen[t]++
	tf, err := parent.EnsureFolder(t)
	if err != nil {
		errors.Log(fmt.Errorf("inspect: type folder %q for node %s: %w", t, id, err))
		return
	}
	w.types[t] = tf

	lf, err := w.nodeFolder(tf, func() string { return w.displayName(n, t) }, n)
	if err != nil {
		w.logger.Debug("node folder failed, retrying with ordinal", "node", id, "err", err)
		ordinal := strconv.Itoa(w.seen[t])
		lf, err = w.nodeFolder(tf, func() string { return ordinal }, n)
	}
	if err != nil {
		errors.Log(fmt.Errorf("inspect: skipping node %s (%s): %w", id, t, err))
		return
	}
	w.added++
	w.logger.Debug(fmt.Sprintf("Adding GUI node n°%d", w.added), "node", id, "folder", lf.Folder().Label())
	w.nodes[id] = n
	w.folders[id] = lf
}

// displayName is the node name, or "<host element> <n>" for the n-th unnamed
// node of its type, or "<n>" when there is no host element either.
func (w *Walker) displayName(n Node, t string) string {
	if name := n.NodeName(); name != "" {
		return name
	}
	w.unnamed[t]++
	k := strconv.Itoa(w.unnamed[t])
	if el := n.HostElement(); el != "" {
		return el + " " + k
	}
	return k
}

func (w *Walker) nodeFolder(tf *panel.Folder, label func() string, n Node) (lf *LazyFolder, err error) {
	var name string
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("inspect: node folder %q panicked: %v", name, r)
		}
	}()
	name = w.unique(tf, label())
	target := n.Inspectable()
	lf, err = EnsureFolder(name, tf, target, func(f *panel.Folder, reveal bool) {
		w.classifier.Populate(f, FieldContext{Node: n}, reflect.ValueOf(target), reveal)
	})
	if err != nil {
		return nil, err
	}
	lf.SetLogger(w.logger)
	w.used[tf][name] = true
	return lf, nil
}

// unique suffixes name with " (k)" when a node of the same type already got
// that name in this build.
func (w *Walker) unique(tf *panel.Folder, name string) string {
	if w.used[tf] == nil {
		w.used[tf] = map[string]bool{}
	}
	if !w.used[tf][name] {
		return name
	}
	for k := 2; ; k++ {
		s := fmt.Sprintf("%s (%d)", name, k)
		if !w.used[tf][s] {
			return s
		}
	}
}

// prune removes folders of the previous build that no node claimed, and
// type folders left empty.
func (w *Walker) prune(parent *panel.Folder, stale map[string]*LazyFolder) {
	kept := map[*LazyFolder]bool{}
	for _, lf := range w.folders {
		kept[lf] = true
	}
	for _, lf := range stale {
		if kept[lf] {
			continue
		}
		lf.Close()
		if p := lf.Folder().Parent(); p != nil {
			_ = p.Remove(lf.Folder())
		}
	}
	for t, tf := range w.types {
		if len(tf.Children()) > 0 {
			continue
		}
		delete(w.types, t)
		if tf.Parent() == parent {
			_ = parent.Remove(tf)
		}
	}
}

// Forget drops the folder of a node that left the scene.
func (w *Walker) Forget(n Node) {
	id := w.IdentityOf(n)
	lf := w.folders[id]
	delete(w.folders, id)
	delete(w.nodes, id)
	if lf == nil {
		return
	}
	lf.Close()
	tf := lf.Folder().Parent()
	if tf == nil {
		return
	}
	_ = tf.Remove(lf.Folder())
	if len(tf.Children()) == 0 && tf.Parent() != nil {
		for t, f := range w.types {
			if f == tf {
				delete(w.types, t)
			}
		}
		_ = tf.Parent().Remove(tf)
	}
}

func (w *Walker) children(n Node, id string) (kids []Node) {
	defer func() {
		if r := recover(); r != nil {
			errors.Log(fmt.Errorf("inspect: children of node %s: %v", id, r))
			kids = nil
		}
	}()
	return n.ChildNodes()
}

func typeOf(n Node) string {
	if t := n.TypeName(); t != "" {
		return t
	}
	return "Object3D"
}
