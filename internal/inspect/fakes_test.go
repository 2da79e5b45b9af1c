package inspect

import (
	"bytes"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/gizmo"
	"inspect3d/internal/panel"
)

type fakeNode struct {
	ID       string
	Type     string
	Name     string
	Element  string
	Position rl.Vector3
	Scale    float32
	Radius   float32
	Geometry bool

	parent *fakeNode
	kids   []*fakeNode
	dead   bool
}

func node(id, typ, name string) *fakeNode {
	return &fakeNode{ID: id, Type: typ, Name: name, Scale: 1}
}

func (n *fakeNode) add(kids ...*fakeNode) *fakeNode {
	for _, k := range kids {
		k.parent = n
		n.kids = append(n.kids, k)
	}
	return n
}

func (n *fakeNode) UniqueID() string    { return n.ID }
func (n *fakeNode) TypeName() string    { return n.Type }
func (n *fakeNode) NodeName() string    { return n.Name }
func (n *fakeNode) HostElement() string { return n.Element }
func (n *fakeNode) Inspectable() any    { return n }
func (n *fakeNode) Alive() bool         { return !n.dead }

func (n *fakeNode) PositionRef() *rl.Vector3 { return &n.Position }

func (n *fakeNode) ParentNode() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) ChildNodes() []Node {
	out := make([]Node, len(n.kids))
	for i, k := range n.kids {
		out[i] = k
	}
	return out
}

func (n *fakeNode) WorldMatrix() rl.Matrix {
	s := n.Scale
	if s == 0 {
		s = 1
	}
	local := rl.MatrixMultiply(rl.MatrixScale(s, s, s), rl.MatrixTranslate(n.Position.X, n.Position.Y, n.Position.Z))
	if n.parent == nil {
		return local
	}
	return rl.MatrixMultiply(local, n.parent.WorldMatrix())
}

func (n *fakeNode) BoundingSphere() (rl.Vector3, float32, bool) {
	return rl.Vector3{}, n.Radius, n.Geometry
}

type fakeScene struct {
	root      *fakeNode
	camera    *fakeNode
	highlight *gizmo.Box
	indicator *gizmo.Arrow
	updates   int
	removed   []func(Node)
}

func (s *fakeScene) Root() Node {
	if s.root == nil {
		return nil
	}
	return s.root
}

func (s *fakeScene) Camera() Node {
	if s.camera == nil {
		return nil
	}
	return s.camera
}

func (s *fakeScene) SetHighlight(b *gizmo.Box)   { s.highlight = b }
func (s *fakeScene) SetIndicator(a *gizmo.Arrow) { s.indicator = a }
func (s *fakeScene) UpdateMatrixWorld()          { s.updates++ }
func (s *fakeScene) OnRemoved(fn func(Node))     { s.removed = append(s.removed, fn) }

func (s *fakeScene) remove(n *fakeNode) {
	if p := n.parent; p != nil {
		for i, k := range p.kids {
			if k == n {
				p.kids = append(p.kids[:i], p.kids[i+1:]...)
				break
			}
		}
	}
	n.parent = nil
	n.dead = true
	for _, fn := range s.removed {
		fn(n)
	}
}

// newScene builds root > camera, group > (a, b, c).
func newScene() (*fakeScene, map[string]*fakeNode) {
	root := node("1", "Scene", "root")
	cam := node("2", "PerspectiveCamera", "camera")
	group := node("3", "Group", "group")
	a := node("4", "Mesh", "a")
	b := node("5", "Mesh", "b")
	c := node("6", "Mesh", "c")
	root.add(cam, group.add(a, b, c))
	nodes := map[string]*fakeNode{"root": root, "camera": cam, "group": group, "a": a, "b": b, "c": c}
	return &fakeScene{root: root, camera: cam}, nodes
}

// instant is a tweener that lands immediately.
type instant struct {
	calls int
	last  time.Duration
}

func (tw *instant) Tween(target *rl.Vector3, to rl.Vector3, d time.Duration) {
	tw.calls++
	tw.last = d
	*target = to
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func labels(ws []panel.Widget) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Label()
	}
	return out
}

func folderNames(f *panel.Folder) []string {
	var out []string
	for _, sub := range f.Folders() {
		out = append(out, sub.Label())
	}
	return out
}
