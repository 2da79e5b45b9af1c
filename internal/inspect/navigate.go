package inspect

import (
	"log/slog"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/gizmo"
)

const locateBackoff = 0.01

// Cursor remembers the last focused node by identity. It is resolved on
// every read, so a node removed from the scene reads as nil.
type Cursor struct {
	id     string
	walker *Walker
}

func (c *Cursor) ID() string { return c.id }
func (c *Cursor) Clear()     { c.id = "" }

func (c *Cursor) Set(n Node) {
	c.id = c.walker.IdentityOf(n)
}

// Node returns the focused node, or nil when nothing is focused or the node
// is gone.
func (c *Cursor) Node() Node {
	if c.id == "" {
		return nil
	}
	return c.walker.Node(c.id)
}

// Navigation moves the focus around the scene graph. Locate marks a node in
// the scene and MoveTo flies the camera to it.
type Navigation struct {
	scene    SceneGraph
	walker   *Walker
	cursor   *Cursor
	tweener  Tweener
	logger   *slog.Logger
	duration time.Duration
	fallback float32
	keys     Bindings

	highlight *gizmo.Box
	indicator *gizmo.Arrow
}

func NewNavigation(w *Walker, tw Tweener, logger *slog.Logger) *Navigation {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigation{
		walker:   w,
		cursor:   &Cursor{walker: w},
		tweener:  tw,
		logger:   logger,
		duration: time.Second,
		fallback: 1,
		keys:     DefaultBindings(),
	}
}

func (nv *Navigation) SetScene(s SceneGraph)       { nv.scene = s }
func (nv *Navigation) SetDuration(d time.Duration) { nv.duration = d }
func (nv *Navigation) SetBindings(b Bindings)      { nv.keys = b }
func (nv *Navigation) Cursor() *Cursor             { return nv.cursor }
func (nv *Navigation) Highlight() *gizmo.Box       { return nv.highlight }
func (nv *Navigation) Indicator() *gizmo.Arrow     { return nv.indicator }

func (nv *Navigation) SetFallbackDistance(d float32) {
	if d > 0 {
		nv.fallback = d
	}
}

// Locate replaces the highlight box and the indicator arrow. The box bounds
// the node's bounding sphere in world space. The arrow starts just behind the
// camera and ends on the node.
func (nv *Navigation) Locate(n Node) {
	if !alive(n) {
		nv.logger.Info("Node is gone")
		return
	}
	color := gizmo.RandomColor()
	pos := worldPosition(n)

	box := safely(nv.logger, "bounding box", gizmo.BoxFromSphere(pos, 0, color), func() *gizmo.Box {
		b, ok := n.(Bounded)
		if !ok {
			return gizmo.BoxFromSphere(pos, 0, color)
		}
		center, radius, ok := b.BoundingSphere()
		if !ok {
			return gizmo.BoxFromSphere(pos, 0, color)
		}
		m := n.WorldMatrix()
		return gizmo.BoxFromSphere(rl.Vector3Transform(center, m), radius*maxAxisScale(m), color)
	})

	eye, camZ := nv.cameraBasis()
	origin := rl.Vector3Subtract(eye, rl.Vector3Scale(camZ, locateBackoff))
	arrow := gizmo.ArrowTo(origin, pos, color)

	nv.highlight, nv.indicator = box, arrow
	if o, ok := nv.scene.(Overlay); ok {
		o.SetHighlight(box)
		o.SetIndicator(arrow)
	}
}

// MoveTo flies the camera rig to the node along the camera's Z axis. The
// distance is twice the node's world bounding radius, or the fallback
// distance when the node has no geometry.
func (nv *Navigation) MoveTo(n Node) {
	if !alive(n) {
		nv.logger.Info("Node is gone")
		return
	}
	dist := nv.distanceTo(n)
	_, camZ := nv.cameraBasis()
	target := rl.Vector3Add(worldPosition(n), rl.Vector3Scale(camZ, dist))

	if rig, ref := nv.rig(); ref != nil {
		nv.animateRig(rig, ref, target)
	} else {
		nv.logger.Debug("moveTo: camera rig has no position")
	}
	if u, ok := nv.scene.(WorldUpdater); ok {
		u.UpdateMatrixWorld()
	}
	nv.cursor.Set(n)
	if lf := nv.walker.Folder(nv.cursor.ID()); lf != nil {
		if p := lf.Folder().Panel(); p != nil {
			p.MarkOpened(lf.Folder())
		}
	}
}

// distanceTo is (radius + |center|) * |world X axis| * 2.
func (nv *Navigation) distanceTo(n Node) float32 {
	r := safely(nv.logger, "fly-to distance", nv.fallback, func() float32 {
		b, ok := n.(Bounded)
		if !ok {
			return nv.fallback
		}
		center, radius, ok := b.BoundingSphere()
		if !ok {
			return nv.fallback
		}
		m := n.WorldMatrix()
		sx := rl.Vector3Length(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2})
		return (radius + rl.Vector3Length(center)) * sx * 2
	})
	if r <= 0 || math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) {
		return nv.fallback
	}
	return r
}

// rig is the camera's parent, or the camera when it hangs off the scene root.
func (nv *Navigation) rig() (Node, *rl.Vector3) {
	if nv.scene == nil {
		return nil, nil
	}
	cam := nv.scene.Camera()
	if cam == nil {
		return nil, nil
	}
	rig := cam
	if p := cam.ParentNode(); p != nil && !sameNode(p, nv.scene.Root()) {
		rig = p
	}
	pos, ok := rig.(Positioned)
	if !ok {
		return rig, nil
	}
	return rig, pos.PositionRef()
}

// animateRig tweens the rig so the camera ends at target. The target is
// converted into the rig parent's local space.
func (nv *Navigation) animateRig(rig Node, ref *rl.Vector3, target rl.Vector3) {
	to := safely(nv.logger, "rig target", target, func() rl.Vector3 {
		t := target
		if cam := nv.scene.Camera(); cam != nil && !sameNode(cam, rig) {
			offset := rl.Vector3Subtract(worldPosition(cam), worldPosition(rig))
			t = rl.Vector3Subtract(t, offset)
		}
		if p := rig.ParentNode(); p != nil {
			t = rl.Vector3Transform(t, rl.MatrixInvert(p.WorldMatrix()))
		}
		return t
	})
	if nv.tweener == nil {
		*ref = to
		return
	}
	nv.tweener.Tween(ref, to, nv.duration)
}

// cameraBasis returns the camera position and its normalized Z axis. Without
// a camera it is the origin looking down -Z.
func (nv *Navigation) cameraBasis() (eye, z rl.Vector3) {
	fallbackZ := rl.Vector3{Z: 1}
	if nv.scene == nil {
		nv.logger.Debug("no scene, using default camera")
		return rl.Vector3{}, fallbackZ
	}
	cam := nv.scene.Camera()
	if cam == nil {
		nv.logger.Debug("no camera, using default camera")
		return rl.Vector3{}, fallbackZ
	}
	m := safely(nv.logger, "camera matrix", rl.MatrixIdentity(), cam.WorldMatrix)
	eye = rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
	z = rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}
	if rl.Vector3Length(z) == 0 {
		return eye, fallbackZ
	}
	return eye, rl.Vector3Normalize(z)
}

// MoveToParent focuses the parent of the focused node. A top-level node moves
// to the scene root.
func (nv *Navigation) MoveToParent() bool {
	cur := nv.cursor.Node()
	if cur == nil {
		nv.logger.Info("No focused node")
		return false
	}
	p := cur.ParentNode()
	if p == nil && nv.scene != nil && !sameNode(cur, nv.scene.Root()) {
		p = nv.scene.Root()
	}
	if p == nil {
		nv.logger.Info("No parent")
		return false
	}
	nv.focus(p)
	return true
}

func (nv *Navigation) MoveToFirstChild() bool {
	cur := nv.cursor.Node()
	if cur == nil {
		nv.logger.Info("No focused node")
		return false
	}
	kids := cur.ChildNodes()
	if len(kids) == 0 {
		nv.logger.Info("No child")
		return false
	}
	nv.focus(kids[0])
	return true
}

func (nv *Navigation) MoveToPreviousBrother() bool {
	return nv.moveToBrother(-1, "No previous brother")
}

func (nv *Navigation) MoveToNextBrother() bool {
	return nv.moveToBrother(1, "No next brother")
}

func (nv *Navigation) moveToBrother(dir int, missing string) bool {
	cur := nv.cursor.Node()
	if cur == nil {
		nv.logger.Info("No focused node")
		return false
	}
	p := cur.ParentNode()
	if p == nil && nv.scene != nil && !sameNode(cur, nv.scene.Root()) {
		p = nv.scene.Root()
	}
	if p == nil {
		nv.logger.Info(missing)
		return false
	}
	kids := p.ChildNodes()
	i := -1
	for j, k := range kids {
		if sameNode(k, cur) {
			i = j
			break
		}
	}
	next := i + dir
	if i < 0 || next < 0 || next >= len(kids) {
		nv.logger.Info(missing)
		return false
	}
	nv.focus(kids[next])
	return true
}

func (nv *Navigation) focus(n Node) {
	nv.Locate(n)
	nv.MoveTo(n)
}

// sameNode compares by intrinsic id when both have one, else by value.
func sameNode(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if ia, ib := a.UniqueID(), b.UniqueID(); ia != "" && ib != "" {
		return ia == ib
	}
	return safely(nil, "", false, func() bool { return a == b })
}

func worldPosition(n Node) rl.Vector3 {
	m := safely(nil, "", rl.MatrixIdentity(), n.WorldMatrix)
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}

// parentWorld returns a func reading the parent's live world matrix.
func parentWorld(n Node) func() rl.Matrix {
	return func() rl.Matrix {
		return safely(nil, "", rl.MatrixIdentity(), func() rl.Matrix {
			if p := n.ParentNode(); p != nil {
				return p.WorldMatrix()
			}
			return rl.MatrixIdentity()
		})
	}
}

func maxAxisScale(m rl.Matrix) float32 {
	sx := rl.Vector3Length(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2})
	sy := rl.Vector3Length(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6})
	sz := rl.Vector3Length(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10})
	return max(sx, sy, sz)
}

// safely runs fn and returns fallback if it panics.
func safely[T any](logger *slog.Logger, what string, fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Debug("navigation fallback", "step", what, "panic", r)
			}
			out = fallback
		}
	}()
	return fn()
}
