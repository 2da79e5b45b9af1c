package gizmo

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestBoxFromSphere(t *testing.T) {
	b := BoxFromSphere(rl.Vector3{X: 1, Y: 2, Z: 3}, 2, rl.Red)

	if b.Min != (rl.Vector3{X: -1, Y: 0, Z: 1}) {
		t.Errorf("Min = %v", b.Min)
	}
	if b.Size() != (rl.Vector3{X: 4, Y: 4, Z: 4}) {
		t.Errorf("Size = %v", b.Size())
	}
	if b.Center() != (rl.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Center = %v", b.Center())
	}

	// Zero radius gives a degenerate box at the point
	d := BoxFromSphere(rl.Vector3{X: 5}, 0, rl.Red)
	if d.Min != d.Max {
		t.Error("zero radius box should be degenerate")
	}
}

func TestArrowTo(t *testing.T) {
	a := ArrowTo(rl.Vector3{}, rl.Vector3{Z: -4}, rl.Blue)
	if !near(a.Length, 4) {
		t.Errorf("Length = %f, want 4", a.Length)
	}
	if !near(a.Dir.Z, -1) {
		t.Errorf("Dir = %v", a.Dir)
	}
	if tip := a.Tip(); !near(tip.Z, -4) {
		t.Errorf("Tip = %v", tip)
	}

	same := ArrowTo(rl.Vector3{X: 1}, rl.Vector3{X: 1}, rl.Blue)
	if same.Length != 0 || same.Dir != (rl.Vector3{}) {
		t.Error("arrow to its own origin should be empty")
	}
}

func TestPickAxis(t *testing.T) {
	g := NewTransform()
	ray := rl.Ray{Position: rl.Vector3{X: 1, Z: 10}, Direction: rl.Vector3{Z: -1}}

	if g.Pick(ray) != -1 {
		t.Error("detached gizmo should not pick")
	}

	v := rl.Vector3{}
	g.Attach(Move, &v, func() rl.Vector3 { return rl.Vector3{} }, nil)
	if axis := g.Pick(ray); axis != 0 {
		t.Errorf("expected X axis, got %d", axis)
	}

	miss := rl.Ray{Position: rl.Vector3{X: 5, Y: 5, Z: 10}, Direction: rl.Vector3{Z: -1}}
	if axis := g.Pick(miss); axis != -1 {
		t.Errorf("expected no axis, got %d", axis)
	}
}

func TestDragMove(t *testing.T) {
	g := NewTransform()
	pos := rl.Vector3{}
	g.Attach(Move, &pos, func() rl.Vector3 { return rl.Vector3{} }, nil)

	eye := rl.Vector3{Z: 10}
	start := rl.Ray{Position: rl.Vector3{Z: 10}, Direction: rl.Vector3{Z: -1}}
	if !g.BeginDrag(0, start, eye) {
		t.Fatal("BeginDrag failed")
	}

	g.Drag(rl.Ray{Position: rl.Vector3{X: 1.5, Z: 10}, Direction: rl.Vector3{Z: -1}})
	if !near(pos.X, 1.5) || pos.Y != 0 || pos.Z != 0 {
		t.Errorf("pos = %v, want X=1.5", pos)
	}

	g.EndDrag()
	if g.Dragging() {
		t.Error("still dragging after EndDrag")
	}
}

func TestDragMoveUnderScaledParent(t *testing.T) {
	g := NewTransform()
	pos := rl.Vector3{}
	parent := rl.MatrixScale(2, 2, 2)
	g.Attach(Move, &pos, func() rl.Vector3 { return rl.Vector3{} }, func() rl.Matrix { return parent })

	g.BeginDrag(0, rl.Ray{Position: rl.Vector3{Z: 10}, Direction: rl.Vector3{Z: -1}}, rl.Vector3{Z: 10})
	g.Drag(rl.Ray{Position: rl.Vector3{X: 2, Z: 10}, Direction: rl.Vector3{Z: -1}})

	if !near(pos.X, 1) {
		t.Errorf("pos.X = %f, want 1 in parent space", pos.X)
	}
}

func TestDragScaleAndRotate(t *testing.T) {
	g := NewTransform()
	scale := rl.Vector3{X: 1, Y: 1, Z: 1}
	g.Attach(Scale, &scale, func() rl.Vector3 { return rl.Vector3{} }, nil)

	ray0 := rl.Ray{Position: rl.Vector3{Z: 10}, Direction: rl.Vector3{Z: -1}}
	g.BeginDrag(0, ray0, rl.Vector3{Z: 10})
	g.Drag(rl.Ray{Position: rl.Vector3{X: 1.5, Z: 10}, Direction: rl.Vector3{Z: -1}})
	if !near(scale.X, 1.75) || scale.Y != 1 {
		t.Errorf("scale = %v, want X=1.75", scale)
	}

	// Scale never collapses below 0.1 of its start
	g.Drag(rl.Ray{Position: rl.Vector3{X: -10, Z: 10}, Direction: rl.Vector3{Z: -1}})
	if !near(scale.X, 0.1) {
		t.Errorf("scale.X = %f, want 0.1", scale.X)
	}
	g.EndDrag()

	rot := rl.Vector3{}
	g.Attach(Rotate, &rot, func() rl.Vector3 { return rl.Vector3{} }, nil)
	g.BeginDrag(0, ray0, rl.Vector3{Z: 10})
	g.Drag(rl.Ray{Position: rl.Vector3{X: 1, Z: 10}, Direction: rl.Vector3{Z: -1}})
	if !near(rot.X, math.Pi/4) {
		t.Errorf("rot.X = %f, want pi/4", rot.X)
	}
}

func TestDetach(t *testing.T) {
	g := NewTransform()
	v := rl.Vector3{}
	g.Attach(Rotate, &v, nil, nil)
	if !g.Attached() || g.Mode() != Rotate {
		t.Fatal("Attach did not take")
	}
	g.Detach()
	if g.Attached() {
		t.Error("still attached after Detach")
	}
	if g.BeginDrag(0, rl.Ray{}, rl.Vector3{}) {
		t.Error("detached gizmo should not drag")
	}
}
