package gizmo

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Mode int

const (
	Move   Mode = 0
	Rotate Mode = 1
	Scale  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Move:
		return "move"
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	}
	return "unknown"
}

const (
	length    float32 = 2.0
	tipSize   float32 = 0.2
	hitDist   float32 = 0.3
	thickness float32 = 0.06
)

var axes = [3]rl.Vector3{
	{X: 1, Y: 0, Z: 0}, // X - red
	{X: 0, Y: 1, Z: 0}, // Y - green
	{X: 0, Y: 0, Z: 1}, // Z - blue
}

var colors = [3]rl.Color{rl.Red, rl.Green, rl.Blue}

// Transform is a three-axis handle that edits one vector of a node: its
// position, rotation or scale depending on Mode. It writes straight into the
// attached vector, the same memory the panel controls are bound to.
type Transform struct {
	mode   Mode
	value  *rl.Vector3
	center func() rl.Vector3
	parent func() rl.Matrix

	hovered  int
	dragging bool
	dragAxis int
	dragDir  rl.Vector3
	dragInit rl.Vector3
	dragOrig rl.Vector3
	dragN    rl.Vector3
	dragT0   float32
}

func NewTransform() *Transform {
	return &Transform{hovered: -1, dragAxis: -1}
}

// Attach binds the gizmo to value. center reports the world position the
// handles are drawn at; parent reports the world matrix of the node's parent
// and may be nil for roots.
func (g *Transform) Attach(mode Mode, value *rl.Vector3, center func() rl.Vector3, parent func() rl.Matrix) {
	g.mode = mode
	g.value = value
	g.center = center
	g.parent = parent
	g.dragging = false
	g.hovered = -1
}

func (g *Transform) Detach() {
	g.value = nil
	g.center = nil
	g.parent = nil
	g.dragging = false
	g.hovered = -1
}

func (g *Transform) Attached() bool { return g.value != nil }
func (g *Transform) Mode() Mode     { return g.mode }
func (g *Transform) Value() *rl.Vector3 {
	return g.value
}
func (g *Transform) Dragging() bool { return g.dragging }

func (g *Transform) Center() rl.Vector3 {
	if g.center == nil {
		return rl.Vector3{}
	}
	return g.center()
}

// Hover updates the highlighted axis for a mouse ray. It returns the axis
// index or -1.
func (g *Transform) Hover(ray rl.Ray) int {
	if g.dragging {
		return g.dragAxis
	}
	g.hovered = g.Pick(ray)
	return g.hovered
}

// Pick returns the index of the axis closest to the mouse ray, or -1.
func (g *Transform) Pick(ray rl.Ray) int {
	if g.value == nil {
		return -1
	}

	center := g.Center()
	bestDist := float32(999.0)
	bestAxis := -1

	if g.mode == Rotate {
		radius := length * 0.8
		ringHitDist := float32(0.4)

		for i, normal := range axes {
			pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, center, normal)
			if !ok {
				continue
			}
			distFromCenter := rl.Vector3Length(rl.Vector3Subtract(pt, center))
			distFromRing := float32(math.Abs(float64(distFromCenter - radius)))
			if distFromRing < ringHitDist && distFromRing < bestDist {
				bestDist = distFromRing
				bestAxis = i
			}
		}
		return bestAxis
	}

	for i, axis := range axes {
		_, t2, dist := closestPointBetweenRays(ray.Position, ray.Direction, center, axis)
		if t2 > 0 && t2 < length && dist < hitDist && dist < bestDist {
			bestDist = dist
			bestAxis = i
		}
	}
	return bestAxis
}

// BeginDrag starts dragging along axis. eye is the camera position used to
// orient the drag plane.
func (g *Transform) BeginDrag(axis int, ray rl.Ray, eye rl.Vector3) bool {
	if g.value == nil || axis < 0 || axis >= len(axes) {
		return false
	}
	g.dragging = true
	g.dragAxis = axis
	g.dragDir = axes[axis]
	g.dragInit = *g.value
	g.dragOrig = g.Center()

	viewDir := rl.Vector3Normalize(rl.Vector3Subtract(g.dragOrig, eye))
	cross := rl.Vector3CrossProduct(viewDir, g.dragDir)
	g.dragN = rl.Vector3Normalize(rl.Vector3CrossProduct(g.dragDir, cross))

	g.dragT0 = 0
	if pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, g.dragOrig, g.dragN); ok {
		g.dragT0 = rl.Vector3DotProduct(rl.Vector3Subtract(pt, g.dragOrig), g.dragDir)
	}
	return true
}

// Drag applies the motion of ray since BeginDrag to the attached vector.
func (g *Transform) Drag(ray rl.Ray) {
	if !g.dragging || g.value == nil {
		g.dragging = false
		return
	}
	pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, g.dragOrig, g.dragN)
	if !ok {
		return
	}
	delta := rl.Vector3DotProduct(rl.Vector3Subtract(pt, g.dragOrig), g.dragDir) - g.dragT0
	*g.value = g.apply(delta)
}

func (g *Transform) EndDrag() {
	g.dragging = false
	g.dragAxis = -1
}

// apply maps a drag distance along the active axis to a new vector.
func (g *Transform) apply(delta float32) rl.Vector3 {
	v := g.dragInit
	switch g.mode {
	case Move:
		worldDelta := rl.Vector3Scale(g.dragDir, delta)
		return rl.Vector3Add(v, g.toParentSpace(worldDelta))

	case Rotate:
		// 1 unit = 45 degrees
		rad := delta * math.Pi / 4
		setAxis(&v, g.dragAxis, axisOf(v, g.dragAxis)+rad)
		return v

	case Scale:
		factor := float32(1.0) + delta*0.5
		if factor < 0.1 {
			factor = 0.1
		}
		setAxis(&v, g.dragAxis, axisOf(v, g.dragAxis)*factor)
		return v
	}
	return v
}

// toParentSpace rotates and unscales a world-space offset into the local
// space of the node's parent.
func (g *Transform) toParentSpace(d rl.Vector3) rl.Vector3 {
	if g.parent == nil {
		return d
	}
	m := g.parent()
	m.M12, m.M13, m.M14 = 0, 0, 0
	return rl.Vector3Transform(d, rl.MatrixInvert(m))
}

func axisOf(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func setAxis(v *rl.Vector3, i int, f float32) {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		v.Z = f
	}
}

// closestPointBetweenRays finds the closest approach between two rays.
// Returns (t1, t2, distance) where t1/t2 are parameters along each ray.
func closestPointBetweenRays(a, u, b, v rl.Vector3) (t1, t2, dist float32) {
	w := rl.Vector3Subtract(a, b)
	uu := rl.Vector3DotProduct(u, u)
	uv := rl.Vector3DotProduct(u, v)
	vv := rl.Vector3DotProduct(v, v)
	uw := rl.Vector3DotProduct(u, w)
	vw := rl.Vector3DotProduct(v, w)

	denom := uu*vv - uv*uv
	if denom < 1e-6 {
		return 0, 0, 999
	}

	t1 = (uv*vw - vv*uw) / denom
	t2 = (uu*vw - uv*uw) / denom

	p1 := rl.Vector3Add(a, rl.Vector3Scale(u, t1))
	p2 := rl.Vector3Add(b, rl.Vector3Scale(v, t2))
	dist = rl.Vector3Length(rl.Vector3Subtract(p1, p2))
	return
}

// rayPlaneIntersect returns where a ray hits a plane (defined by point + normal).
func rayPlaneIntersect(rayOrigin, rayDir, planePoint, planeNormal rl.Vector3) (rl.Vector3, bool) {
	denom := rl.Vector3DotProduct(rayDir, planeNormal)
	if math.Abs(float64(denom)) < 1e-6 {
		return rl.Vector3{}, false
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(planePoint, rayOrigin), planeNormal) / denom
	if t < 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(rayOrigin, rl.Vector3Scale(rayDir, t)), true
}
