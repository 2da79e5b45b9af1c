package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/engine"
)

// Frustum is the six planes of a camera's view volume: left, right, bottom,
// top, near, far. Normals point inwards.
type Frustum struct {
	planes [6]plane
}

// plane is ax + by + cz + d = 0.
type plane struct {
	normal   rl.Vector3
	distance float32
}

// FrustumOf extracts the view volume of a camera object drawn at the given
// aspect ratio (Gribb/Hartmann).
func FrustumOf(cam *engine.GameObject, aspect float32) Frustum {
	c := engine.RaylibCamera(cam)
	near, far := float32(0.01), float32(1000)
	if cam.Lens != nil {
		near, far = cam.Lens.Near, cam.Lens.Far
	}
	view := rl.MatrixLookAt(c.Position, c.Target, c.Up)
	proj := rl.MatrixPerspective(c.Fovy*rl.Deg2rad, aspect, near, far)
	vp := rl.MatrixMultiply(view, proj)

	row := func(i int) [4]float32 {
		switch i {
		case 0:
			return [4]float32{vp.M0, vp.M4, vp.M8, vp.M12}
		case 1:
			return [4]float32{vp.M1, vp.M5, vp.M9, vp.M13}
		case 2:
			return [4]float32{vp.M2, vp.M6, vp.M10, vp.M14}
		}
		return [4]float32{vp.M3, vp.M7, vp.M11, vp.M15}
	}
	w := row(3)
	var f Frustum
	for i := range 3 {
		r := row(i)
		f.planes[2*i] = normalizePlane(w, r, 1)
		f.planes[2*i+1] = normalizePlane(w, r, -1)
	}
	return f
}

// normalizePlane builds the plane w + sign*r with a unit normal.
func normalizePlane(w, r [4]float32, sign float32) plane {
	p := plane{
		normal: rl.Vector3{
			X: w[0] + sign*r[0],
			Y: w[1] + sign*r[1],
			Z: w[2] + sign*r[2],
		},
		distance: w[3] + sign*r[3],
	}
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return plane{
		normal:   rl.Vector3Scale(p.normal, 1/length),
		distance: p.distance / length,
	}
}

// ContainsSphere reports whether a sphere is inside or crosses the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f.planes {
		if rl.Vector3DotProduct(p.normal, center)+p.distance < -radius {
			return false
		}
	}
	return true
}

// worldSphere is the bounding sphere of a mesh in world space. The radius
// grows with the largest scale axis.
func worldSphere(g *engine.GameObject) (rl.Vector3, float32, bool) {
	center, radius, ok := g.BoundingSphere()
	if !ok {
		return rl.Vector3{}, 0, false
	}
	center = rl.Vector3Transform(center, g.WorldMatrix())
	s := g.WorldScale()
	return center, radius * max(abs(s.X), abs(s.Y), abs(s.Z)), true
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
