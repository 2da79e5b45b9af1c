package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is the lens of a camera object. The camera object itself is a
// GameObject whose Lens is set; its transform places the eye.
type Camera struct {
	Fov        float32 // vertical, degrees
	Near       float32
	Far        float32
	Aspect     float32
	Zoom       float32
	Focus      float32
	FilmGauge  float32
	FilmOffset float32
	Stereo     bool

	Projection rl.Matrix `inspect:"-"`
}

func NewCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Fov:       fov,
		Near:      near,
		Far:       far,
		Aspect:    aspect,
		Zoom:      1,
		Focus:     10,
		FilmGauge: 35,
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after any lens field changes.
func (c *Camera) UpdateProjectionMatrix() {
	fov := c.Fov
	if c.Zoom > 0 {
		fov /= c.Zoom
	}
	c.Projection = rl.MatrixPerspective(fov*rl.Deg2rad, c.Aspect, c.Near, c.Far)
}

func (c *Camera) IsStereo() bool {
	return c.Stereo
}

// NewPerspectiveCamera creates a camera object looking down -Z.
func NewPerspectiveCamera(name string, fov, aspect, near, far float32) *GameObject {
	g := NewGameObject(name)
	g.Type = "PerspectiveCamera"
	g.Lens = NewCamera(fov, aspect, near, far)
	return g
}

// RaylibCamera converts a camera object into the raylib camera used for
// drawing. The eye looks along the object's -Z axis.
func RaylibCamera(g *GameObject) rl.Camera3D {
	m := g.WorldMatrix()
	eye := rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
	forward := rl.Vector3Negate(rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}))
	up := rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6})
	fov := float32(45)
	if g.Lens != nil {
		fov = g.Lens.Fov
		if g.Lens.Zoom > 0 {
			fov /= g.Lens.Zoom
		}
	}
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, forward),
		Up:         up,
		Fovy:       fov,
		Projection: rl.CameraPerspective,
	}
}
