package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/engine"
)

const maxPitch = 89 * rl.Deg2rad

// FlyRig steers a camera rig by hand: mouse look turns it and the movement
// keys slide it over the ground plane.
type FlyRig struct {
	MoveSpeed float32 // units per second
	LookSpeed float32 // radians per pixel
}

// FlyInput is one frame of steering. Forward, Right and Up are in [-1, 1].
type FlyInput struct {
	Look    rl.Vector2
	Forward float32
	Right   float32
	Up      float32
}

func NewFlyRig() *FlyRig {
	return &FlyRig{MoveSpeed: 8, LookSpeed: 0.003}
}

// ReadFly samples the mouse and keyboard. Steering is active while the
// right button is held outside the panel.
func ReadFly(o *Overlay) (FlyInput, bool) {
	if !rl.IsMouseButtonDown(rl.MouseRightButton) {
		return FlyInput{}, false
	}
	if o != nil && o.Contains(rl.GetMousePosition()) {
		return FlyInput{}, false
	}
	axis := func(pos, neg int32) float32 {
		var v float32
		if rl.IsKeyDown(pos) {
			v++
		}
		if rl.IsKeyDown(neg) {
			v--
		}
		return v
	}
	return FlyInput{
		Look:    rl.GetMouseDelta(),
		Forward: axis(rl.KeyW, rl.KeyS),
		Right:   axis(rl.KeyD, rl.KeyA),
		Up:      axis(rl.KeyE, rl.KeyQ),
	}, true
}

// Apply turns and moves rig for dt seconds. Pitch stays short of straight
// up or down.
func (f *FlyRig) Apply(rig *engine.GameObject, in FlyInput, dt float32) {
	rig.Rotation.Y -= in.Look.X * f.LookSpeed
	rig.Rotation.X = signedAngle(rig.Rotation.X) - in.Look.Y*f.LookSpeed
	rig.Rotation.X = min(max(rig.Rotation.X, -maxPitch), maxPitch)

	forward, right := groundAxes(rig.WorldMatrix())
	move := rl.Vector3Add(rl.Vector3Scale(forward, in.Forward), rl.Vector3Scale(right, in.Right))
	// Diagonals are no faster than straight moves.
	if l := rl.Vector3Length(move); l > 1 {
		move = rl.Vector3Scale(move, 1/l)
	}
	move.Y += in.Up
	rig.Position = rl.Vector3Add(rig.Position, rl.Vector3Scale(move, f.MoveSpeed*dt))
}

// signedAngle maps a to the same angle in [-π, π). The panel keeps angles
// in [0, 2π).
func signedAngle(a float32) float32 {
	r := math.Mod(float64(a)+math.Pi, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return float32(r - math.Pi)
}

// groundAxes returns the horizontal look direction (-Z) and right (+X) of a
// world matrix.
func groundAxes(m rl.Matrix) (forward, right rl.Vector3) {
	forward = rl.Vector3Normalize(rl.Vector3{X: -m.M8, Z: -m.M10})
	right = rl.Vector3Normalize(rl.Vector3{X: m.M0, Z: m.M2})
	return forward, right
}
