// Package gizmo holds the overlay shapes the inspector draws into a scene:
// the highlight box, the indicator arrow and the transform gizmo.
package gizmo

import (
	"math/rand/v2"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Box is an axis-aligned wireframe box in world space.
type Box struct {
	Min, Max rl.Vector3
	Color    rl.Color
}

// BoxFromSphere returns the world AABB of a bounding sphere. A zero radius
// gives a degenerate box at center.
func BoxFromSphere(center rl.Vector3, radius float32, color rl.Color) *Box {
	r := rl.Vector3{X: radius, Y: radius, Z: radius}
	return &Box{
		Min:   rl.Vector3Subtract(center, r),
		Max:   rl.Vector3Add(center, r),
		Color: color,
	}
}

func (b *Box) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(b.Min, b.Max), 0.5)
}

func (b *Box) Size() rl.Vector3 {
	return rl.Vector3Subtract(b.Max, b.Min)
}

// Arrow points from Origin along Dir for Length units.
type Arrow struct {
	Origin rl.Vector3
	Dir    rl.Vector3
	Length float32
	Color  rl.Color
}

// ArrowTo builds an arrow from origin to target. Dir is normalized; a
// zero-length arrow keeps a zero Dir.
func ArrowTo(origin, target rl.Vector3, color rl.Color) *Arrow {
	d := rl.Vector3Subtract(target, origin)
	l := rl.Vector3Length(d)
	a := &Arrow{Origin: origin, Length: l, Color: color}
	if l > 0 {
		a.Dir = rl.Vector3Scale(d, 1/l)
	}
	return a
}

func (a *Arrow) Tip() rl.Vector3 {
	return rl.Vector3Add(a.Origin, rl.Vector3Scale(a.Dir, a.Length))
}

// RandomColor picks an opaque color. Each locate call gets a new one so
// consecutive highlights are told apart.
func RandomColor() rl.Color {
	return rl.NewColor(uint8(rand.IntN(256)), uint8(rand.IntN(256)), uint8(rand.IntN(256)), 255)
}
