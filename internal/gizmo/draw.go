package gizmo

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DrawBox draws a highlight box. Call inside BeginMode3D/EndMode3D.
func DrawBox(b *Box) {
	if b == nil {
		return
	}
	rl.DrawBoundingBox(rl.BoundingBox{Min: b.Min, Max: b.Max}, b.Color)
}

// DrawArrow draws an indicator arrow with a cone-shaped head.
func DrawArrow(a *Arrow) {
	if a == nil || a.Length <= 0 {
		return
	}
	head := a.Length * 0.2
	neck := rl.Vector3Add(a.Origin, rl.Vector3Scale(a.Dir, a.Length-head))
	rl.DrawLine3D(a.Origin, neck, a.Color)
	rl.DrawCylinderEx(neck, a.Tip(), head*0.2, 0, 8, a.Color)
}

// Draw renders the transform gizmo on top of the scene.
func (g *Transform) Draw() {
	if g.value == nil {
		return
	}

	// Disable depth testing so gizmos always draw on top
	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()

	center := g.Center()
	for i, axis := range axes {
		color := colors[i]
		if g.dragging && g.dragAxis == i {
			color = rl.Yellow
		} else if !g.dragging && g.hovered == i {
			color = rl.Yellow
		}

		end := rl.Vector3Add(center, rl.Vector3Scale(axis, length))

		switch g.mode {
		case Move:
			rl.DrawCylinderEx(center, end, thickness, thickness, 8, color)
			tip := rl.Vector3{X: tipSize, Y: tipSize, Z: tipSize}
			rl.DrawCubeV(end, tip, color)
		case Rotate:
			drawRing(center, i, color)
		case Scale:
			rl.DrawCylinderEx(center, end, thickness, thickness, 8, color)
			cubeSize := rl.Vector3{X: 0.25, Y: 0.25, Z: 0.25}
			rl.DrawCubeV(end, cubeSize, color)
			rl.DrawCubeWiresV(end, cubeSize, color)
		}
	}

	rl.DrawRenderBatchActive()
	rl.EnableDepthTest()
}

// drawRing draws the rotation ring around axis i as thick segments.
func drawRing(center rl.Vector3, i int, color rl.Color) {
	const segments = 16
	radius := length * 0.8
	point := func(t float64) rl.Vector3 {
		c, s := radius*float32(math.Cos(t)), radius*float32(math.Sin(t))
		switch i {
		case 0: // X - rotate in YZ plane
			return rl.Vector3{X: center.X, Y: center.Y + c, Z: center.Z + s}
		case 1: // Y - rotate in XZ plane
			return rl.Vector3{X: center.X + c, Y: center.Y, Z: center.Z + s}
		}
		return rl.Vector3{X: center.X + c, Y: center.Y + s, Z: center.Z}
	}
	for s := range segments {
		t0 := float64(s) / segments * math.Pi * 2
		t1 := float64(s+1) / segments * math.Pi * 2
		rl.DrawCylinderEx(point(t0), point(t1), thickness*0.7, thickness*0.7, 6, color)
	}
}
