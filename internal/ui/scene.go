package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/demo"
	"inspect3d/internal/engine"
	"inspect3d/internal/gizmo"
)

// DrawScene draws every visible mesh of s inside the camera's view, then the
// locate highlight, the indicator arrow and the transform gizmo on top. It
// returns the number of meshes drawn.
func DrawScene(s *engine.Scene, settings *demo.Settings, g *gizmo.Transform) int {
	cam := s.CameraObject()
	if cam == nil {
		return 0
	}
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))
	r := renderer{frustum: FrustumOf(cam, aspect), wireframe: settings.Wireframe}

	rl.BeginMode3D(engine.RaylibCamera(cam))
	if settings.ShowGrid {
		rl.DrawGrid(settings.GridSlices, settings.GridSpacing)
	}
	r.drawNode(s.RootObject())
	gizmo.DrawBox(s.Highlight())
	gizmo.DrawArrow(s.Indicator())
	if g != nil {
		g.Draw()
	}
	rl.EndMode3D()
	return r.drawn
}

type renderer struct {
	frustum   Frustum
	wireframe bool
	drawn     int
}

func (r *renderer) drawNode(g *engine.GameObject) {
	if !g.Visible {
		return
	}
	if r.visible(g) {
		drawMesh(g, r.wireframe || (g.Material != nil && g.Material.Wireframe))
		r.drawn++
	}
	for _, c := range g.Children {
		r.drawNode(c)
	}
}

// visible reports whether g has geometry inside the view.
func (r *renderer) visible(g *engine.GameObject) bool {
	if g.Geometry == nil {
		return false
	}
	center, radius, ok := worldSphere(g)
	return !ok || r.frustum.ContainsSphere(center, radius)
}

// drawMesh draws the geometry of g at the origin of its world matrix.
func drawMesh(g *engine.GameObject, wireframe bool) {
	m := rl.MatrixToFloat(g.WorldMatrix())
	rl.PushMatrix()
	rl.MultMatrixf(m[:])
	color := g.Material.Tint()
	switch g.Geometry.Kind {
	case "sphere":
		r := g.Geometry.Size.X / 2
		if wireframe {
			rl.DrawSphereWires(rl.Vector3{}, r, 12, 16, color)
		} else {
			rl.DrawSphere(rl.Vector3{}, r, color)
		}
	default:
		if wireframe {
			rl.DrawCubeWiresV(rl.Vector3{}, g.Geometry.Size, color)
		} else {
			rl.DrawCubeV(rl.Vector3{}, g.Geometry.Size, color)
			rl.DrawCubeWiresV(rl.Vector3{}, g.Geometry.Size, rl.Fade(rl.Black, 0.3))
		}
	}
	rl.PopMatrix()
}
