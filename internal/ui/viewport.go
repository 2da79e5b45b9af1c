package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/gizmo"
)

// DriveGizmo lets the mouse drag the transform gizmo. Input over the panel
// is left to the overlay. It reports whether the gizmo owns the mouse this
// frame.
func DriveGizmo(g *gizmo.Transform, cam rl.Camera3D, o *Overlay) bool {
	if g == nil || !g.Attached() {
		return false
	}
	mouse := rl.GetMousePosition()
	if !g.Dragging() && o != nil && o.Contains(mouse) {
		return false
	}
	ray := rl.GetScreenToWorldRay(mouse, cam)

	if g.Dragging() {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			g.Drag(ray)
		} else {
			g.EndDrag()
		}
		return true
	}

	axis := g.Hover(ray)
	if axis >= 0 && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return g.BeginDrag(axis, ray, cam.Position)
	}
	return axis >= 0
}
