package ui

import "inspect3d/internal/panel"

// ScrubStep is the value change per pixel when dragging a number field.
// fine divides it by ten.
func ScrubStep(c *panel.Control, fine bool) float64 {
	s := c.Step()
	if s <= 0 {
		s = 0.01
		if c.Integer() {
			s = 0.1
		}
	}
	if fine {
		s /= 10
	}
	return s
}
