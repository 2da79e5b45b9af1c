package panel

import (
	"math"
	"strconv"

	"cogentcore.org/core/base/reflectx"
)

// Display renders the live value for a renderer. Numbers get as many
// decimals as their step needs, two when they have no step. A button shows
// its label.
func (c *Control) Display() string {
	switch c.kind {
	case Button:
		return c.label
	case Toggle:
		b, _ := reflectx.ToBool(c.Value())
		if b {
			return "on"
		}
		return "off"
	case Number:
		if c.Integer() {
			i, err := reflectx.ToInt(c.Value())
			if err == nil {
				return strconv.FormatInt(i, 10)
			}
		}
		return strconv.FormatFloat(c.Float(), 'f', Decimals(c.step), 64)
	}
	return reflectx.ToString(c.Value())
}

// Integer reports whether a number control is bound to an integer.
func (c *Control) Integer() bool {
	return c.kind == Number && isInteger(c.Value())
}

// Decimals is the number of fraction digits needed to show multiples of step.
func Decimals(step float64) int {
	if step <= 0 {
		return 2
	}
	if step >= 1 {
		return 0
	}
	d := int(math.Ceil(-math.Log10(step) - 1e-9))
	return min(d, 6)
}
