package panel

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"cogentcore.org/core/base/reflectx"
)

// Kind is the widget used for a control.
type Kind int

const (
	Number Kind = iota
	Text
	Toggle
	Choice
	Button
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	case Toggle:
		return "toggle"
	case Choice:
		return "choice"
	case Button:
		return "button"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	ErrNotButton     = errors.New("panel: control is not a button")
	ErrNotEditable   = errors.New("panel: buttons have no value")
	ErrUnknownChoice = errors.New("panel: unknown choice")
)

// Option configures a control when it is added.
type Option func(c *Control)

// Range bounds a number control. Values are clamped into [min, max].
func Range(min, max float64) Option {
	return func(c *Control) {
		c.min, c.max, c.bounded = min, max, true
	}
}

// Wrap bounds a number control like Range, but values outside [min, max)
// wrap around instead of clamping. Suited to angles.
func Wrap(min, max float64) Option {
	return func(c *Control) {
		c.min, c.max, c.bounded, c.wrap = min, max, true, true
	}
}

// Step sets the granularity of a number control.
func Step(step float64) Option {
	return func(c *Control) {
		c.step = step
	}
}

// Control is one leaf widget bound to a live value.
type Control struct {
	label   string
	kind    Kind
	parent  *Folder
	binding Binding

	min, max float64
	bounded  bool
	wrap     bool
	step     float64

	choices  []string
	action   func()
	onChange []func(any)
}

func (c *Control) Label() string   { return c.label }
func (c *Control) Kind() Kind      { return c.kind }
func (c *Control) Parent() *Folder { return c.parent }
func (c *Control) Step() float64   { return c.step }

// Range returns the bounds of a number control.
func (c *Control) Range() (min, max float64, ok bool) {
	return c.min, c.max, c.bounded
}

// Choices returns the labels of a choice control.
func (c *Control) Choices() []string {
	return c.choices
}

// OnChange registers fn to run after every successful write.
func (c *Control) OnChange(fn func(any)) *Control {
	if fn != nil {
		c.onChange = append(c.onChange, fn)
	}
	return c
}

// Value reads the live value.
func (c *Control) Value() any {
	if c.binding == nil {
		return nil
	}
	return c.binding.Get()
}

// Float reads the live value of a number control.
func (c *Control) Float() float64 {
	f, _ := reflectx.ToFloat(c.Value())
	return f
}

// SetValue converts v to the control's kind, applies its constraints, writes it
// and fires the change handlers. Successful writes are recorded in the panel
// history.
func (c *Control) SetValue(v any) error {
	before, raw := c.snapshot()
	if err := c.write(v); err != nil {
		return err
	}
	c.record(before, raw)
	return nil
}

// snapshot returns the value to restore on undo. Controls over a
// RawBinding snapshot the underlying value, which may have no label.
func (c *Control) snapshot() (any, bool) {
	if rb, ok := c.binding.(RawBinding); ok {
		return rb.Raw().Get(), true
	}
	return c.Value(), false
}

func (c *Control) restore(v any, raw bool) error {
	if !raw {
		return c.write(v)
	}
	if err := c.binding.(RawBinding).Raw().Set(v); err != nil {
		return err
	}
	c.changed()
	return nil
}

func (c *Control) write(v any) error {
	var out any
	switch c.kind {
	case Number:
		f, err := reflectx.ToFloat(v)
		if err != nil {
			return fmt.Errorf("panel: %s: %w", c.label, err)
		}
		f = c.constrain(f)
		if lo, hi, ok := integerBounds(c.Value()); ok {
			f = math.Max(lo, math.Min(hi, f))
		}
		out = f
	case Text:
		out = reflectx.ToString(v)
	case Toggle:
		b, err := reflectx.ToBool(v)
		if err != nil {
			return fmt.Errorf("panel: %s: %w", c.label, err)
		}
		out = b
	case Choice:
		label := reflectx.ToString(v)
		if !c.hasChoice(label) {
			return fmt.Errorf("%w %q for %s", ErrUnknownChoice, label, c.label)
		}
		out = label
	case Button:
		return ErrNotEditable
	}
	if err := c.binding.Set(out); err != nil {
		return err
	}
	c.changed()
	return nil
}

func (c *Control) changed() {
	val := c.Value()
	for _, fn := range c.onChange {
		fn(val)
	}
}

// Press runs a button's action.
func (c *Control) Press() error {
	if c.kind != Button {
		return ErrNotButton
	}
	if c.action != nil {
		c.action()
	}
	return nil
}

// Nudge moves the value one step in dir: numbers by their step, toggles flip,
// choices cycle. Buttons are pressed.
func (c *Control) Nudge(dir int) error {
	switch c.kind {
	case Number:
		step := c.step
		if step == 0 {
			step = 0.01
			if isInteger(c.Value()) {
				step = 1
			}
		}
		return c.SetValue(c.Float() + float64(dir)*step)
	case Toggle:
		b, _ := reflectx.ToBool(c.Value())
		return c.SetValue(!b)
	case Choice:
		if len(c.choices) == 0 {
			return nil
		}
		i := -1
		cur := reflectx.ToString(c.Value())
		for j, ch := range c.choices {
			if ch == cur {
				i = j
				break
			}
		}
		i = (i + dir + len(c.choices)) % len(c.choices)
		return c.SetValue(c.choices[i])
	case Button:
		return c.Press()
	}
	return nil
}

func (c *Control) constrain(f float64) float64 {
	if c.wrap {
		if c.step > 0 {
			f = math.Round(f/c.step) * c.step
		}
		span := c.max - c.min
		if span <= 0 {
			return c.min
		}
		f = math.Mod(f-c.min, span)
		if f < 0 {
			f += span
		}
		return c.min + f
	}
	if c.bounded {
		f = math.Max(c.min, math.Min(c.max, f))
	}
	if c.step > 0 {
		f = math.Round(f/c.step) * c.step
		if c.bounded {
			f = math.Max(c.min, math.Min(c.max, f))
		}
	}
	return f
}

func (c *Control) hasChoice(label string) bool {
	for _, ch := range c.choices {
		if ch == label {
			return true
		}
	}
	return false
}

// integerBounds returns the range an integer value's type can hold.
// Writes are clamped to it so they never wrap around.
func integerBounds(v any) (lo, hi float64, ok bool) {
	if v == nil {
		return 0, 0, false
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		half := math.Ldexp(1, t.Bits()-1)
		return -half, belowPow2(half), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 0, belowPow2(math.Ldexp(1, t.Bits())), true
	}
	return 0, 0, false
}

// belowPow2 is the largest integer below the power of two p that survives
// a float64 round trip.
func belowPow2(p float64) float64 {
	if p > 1<<53 {
		return math.Nextafter(p, 0)
	}
	return p - 1
}

func isInteger(v any) bool {
	if v == nil {
		return false
	}
	return reflectx.KindIsInt(reflect.TypeOf(v).Kind())
}
