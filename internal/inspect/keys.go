package inspect

import (
	"fmt"
	"strings"

	"inspect3d/internal/config"
)

// Key names a navigation key as frontends report it.
type Key string

const (
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyLeft  Key = "left"
	KeyRight Key = "right"
)

// Modifiers is the set of modifier keys held during a key press.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// ParseModifier accepts shift, ctrl (or control), alt and super.
func ParseModifier(s string) (Modifiers, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shift":
		return ModShift, nil
	case "ctrl", "control":
		return ModCtrl, nil
	case "alt":
		return ModAlt, nil
	case "super", "cmd", "meta":
		return ModSuper, nil
	}
	return 0, fmt.Errorf("inspect: unknown modifier %q", s)
}

// Bindings maps keys to focus moves. The moves only apply while Modifier is
// held.
type Bindings struct {
	Modifier        Modifiers
	Parent          Key
	FirstChild      Key
	PreviousBrother Key
	NextBrother     Key
}

func DefaultBindings() Bindings {
	return Bindings{
		Modifier:        ModShift,
		Parent:          KeyUp,
		FirstChild:      KeyDown,
		PreviousBrother: KeyLeft,
		NextBrother:     KeyRight,
	}
}

// BindingsFrom reads the navigation section of a config. Empty keys keep
// their default.
func BindingsFrom(n config.Navigation) (Bindings, error) {
	b := DefaultBindings()
	if n.Modifier != "" {
		m, err := ParseModifier(n.Modifier)
		if err != nil {
			return b, err
		}
		b.Modifier = m
	}
	set := func(dst *Key, s string) {
		if s != "" {
			*dst = Key(strings.ToLower(s))
		}
	}
	set(&b.Parent, n.Parent)
	set(&b.FirstChild, n.FirstChild)
	set(&b.PreviousBrother, n.PreviousBrother)
	set(&b.NextBrother, n.NextBrother)
	return b, nil
}

// HandleKey runs the focus move bound to key. It reports whether the key was
// consumed, which requires the modifier to be held.
func (nv *Navigation) HandleKey(key Key, mods Modifiers) bool {
	if !mods.Has(nv.keys.Modifier) {
		return false
	}
	switch Key(strings.ToLower(string(key))) {
	case nv.keys.Parent:
		nv.MoveToParent()
	case nv.keys.FirstChild:
		nv.MoveToFirstChild()
	case nv.keys.PreviousBrother:
		nv.MoveToPreviousBrother()
	case nv.keys.NextBrother:
		nv.MoveToNextBrother()
	default:
		return false
	}
	return true
}
