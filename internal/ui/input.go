package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/inspect"
)

// KeyName maps a raylib key code to the name navigation bindings use:
// arrows by direction, letters lowercase, digits as themselves.
func KeyName(code int32) (inspect.Key, bool) {
	switch code {
	case rl.KeyUp:
		return inspect.KeyUp, true
	case rl.KeyDown:
		return inspect.KeyDown, true
	case rl.KeyLeft:
		return inspect.KeyLeft, true
	case rl.KeyRight:
		return inspect.KeyRight, true
	}
	switch {
	case code >= rl.KeyA && code <= rl.KeyZ:
		return inspect.Key(string(rune('a' + code - rl.KeyA))), true
	case code >= rl.KeyZero && code <= rl.KeyNine:
		return inspect.Key(string(rune('0' + code - rl.KeyZero))), true
	}
	return "", false
}

// ModifiersFrom collects the held modifiers, querying down for each of the
// left and right variants.
func ModifiersFrom(down func(key int32) bool) inspect.Modifiers {
	var m inspect.Modifiers
	either := func(a, b int32) bool { return down(a) || down(b) }
	if either(rl.KeyLeftShift, rl.KeyRightShift) {
		m |= inspect.ModShift
	}
	if either(rl.KeyLeftControl, rl.KeyRightControl) {
		m |= inspect.ModCtrl
	}
	if either(rl.KeyLeftAlt, rl.KeyRightAlt) {
		m |= inspect.ModAlt
	}
	if either(rl.KeyLeftSuper, rl.KeyRightSuper) {
		m |= inspect.ModSuper
	}
	return m
}

// HandleKeys feeds this frame's key presses to the navigation bindings. It
// reports whether any press moved the focus.
func HandleKeys(nav interface {
	HandleKey(inspect.Key, inspect.Modifiers) bool
}) bool {
	mods := ModifiersFrom(func(k int32) bool { return rl.IsKeyDown(k) })
	moved := false
	for {
		code := rl.GetKeyPressed()
		if code == 0 {
			break
		}
		if key, ok := KeyName(code); ok && nav.HandleKey(key, mods) {
			moved = true
		}
	}
	return moved
}
