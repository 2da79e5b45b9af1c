// Package tween animates vectors over time with the raylib easing curves.
package tween

import (
	"time"

	"github.com/gen2brain/raylib-go/easings"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Easing has the raylib easings signature: t is elapsed time, b the start
// value, c the total change and d the duration.
type Easing func(t, b, c, d float32) float32

var named = map[string]Easing{
	"linear":     easings.LinearNone,
	"quadIn":     easings.QuadIn,
	"quadOut":    easings.QuadOut,
	"quadInOut":  easings.QuadInOut,
	"cubicIn":    easings.CubicIn,
	"cubicOut":   easings.CubicOut,
	"cubicInOut": easings.CubicInOut,
	"sineIn":     easings.SineIn,
	"sineOut":    easings.SineOut,
	"sineInOut":  easings.SineInOut,
	"circInOut":  easings.CircInOut,
	"expoOut":    easings.ExpoOut,
	"backOut":    easings.BackOut,
	"bounceOut":  easings.BounceOut,
	"elasticOut": easings.ElasticOut,
}

// Lookup returns the easing registered under name.
func Lookup(name string) (Easing, bool) {
	e, ok := named[name]
	return e, ok
}

type tween struct {
	target   *rl.Vector3
	from, to rl.Vector3
	elapsed  float32
	duration float32
	ease     Easing
}

// Tweener runs at most one tween per target; starting a new tween on a target
// replaces the running one. It is advanced by Update once per frame.
type Tweener struct {
	ease   Easing
	active map[*rl.Vector3]*tween
	order  []*rl.Vector3
}

// New creates a tweener with the given default easing. A nil easing means
// ease-in-quad.
func New(ease Easing) *Tweener {
	if ease == nil {
		ease = easings.QuadIn
	}
	return &Tweener{ease: ease, active: make(map[*rl.Vector3]*tween)}
}

// SetEasing changes the easing used by tweens started afterwards.
func (tw *Tweener) SetEasing(ease Easing) {
	if ease != nil {
		tw.ease = ease
	}
}

// Tween moves *target from its current value to `to` over d. A non-positive
// duration assigns immediately.
func (tw *Tweener) Tween(target *rl.Vector3, to rl.Vector3, d time.Duration) {
	if target == nil {
		return
	}
	if d <= 0 {
		tw.Stop(target)
		*target = to
		return
	}
	if _, ok := tw.active[target]; !ok {
		tw.order = append(tw.order, target)
	}
	tw.active[target] = &tween{
		target:   target,
		from:     *target,
		to:       to,
		duration: float32(d.Seconds()),
		ease:     tw.ease,
	}
}

// Stop cancels the tween on target, leaving it where it is.
func (tw *Tweener) Stop(target *rl.Vector3) {
	if _, ok := tw.active[target]; !ok {
		return
	}
	delete(tw.active, target)
	for i, t := range tw.order {
		if t == target {
			tw.order = append(tw.order[:i], tw.order[i+1:]...)
			break
		}
	}
}

// Update advances every running tween by dt seconds. Finished tweens land
// exactly on their end value and are dropped.
func (tw *Tweener) Update(dt float32) {
	kept := tw.order[:0]
	for _, target := range tw.order {
		t := tw.active[target]
		t.elapsed += dt
		if t.elapsed >= t.duration {
			*t.target = t.to
			delete(tw.active, target)
			continue
		}
		*t.target = rl.Vector3{
			X: t.ease(t.elapsed, t.from.X, t.to.X-t.from.X, t.duration),
			Y: t.ease(t.elapsed, t.from.Y, t.to.Y-t.from.Y, t.duration),
			Z: t.ease(t.elapsed, t.from.Z, t.to.Z-t.from.Z, t.duration),
		}
		kept = append(kept, target)
	}
	tw.order = kept
}

// Active reports the number of running tweens.
func (tw *Tweener) Active() int {
	return len(tw.active)
}

// Running reports whether target has a tween in progress.
func (tw *Tweener) Running(target *rl.Vector3) bool {
	_, ok := tw.active[target]
	return ok
}
