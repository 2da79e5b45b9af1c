package tween

import (
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestQuadInProgress(t *testing.T) {
	tw := New(nil)
	v := rl.Vector3{}
	tw.Tween(&v, rl.Vector3{X: 10, Y: -4}, time.Second)

	tw.Update(0.5)
	assert.InDelta(t, 2.5, v.X, 1e-5)
	assert.InDelta(t, -1, v.Y, 1e-5)
	assert.True(t, tw.Running(&v))

	tw.Update(0.6)
	assert.Equal(t, rl.Vector3{X: 10, Y: -4}, v, "lands exactly on the end value")
	assert.Equal(t, 0, tw.Active())
}

func TestLastTweenWins(t *testing.T) {
	tw := New(nil)
	v := rl.Vector3{}
	tw.Tween(&v, rl.Vector3{X: 10}, time.Second)
	tw.Update(0.5)

	tw.Tween(&v, rl.Vector3{X: -10}, time.Second)
	assert.Equal(t, 1, tw.Active())

	tw.Update(2)
	assert.Equal(t, float32(-10), v.X)
}

func TestZeroDurationAssigns(t *testing.T) {
	tw := New(nil)
	v := rl.Vector3{}
	tw.Tween(&v, rl.Vector3{Z: 3}, time.Second)
	tw.Tween(&v, rl.Vector3{Z: 7}, 0)

	assert.Equal(t, float32(7), v.Z)
	assert.Equal(t, 0, tw.Active())
	tw.Tween(nil, rl.Vector3{}, time.Second)
	assert.Equal(t, 0, tw.Active())
}

func TestIndependentTargets(t *testing.T) {
	tw := New(nil)
	a, b := rl.Vector3{}, rl.Vector3{}
	tw.Tween(&a, rl.Vector3{X: 1}, time.Second)
	tw.Tween(&b, rl.Vector3{X: 1}, 2*time.Second)

	tw.Update(1)
	assert.Equal(t, float32(1), a.X)
	assert.Less(t, b.X, float32(1))
	assert.Equal(t, 1, tw.Active())

	tw.Stop(&b)
	assert.Equal(t, 0, tw.Active())
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("linear")
	assert.True(t, ok)
	assert.InDelta(t, 5, e(0.5, 0, 10, 1), 1e-5)

	_, ok = Lookup("wobble")
	assert.False(t, ok)

	tw := New(nil)
	tw.SetEasing(e)
	v := rl.Vector3{}
	tw.Tween(&v, rl.Vector3{X: 10}, time.Second)
	tw.Update(0.5)
	assert.InDelta(t, 5, v.X, 1e-5)
}
