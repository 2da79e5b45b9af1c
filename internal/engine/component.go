package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}

// Spin rotates its object at a constant angular speed in radians per second.
type Spin struct {
	BaseComponent
	Speed rl.Vector3
}

func (s *Spin) Update(dt float32) {
	g := s.GetGameObject()
	if g == nil {
		return
	}
	g.Rotation = wrapAngles(rl.Vector3Add(g.Rotation, rl.Vector3Scale(s.Speed, dt)))
}

// Orbit moves its object on a horizontal circle around another object.
type Orbit struct {
	BaseComponent
	Center GameObjectRef
	Radius float32
	Speed  float32 // radians per second

	angle float32
}

func (o *Orbit) Update(dt float32) {
	g := o.GetGameObject()
	if g == nil {
		return
	}
	var c rl.Vector3
	if center := o.Center.Get(g.Scene); center != nil {
		c = center.Position
	}
	o.angle = wrapAngle(o.angle + o.Speed*dt)
	g.Position = rl.Vector3{
		X: c.X + o.Radius*float32(math.Cos(float64(o.angle))),
		Y: g.Position.Y,
		Z: c.Z + o.Radius*float32(math.Sin(float64(o.angle))),
	}
}

// wrapAngle keeps a to [0, 2π).
func wrapAngle(a float32) float32 {
	const full = 2 * math.Pi
	a = float32(math.Mod(float64(a), full))
	if a < 0 {
		a += full
	}
	return a
}

func wrapAngles(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: wrapAngle(v.X), Y: wrapAngle(v.Y), Z: wrapAngle(v.Z)}
}
