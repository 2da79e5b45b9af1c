package engine

import (
	"math"
	"strconv"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/inspect"
)

var uidCounter atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in radians, applied X then Y then Z
	Scale    rl.Vector3
}

// Layers is a bit mask of the render layers an object belongs to.
type Layers struct {
	Mask int32
}

type GameObject struct {
	UID       uint64
	Name      string
	Type      string
	ElementID string
	Tags      []string
	Visible   bool

	Transform
	// Matrix is a row-major local offset applied after Transform.
	Matrix      [16]float32
	MatrixWorld rl.Matrix
	Layers      Layers

	Material *Material
	Geometry *Geometry
	Lens     *Camera
	UserData map[string]any

	Scene      *Scene `inspect:"-"`
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
	removed    bool
}

// Identity is the row-major identity for GameObject.Matrix.
var Identity = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:     uidCounter.Add(1),
		Name:    name,
		Type:    "Object3D",
		Visible: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		Matrix:      Identity,
		MatrixWorld: rl.MatrixIdentity(),
		Layers:      Layers{Mask: 1},
		components:  make([]Component, 0),
		Children:    make([]*GameObject, 0),
	}
}

// NewMesh creates a renderable object with a geometry and a material.
func NewMesh(name string, geo *Geometry, mat *Material) *GameObject {
	g := NewGameObject(name)
	g.Type = "Mesh"
	g.Geometry = geo
	g.Material = mat
	return g
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T attached to g.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Visible {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddChild reparents child under g, detaching it from its previous parent.
func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
	if g.Scene != nil && child.Scene != g.Scene {
		g.Scene.register(child)
	}
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// LocalMatrix composes scale, rotation (X, Y, Z), translation and the Matrix
// offset.
func (g *GameObject) LocalMatrix() rl.Matrix {
	s := rl.MatrixScale(g.Scale.X, g.Scale.Y, g.Scale.Z)
	rotX := rotateX(g.Rotation.X)
	rotY := rotateY(g.Rotation.Y)
	rotZ := rotateZ(g.Rotation.Z)
	rot := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	t := rl.MatrixTranslate(g.Position.X, g.Position.Y, g.Position.Z)
	trs := rl.MatrixMultiply(rl.MatrixMultiply(s, rot), t)
	return rl.MatrixMultiply(trs, fromRowMajor(g.Matrix))
}

// WorldMatrix is computed from the live transforms of g and its ancestors.
func (g *GameObject) WorldMatrix() rl.Matrix {
	if g.Parent == nil {
		return g.LocalMatrix()
	}
	return rl.MatrixMultiply(g.LocalMatrix(), g.Parent.WorldMatrix())
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	m := g.WorldMatrix()
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Scale.X,
		Y: ps.Y * g.Scale.Y,
		Z: ps.Z * g.Scale.Z,
	}
}

// Rotations are right-handed: a quarter turn about Y takes +X to -Z.
func rotateX(a float32) rl.Matrix {
	s, c := sincos(a)
	m := rl.MatrixIdentity()
	m.M5, m.M9 = c, -s
	m.M6, m.M10 = s, c
	return m
}

func rotateY(a float32) rl.Matrix {
	s, c := sincos(a)
	m := rl.MatrixIdentity()
	m.M0, m.M8 = c, s
	m.M2, m.M10 = -s, c
	return m
}

func rotateZ(a float32) rl.Matrix {
	s, c := sincos(a)
	m := rl.MatrixIdentity()
	m.M0, m.M4 = c, -s
	m.M1, m.M5 = s, c
	return m
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// fromRowMajor converts a row-major 4x4 array into a raylib matrix.
func fromRowMajor(e [16]float32) rl.Matrix {
	return rl.Matrix{
		M0: e[0], M4: e[1], M8: e[2], M12: e[3],
		M1: e[4], M5: e[5], M9: e[6], M13: e[7],
		M2: e[8], M6: e[9], M10: e[10], M14: e[11],
		M3: e[12], M7: e[13], M11: e[14], M15: e[15],
	}
}

// The methods below let the inspector walk GameObjects.

func (g *GameObject) UniqueID() string {
	if g.UID == 0 {
		return ""
	}
	return strconv.FormatUint(g.UID, 10)
}

func (g *GameObject) TypeName() string {
	if g.Type == "" {
		return "Object3D"
	}
	return g.Type
}

func (g *GameObject) NodeName() string    { return g.Name }
func (g *GameObject) HostElement() string { return g.ElementID }
func (g *GameObject) Inspectable() any    { return g }
func (g *GameObject) Alive() bool         { return !g.removed }

func (g *GameObject) ParentNode() inspect.Node {
	if g.Parent == nil {
		return nil
	}
	return g.Parent
}

func (g *GameObject) ChildNodes() []inspect.Node {
	out := make([]inspect.Node, len(g.Children))
	for i, c := range g.Children {
		out[i] = c
	}
	return out
}

func (g *GameObject) PositionRef() *rl.Vector3 {
	return &g.Position
}

func (g *GameObject) BoundingSphere() (center rl.Vector3, radius float32, ok bool) {
	if g.Geometry == nil || g.Geometry.BoundingSphere == nil {
		return rl.Vector3{}, 0, false
	}
	s := g.Geometry.BoundingSphere
	return s.Center, s.Radius, true
}
