package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/enums"
)

// Material describes how a mesh is shaded and blended. Enum-valued fields
// hold the raw constants from the enums package.
type Material struct {
	Name          string
	Color         rl.Color
	Opacity       float32
	Transparent   bool
	Wireframe     bool
	Blending      int
	BlendSrc      int
	BlendDst      int
	BlendEquation int
	Side          int
	DepthTest     bool
	DepthFunc     int
	VertexColors  bool
	Map           *Texture
}

func NewMaterial(name string, color rl.Color) *Material {
	return &Material{
		Name:          name,
		Color:         color,
		Opacity:       1,
		Blending:      enums.NormalBlending,
		BlendSrc:      enums.SrcAlphaFactor,
		BlendDst:      enums.OneMinusSrcAlphaFactor,
		BlendEquation: enums.AddEquation,
		Side:          enums.FrontSide,
		DepthTest:     true,
		DepthFunc:     enums.LessEqualDepth,
	}
}

// Tint is the material color with Opacity folded into alpha.
func (m *Material) Tint() rl.Color {
	if m == nil {
		return rl.White
	}
	c := m.Color
	if m.Transparent {
		c = rl.Fade(c, m.Opacity)
	}
	return c
}

// Texture is image data sampled by a material. Changing any sampling field
// requires a re-upload, signalled by NeedsUpdate and a bumped Version.
type Texture struct {
	Name        string
	Width       int
	Height      int
	WrapS       int
	WrapT       int
	MagFilter   int
	MinFilter   int
	Format      int
	Encoding    int
	Mapping     int
	NeedsUpdate bool
	Version     int
}

func NewTexture(name string, width, height int) *Texture {
	return &Texture{
		Name:      name,
		Width:     width,
		Height:    height,
		WrapS:     enums.ClampToEdgeWrapping,
		WrapT:     enums.ClampToEdgeWrapping,
		MagFilter: enums.LinearFilter,
		MinFilter: enums.LinearMipmapLinearFilter,
		Format:    enums.RGBAFormat,
		Encoding:  enums.LinearEncoding,
		Mapping:   enums.UVMapping,
	}
}

// Sphere is a bounding sphere in the local space of its geometry.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// Geometry is the shape of a mesh. Only what the renderer and the bounding
// computations need is kept.
type Geometry struct {
	Kind           string
	Size           rl.Vector3
	BoundingSphere *Sphere
}

// NewBoxGeometry returns a box geometry centred on the origin.
func NewBoxGeometry(w, h, d float32) *Geometry {
	size := rl.Vector3{X: w, Y: h, Z: d}
	return &Geometry{
		Kind:           "box",
		Size:           size,
		BoundingSphere: &Sphere{Radius: rl.Vector3Length(size) / 2},
	}
}

// NewSphereGeometry returns a sphere geometry centred on the origin.
func NewSphereGeometry(radius float32) *Geometry {
	return &Geometry{
		Kind:           "sphere",
		Size:           rl.Vector3{X: radius * 2, Y: radius * 2, Z: radius * 2},
		BoundingSphere: &Sphere{Radius: radius},
	}
}
