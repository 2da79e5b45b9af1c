package enums

// Blend factors.
const (
	ZeroFactor             = 200
	OneFactor              = 201
	SrcColorFactor         = 202
	OneMinusSrcColorFactor = 203
	SrcAlphaFactor         = 204
	OneMinusSrcAlphaFactor = 205
	DstAlphaFactor         = 206
	OneMinusDstAlphaFactor = 207
	DstColorFactor         = 208
	OneMinusDstColorFactor = 209
	SrcAlphaSaturateFactor = 210
)

// Blend equations.
const (
	AddEquation             = 100
	SubtractEquation        = 101
	ReverseSubtractEquation = 102
	MinEquation             = 103
	MaxEquation             = 104
)

// Blending modes.
const (
	NoBlending          = 0
	NormalBlending      = 1
	AdditiveBlending    = 2
	SubtractiveBlending = 3
	MultiplyBlending    = 4
	CustomBlending      = 5
)

// Faces.
const (
	FrontSide  = 0
	BackSide   = 1
	DoubleSide = 2
)

// Depth functions.
const (
	NeverDepth        = 0
	AlwaysDepth       = 1
	LessDepth         = 2
	LessEqualDepth    = 3
	EqualDepth        = 4
	GreaterEqualDepth = 5
	GreaterDepth      = 6
	NotEqualDepth     = 7
)

// Texture encodings.
const (
	LinearEncoding = 3000
	SRGBEncoding   = 3001
	RGBEEncoding   = 3002
	LogLuvEncoding = 3003
	RGBM7Encoding  = 3004
	RGBM16Encoding = 3005
	RGBDEncoding   = 3006
	GammaEncoding  = 3007
)

// Wrapping modes.
const (
	RepeatWrapping         = 1000
	ClampToEdgeWrapping    = 1001
	MirroredRepeatWrapping = 1002
)

// Texture filters.
const (
	NearestFilter              = 1003
	NearestMipmapNearestFilter = 1004
	NearestMipmapLinearFilter  = 1005
	LinearFilter               = 1006
	LinearMipmapNearestFilter  = 1007
	LinearMipmapLinearFilter   = 1008
)

// Pixel formats.
const (
	AlphaFormat          = 1021
	RGBFormat            = 1022
	RGBAFormat           = 1023
	LuminanceFormat      = 1024
	LuminanceAlphaFormat = 1025
	DepthFormat          = 1026
	DepthStencilFormat   = 1027
	RedFormat            = 1028
)

// Texture mappings.
const (
	UVMapping                        = 300
	CubeReflectionMapping            = 301
	CubeRefractionMapping            = 302
	EquirectangularReflectionMapping = 303
	EquirectangularRefractionMapping = 304
	CubeUVReflectionMapping          = 306
)

var (
	BlendSrc = NewTable("blendSrc",
		[]string{"0", "1", "SrcColor", "1 - SrcColor", "SrcAlpha", "1 - SrcAlpha", "DstAlpha", "1 - DstAlpha", "DstColor", "1 - DstColor", "SrcAlphaSat"},
		[]int{ZeroFactor, OneFactor, SrcColorFactor, OneMinusSrcColorFactor, SrcAlphaFactor, OneMinusSrcAlphaFactor, DstAlphaFactor, OneMinusDstAlphaFactor, DstColorFactor, OneMinusDstColorFactor, SrcAlphaSaturateFactor})

	// BlendDst has no SrcAlphaSat: it is only valid as a source factor.
	BlendDst = NewTable("blendDst",
		[]string{"0", "1", "SrcColor", "1 - SrcColor", "SrcAlpha", "1 - SrcAlpha", "DstAlpha", "1 - DstAlpha", "DstColor", "1 - DstColor"},
		[]int{ZeroFactor, OneFactor, SrcColorFactor, OneMinusSrcColorFactor, SrcAlphaFactor, OneMinusSrcAlphaFactor, DstAlphaFactor, OneMinusDstAlphaFactor, DstColorFactor, OneMinusDstColorFactor})

	BlendEquation = NewTable("blendEquation",
		[]string{"Add", "Subtract", "ReverseSubtract", "Min", "Max"},
		[]int{AddEquation, SubtractEquation, ReverseSubtractEquation, MinEquation, MaxEquation})

	Blending = NewTable("blending",
		[]string{"None", "Normal", "Additive", "Subtractive", "Multiply", "Custom"},
		[]int{NoBlending, NormalBlending, AdditiveBlending, SubtractiveBlending, MultiplyBlending, CustomBlending})

	Side = NewTable("side",
		[]string{"Front Side", "Back Side", "Double Side"},
		[]int{FrontSide, BackSide, DoubleSide})

	DepthFunc = NewTable("depthFunc",
		[]string{"Never", "Always", "Equal", "Less", "LessEqual", "GreaterEqual", "Greater", "Not Equal"},
		[]int{NeverDepth, AlwaysDepth, EqualDepth, LessDepth, LessEqualDepth, GreaterEqualDepth, GreaterDepth, NotEqualDepth})

	Encoding = NewTable("encoding",
		[]string{"Linear", "sRGB", "Gamma", "RGBE", "LogLuv", "RGBM7", "RGBM16", "RGBD"},
		[]int{LinearEncoding, SRGBEncoding, GammaEncoding, RGBEEncoding, LogLuvEncoding, RGBM7Encoding, RGBM16Encoding, RGBDEncoding})

	Wrap = NewTable("wrap",
		[]string{"Repeat", "ClampToEdge", "MirroredRepeat"},
		[]int{RepeatWrapping, ClampToEdgeWrapping, MirroredRepeatWrapping})

	MagFilter = NewTable("magFilter",
		[]string{"Nearest", "Linear"},
		[]int{NearestFilter, LinearFilter})

	MinFilter = NewTable("minFilter",
		[]string{"Nearest", "NearestMipmapNearest", "NearestMipmapLinear", "Linear", "LinearMipmapNearest", "LinearMipmapLinear"},
		[]int{NearestFilter, NearestMipmapNearestFilter, NearestMipmapLinearFilter, LinearFilter, LinearMipmapNearestFilter, LinearMipmapLinearFilter})

	Format = NewTable("format",
		[]string{"Alpha", "RGB", "RGBA", "Luminance", "LuminanceAlpha", "Depth", "DepthStencil", "Red"},
		[]int{AlphaFormat, RGBFormat, RGBAFormat, LuminanceFormat, LuminanceAlphaFormat, DepthFormat, DepthStencilFormat, RedFormat})

	Mapping = NewTable("mapping",
		[]string{"UV", "CubeReflection", "CubeRefraction", "EquirectangularReflection", "EquirectangularRefraction", "CubeUVReflection"},
		[]int{UVMapping, CubeReflectionMapping, CubeRefractionMapping, EquirectangularReflectionMapping, EquirectangularRefractionMapping, CubeUVReflectionMapping})
)

// textureFields are the keys whose change requires the texture to be
// uploaded again.
var textureFields = map[string]bool{
	"encoding":  true,
	"wrapS":     true,
	"wrapT":     true,
	"magFilter": true,
	"minFilter": true,
	"format":    true,
	"mapping":   true,
}

// IsTextureField reports whether writing the field invalidates GPU texture data.
func IsTextureField(field string) bool {
	return textureFields[field]
}

func init() {
	Register("blendSrc", BlendSrc)
	Register("blendDst", BlendDst)
	Register("blendEquation", BlendEquation)
	Register("blending", Blending)
	Register("side", Side)
	Register("depthFunc", DepthFunc)
	Register("encoding", Encoding)
	Register("wrapS", Wrap)
	Register("wrapT", Wrap)
	Register("magFilter", MagFilter)
	Register("minFilter", MinFilter)
	Register("format", Format)
	Register("mapping", Mapping)
}
