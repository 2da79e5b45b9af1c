package inspect

import (
	"errors"
	"math"
	"reflect"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspect3d/internal/config"
	"inspect3d/internal/enums"
	"inspect3d/internal/panel"
)

type inner struct {
	Depth float64
}

type empty struct {
	hidden int
}

type sample struct {
	UID      int
	Count    int
	Ratio    float32
	Label    string
	On       bool
	Inner    inner
	Ptr      *inner
	Nil      *inner
	Empty    empty
	Items    []int
	None     []string
	Lookup   map[string]float64
	Callback func()
	Complex  complex128
	Secret   string `inspect:"hidden"`
	Ignored  string `inspect:"-"`
}

func newSample() *sample {
	return &sample{
		UID:    7,
		Count:  3,
		Ratio:  0.5,
		Label:  "x",
		Inner:  inner{Depth: 2},
		Ptr:    &inner{Depth: 4},
		Items:  []int{1, 2},
		Lookup: map[string]float64{"b": 2, "a": 1},
	}
}

func classifier(t *testing.T) *Classifier {
	t.Helper()
	logger, _ := bufferLogger()
	return NewClassifier(config.DefaultHidden, logger)
}

func classifyAll(c *Classifier, target any, reveal bool) map[string]Action {
	out := map[string]Action{}
	v := reflect.ValueOf(target).Elem()
	for _, f := range structFields(v) {
		ctx := FieldContext{Owner: f.owner, Hidden: f.hidden}
		out[f.key] = c.Classify(ctx, f.name, f.value, reveal)
	}
	return out
}

func TestClassifyGeneric(t *testing.T) {
	acts := classifyAll(classifier(t), newSample(), false)

	kinds := map[string]ActionKind{}
	for k, a := range acts {
		kinds[k] = a.Kind
	}
	assert.Equal(t, map[string]ActionKind{
		"uid":      ActionSkip,
		"count":    ActionLeaf,
		"ratio":    ActionLeaf,
		"label":    ActionLeaf,
		"on":       ActionLeaf,
		"inner":    ActionSubfolder,
		"ptr":      ActionSubfolder,
		"nil":      ActionSkip,
		"empty":    ActionSkip,
		"items":    ActionSubfolder,
		"none":     ActionSkip,
		"lookup":   ActionSubfolder,
		"callback": ActionSkip,
		"complex":  ActionSkip,
		"secret":   ActionSkip,
	}, kinds)

	assert.Equal(t, panel.Number, acts["count"].Widget)
	assert.Equal(t, panel.Text, acts["label"].Widget)
	assert.Equal(t, panel.Toggle, acts["on"].Widget)
	assert.Equal(t, "hidden", acts["uid"].Note)
	assert.Equal(t, "cannot guess type", acts["nil"].Note)
	assert.Equal(t, "empty", acts["none"].Note)
	assert.Equal(t, "no widget for kind complex128", acts["complex"].Note)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := classifier(t)
	s := newSample()
	first := classifyAll(c, s, false)
	second := classifyAll(c, s, false)
	for k, a := range first {
		assert.Equal(t, a.Kind, second[k].Kind, k)
		assert.Equal(t, a.Note, second[k].Note, k)
	}
}

func TestRevealShowsHidden(t *testing.T) {
	acts := classifyAll(classifier(t), newSample(), true)
	assert.Equal(t, ActionLeaf, acts["uid"].Kind)
	assert.Equal(t, ActionLeaf, acts["secret"].Kind)
	_, ok := acts["ignored"]
	assert.False(t, ok, `inspect:"-" is never listed`)
}

func TestHiddenSetIsCaseInsensitive(t *testing.T) {
	c := classifier(t)
	c.SetHidden([]string{"ElementID", "count"})
	assert.True(t, c.IsHidden("elementId"))
	assert.True(t, c.IsHidden("COUNT"))
	assert.False(t, c.IsHidden("uid"))
}

func TestPopulateStruct(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	s := newSample()
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(s), false)

	assert.Equal(t, []string{"count", "ratio", "label", "on", "inner", "ptr", "items", "lookup"}, labels(p.Root().Children()))

	require.NoError(t, p.Root().Control("count").SetValue(9))
	assert.Equal(t, 9, s.Count)

	lookup := LazyOf(p.Root().Folder("lookup"))
	require.NotNil(t, lookup)
	lookup.Open(false)
	assert.Equal(t, []string{"a", "b"}, labels(lookup.Handles()))
	require.NoError(t, lookup.Folder().Control("b").SetValue(5.5))
	assert.Equal(t, 5.5, s.Lookup["b"])
}

func TestSubfolderFollowsPointerReassignment(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	s := newSample()
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(s), false)

	ptr := LazyOf(p.Root().Folder("ptr"))
	ptr.Open(false)
	assert.Equal(t, 4.0, ptr.Folder().Control("depth").Value())
	ptr.Close()

	s.Ptr = &inner{Depth: 8}
	ptr.Open(false)
	assert.Equal(t, 8.0, ptr.Folder().Control("depth").Value())
}

type failing struct {
	Position string
	Scale    float32
	Opacity  string
}

func TestOverrideFailureFallsBack(t *testing.T) {
	logger, buf := bufferLogger()
	c := NewClassifier(nil, logger)
	acts := classifyAll(c, &failing{Position: "here", Scale: 2, Opacity: "half"}, false)

	assert.Equal(t, ActionLeaf, acts["position"].Kind)
	assert.Equal(t, panel.Text, acts["position"].Widget)
	assert.Equal(t, panel.Number, acts["scale"].Widget)
	assert.Equal(t, panel.Text, acts["opacity"].Widget)
	assert.Contains(t, buf.String(), "override failed")
}

func TestOverridePanicIsIsolated(t *testing.T) {
	c := classifier(t)
	c.RegisterOverride("Count", func(*Classifier, FieldContext, reflect.Value) (Action, error) {
		panic("boom")
	})
	c.RegisterOverride("label", func(*Classifier, FieldContext, reflect.Value) (Action, error) {
		return Action{}, errors.New("nope")
	})
	p := panel.New("test")
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(newSample()), false)

	assert.Equal(t, panel.Number, p.Root().Control("count").Kind())
	assert.Equal(t, panel.Text, p.Root().Control("label").Kind())
	assert.NotNil(t, p.Root().Control("on"), "siblings still shown")
}

type material struct {
	Opacity       float32
	BlendEquation int
	Side          int
	Fog           bool
	Type          string
	VertexColors  int
}

func TestEnumOverrideRoundTrip(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	m := &material{Opacity: 1, BlendEquation: enums.AddEquation, Side: 999}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(m), false)

	eq := p.Root().Control("blendEquation")
	require.NotNil(t, eq)
	assert.Equal(t, panel.Choice, eq.Kind())
	assert.Equal(t, "Add", eq.Value())

	require.NoError(t, eq.SetValue("Min"))
	assert.Equal(t, enums.MinEquation, m.BlendEquation)
	assert.Equal(t, "Min", eq.Value())

	assert.ErrorIs(t, eq.SetValue("Bogus"), panel.ErrUnknownChoice)
	assert.Equal(t, enums.MinEquation, m.BlendEquation)

	assert.Equal(t, "", p.Root().Control("side").Value(), "unknown raw value has no label")
	assert.Nil(t, p.Root().Control("fog"))
	assert.Nil(t, p.Root().Control("type"))
}

func TestOpacityIsClamped(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	m := &material{Opacity: 1}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(m), false)

	op := p.Root().Control("opacity")
	require.NoError(t, op.SetValue(3))
	assert.Equal(t, float32(1), m.Opacity)
	lo, hi, ok := op.Range()
	assert.True(t, ok)
	assert.Equal(t, []float64{0, 1}, []float64{lo, hi})
}

func TestVertexColorsIsBoolean(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	m := &material{VertexColors: 2}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(m), false)

	vc := p.Root().Control("vertexColors")
	assert.Equal(t, panel.Toggle, vc.Kind())
	assert.Equal(t, true, vc.Value())
	require.NoError(t, vc.SetValue(false))
	assert.Equal(t, 0, m.VertexColors)
	require.NoError(t, vc.Nudge(1))
	assert.Equal(t, 1, m.VertexColors)
}

type texture struct {
	WrapS       int
	MinFilter   int
	NeedsUpdate bool
	Version     int
}

func TestTextureEnumFlagsUpload(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	tex := &texture{WrapS: enums.RepeatWrapping, MinFilter: enums.LinearFilter}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(tex), false)

	require.NoError(t, p.Root().Control("wrapS").SetValue("ClampToEdge"))
	assert.Equal(t, enums.ClampToEdgeWrapping, tex.WrapS)
	assert.True(t, tex.NeedsUpdate)
	assert.Equal(t, 1, tex.Version)

	require.NoError(t, p.Root().Control("minFilter").SetValue("Nearest"))
	assert.Equal(t, 2, tex.Version)
}

type lens struct {
	Fov     float32
	Zoom    float32
	Far     float32
	Focus   float32
	Stereo  bool
	updates int
}

func (l *lens) UpdateProjectionMatrix() { l.updates++ }
func (l *lens) IsStereo() bool          { return l.Stereo }

func TestProjectionOverrides(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	l := &lens{Fov: 50, Far: 100}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(l), false)

	require.NoError(t, p.Root().Control("fov").SetValue(500))
	assert.Equal(t, float32(180), l.Fov)
	assert.Equal(t, 1, l.updates)

	require.NoError(t, p.Root().Control("far").SetValue(0))
	assert.Equal(t, float32(1), l.Far)
	assert.Equal(t, 2, l.updates)

	require.NoError(t, p.Root().Control("zoom").SetValue(2))
	assert.Equal(t, float32(2), l.Zoom)
	assert.Equal(t, 3, l.updates)

	assert.Nil(t, p.Root().Control("focus"), "mono camera has no focus")

	stereo := panel.New("stereo")
	l.Stereo = true
	c.Populate(stereo.Root(), FieldContext{}, reflect.ValueOf(l), false)
	require.NotNil(t, stereo.Root().Control("focus"))
	require.NoError(t, stereo.Root().Control("focus").SetValue(3))
	assert.Equal(t, float32(3), l.Focus)
	assert.Equal(t, 4, l.updates)
}

type layered struct {
	Matrix [16]float32
	Layers struct{ Mask int32 }
}

func TestMatrixOverride(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	v := &layered{}
	for i := range v.Matrix {
		v.Matrix[i] = float32(i)
	}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(v), false)

	m := LazyOf(p.Root().Folder("matrix"))
	require.NotNil(t, m)
	m.Open(false)
	require.Len(t, m.Handles(), 17)
	assert.Equal(t, "0", m.Handles()[0].Label())
	assert.Equal(t, "toIdentityMatrix", m.Handles()[16].Label())

	require.NoError(t, m.Folder().Control("toIdentityMatrix").Press())
	assert.Equal(t, [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, v.Matrix)

	layers := LazyOf(p.Root().Folder("layers"))
	layers.Open(false)
	mask := layers.Folder().Control("mask")
	require.NoError(t, mask.SetValue(64))
	assert.Equal(t, int32(31), v.Layers.Mask)
	require.NoError(t, mask.SetValue(0))
	assert.Equal(t, int32(1), v.Layers.Mask)
}

func TestVectorOverride(t *testing.T) {
	c := classifier(t)
	nav := &recordingNav{}
	c.SetNavigator(nav)
	p := panel.New("test")
	n := node("9", "Mesh", "cube")
	n.Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	c.Populate(p.Root(), FieldContext{Node: n}, reflect.ValueOf(n), false)

	pos := LazyOf(p.Root().Folder("position"))
	require.NotNil(t, pos)
	pos.Open(false)
	assert.Equal(t, []string{"x", "y", "z", "locate", "moveTo"}, labels(pos.Handles()))
	assert.Equal(t, 0.001, pos.Folder().Control("x").Step())

	require.NoError(t, pos.Folder().Control("y").SetValue(4.25))
	assert.Equal(t, float32(4.25), n.Position.Y)

	require.NoError(t, pos.Folder().Control("locate").Press())
	require.NoError(t, pos.Folder().Control("moveTo").Press())
	assert.Equal(t, []string{"locate 9", "moveTo 9"}, nav.calls)
}

func TestVectorOverrideWithoutNode(t *testing.T) {
	c := classifier(t)
	c.SetNavigator(&recordingNav{})
	p := panel.New("test")
	v := &struct{ Rotation rl.Vector3 }{}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(v), false)

	rot := LazyOf(p.Root().Folder("rotation"))
	rot.Open(false)
	assert.Equal(t, []string{"x", "y", "z"}, labels(rot.Handles()))
	require.NoError(t, rot.Folder().Control("x").SetValue(10))
	assert.InDelta(t, 10-2*math.Pi, v.Rotation.X, 1e-5)

	v.Rotation.Y = -0.2
	require.NoError(t, rot.Folder().Control("y").Nudge(-1))
	assert.InDelta(t, 2*math.Pi-0.21, v.Rotation.Y, 1e-5, "angles wrap instead of clamping")
}

type recordingNav struct {
	calls []string
}

func (r *recordingNav) Locate(n Node) { r.calls = append(r.calls, "locate "+n.UniqueID()) }
func (r *recordingNav) MoveTo(n Node) { r.calls = append(r.calls, "moveTo "+n.UniqueID()) }

func TestFieldKey(t *testing.T) {
	for in, want := range map[string]string{
		"Position":      "position",
		"BlendEquation": "blendEquation",
		"WrapS":         "wrapS",
		"VertexColors":  "vertexColors",
	} {
		assert.Equal(t, want, fieldKey(in), in)
	}
	assert.True(t, sameKey(fieldKey("ElementID"), "elementId"))
}

func TestGenericIntegersStayInRange(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	v := &struct {
		Alpha uint8
		Tint  rl.Color
	}{}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(v), false)

	alpha := p.Root().Control("alpha")
	require.NotNil(t, alpha)
	require.NoError(t, alpha.SetValue(300))
	assert.Equal(t, uint8(255), v.Alpha)
	require.NoError(t, alpha.SetValue(-1))
	assert.Equal(t, uint8(0), v.Alpha)

	tint := LazyOf(p.Root().Folder("tint"))
	require.NotNil(t, tint)
	tint.Open(false)
	r := tint.Folder().Control("r")
	require.NotNil(t, r)
	require.NoError(t, r.Nudge(-1))
	assert.Equal(t, uint8(0), v.Tint.R)
}

func TestEnumUndoRestoresUnknownValue(t *testing.T) {
	c := classifier(t)
	p := panel.New("test")
	tex := &texture{WrapS: 42}
	c.Populate(p.Root(), FieldContext{}, reflect.ValueOf(tex), false)

	wrap := p.Root().Control("wrapS")
	assert.Equal(t, "", wrap.Value())
	require.NoError(t, wrap.SetValue("ClampToEdge"))
	assert.Equal(t, enums.ClampToEdgeWrapping, tex.WrapS)

	_, err := p.History().Undo()
	require.NoError(t, err)
	assert.Equal(t, 42, tex.WrapS)
}
