package inspect

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"cogentcore.org/core/base/reflectx"
	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/enums"
	"inspect3d/internal/gizmo"
	"inspect3d/internal/panel"
)

var errNotNumber = errors.New("value is not a number")

// defaultOverrides is keyed by lowerCamel field key.
var defaultOverrides = map[string]Override{
	"position": vectorOverride(gizmo.Move, panel.Step(0.001)),
	"rotation": vectorOverride(gizmo.Rotate, panel.Wrap(0, 2*math.Pi), panel.Step(0.01)),
	"scale":    vectorOverride(gizmo.Scale, panel.Step(0.01)),

	"opacity": numberOverride(nil, panel.Range(0, 1), panel.Step(0.01)),
	"mask":    numberOverride(nil, panel.Range(1, 31), panel.Step(1)),

	"fov":    numberOverride(updateProjection, panel.Range(1, 180), panel.Step(1)),
	"near":   numberOverride(updateProjection, panel.Range(0.001, 2), panel.Step(0.001)),
	"far":    numberOverride(updateProjection, panel.Range(1, 20000), panel.Step(1)),
	"aspect": numberOverride(updateProjection, panel.Range(0.2, 5), panel.Step(0.01)),
	"zoom":   numberOverride(updateProjection, panel.Range(0.01, 100), panel.Step(0.01)),
	"focus":  focusOverride,

	"matrix":       matrixOverride,
	"vertexColors": vertexColorsOverride,

	"type":       unknownUse,
	"filmGauge":  unknownUse,
	"filmOffset": unknownUse,
	"fog":        unknownUse,
}

func init() {
	for _, key := range enums.Fields() {
		t, _ := enums.Lookup(key)
		defaultOverrides[key] = enumOverride(t, enums.IsTextureField(key))
	}
}

func unknownUse(*Classifier, FieldContext, reflect.Value) (Action, error) {
	return skip("unknown use"), nil
}

func isNumber(v reflect.Value) bool {
	return reflectx.KindIsInt(v.Kind()) || reflectx.KindIsFloat(v.Kind())
}

// numberOverride bounds a numeric field. after runs with the owner context
// once a new value is written.
func numberOverride(after func(FieldContext), opts ...panel.Option) Override {
	return func(c *Classifier, ctx FieldContext, value reflect.Value) (Action, error) {
		v, ok := deref(value)
		if !ok || !isNumber(v) {
			return Action{}, errNotNumber
		}
		act := leaf(panel.Number, panel.Field(v), opts...)
		if after != nil {
			act.OnChange = func(any) { after(ctx) }
		}
		return act, nil
	}
}

func enumOverride(t *enums.Table, texture bool) Override {
	return func(c *Classifier, ctx FieldContext, value reflect.Value) (Action, error) {
		v, ok := deref(value)
		if !ok || !reflectx.KindIsInt(v.Kind()) {
			return Action{}, fmt.Errorf("%s: raw value is not an integer", t.Name)
		}
		act := Action{Kind: ActionEnum, Table: t, Binding: panel.Field(v)}
		if texture {
			act.OnChange = func(any) { markNeedsUpdate(ctx.Owner) }
		}
		return act, nil
	}
}

// markNeedsUpdate flags a texture for re-upload: NeedsUpdate is set and
// Version bumped when the owner has those fields.
func markNeedsUpdate(owner reflect.Value) {
	o, ok := deref(owner)
	if !ok || o.Kind() != reflect.Struct {
		return
	}
	if f := o.FieldByName("NeedsUpdate"); f.IsValid() && f.CanSet() && f.Kind() == reflect.Bool {
		f.SetBool(true)
	}
	if f := o.FieldByName("Version"); f.IsValid() && f.CanSet() && f.CanInt() {
		f.SetInt(f.Int() + 1)
	}
}

type projector interface {
	UpdateProjectionMatrix()
}

type stereo interface {
	IsStereo() bool
}

// ownerAs returns the owner struct, by pointer when addressable, as T.
func ownerAs[T any](ctx FieldContext) (T, bool) {
	var zero T
	o := ctx.Owner
	if !o.IsValid() {
		return zero, false
	}
	if o.Kind() != reflect.Pointer && o.CanAddr() {
		o = o.Addr()
	}
	if !o.CanInterface() {
		return zero, false
	}
	t, ok := o.Interface().(T)
	return t, ok
}

func updateProjection(ctx FieldContext) {
	if p, ok := ownerAs[projector](ctx); ok {
		p.UpdateProjectionMatrix()
	}
}

// focusOverride only shows focus on stereo cameras.
func focusOverride(c *Classifier, ctx FieldContext, value reflect.Value) (Action, error) {
	s, ok := ownerAs[stereo](ctx)
	if !ok || !s.IsStereo() {
		return skip("focus only applies to stereo cameras"), nil
	}
	return numberOverride(updateProjection)(c, ctx, value)
}

// vertexColorsOverride shows a toggle. Numeric fields are read as v != 0
// and written back as 0 or 1.
func vertexColorsOverride(c *Classifier, ctx FieldContext, value reflect.Value) (Action, error) {
	v, ok := deref(value)
	if !ok {
		return Action{}, errors.New("vertexColors is nil")
	}
	if v.Kind() == reflect.Bool {
		return leaf(panel.Toggle, panel.Field(v)), nil
	}
	if !isNumber(v) {
		return Action{}, errNotNumber
	}
	raw := panel.Field(v)
	return leaf(panel.Toggle, panel.Func(
		func() any {
			f, _ := reflectx.ToFloat(raw.Get())
			return f != 0
		},
		func(x any) error {
			b, err := reflectx.ToBool(x)
			if err != nil {
				return err
			}
			n := 0
			if b {
				n = 1
			}
			return raw.Set(n)
		},
	)), nil
}

// matrixOverride shows a 4x4 matrix as 16 numbers and a button that resets
// it to identity through the controls, so change handlers fire.
func matrixOverride(c *Classifier, ctx FieldContext, value reflect.Value) (Action, error) {
	v, ok := deref(value)
	if !ok || (v.Kind() != reflect.Array && v.Kind() != reflect.Slice) || v.Len() != 16 || !isNumber(v.Index(0)) {
		return Action{}, errors.New("matrix is not 16 numbers")
	}
	return Action{
		Kind:   ActionSubfolder,
		Target: v.Interface(),
		Populate: func(f *panel.Folder, reveal bool) {
			m, ok := deref(value)
			if !ok {
				return
			}
			cells := make([]*panel.Control, 16)
			for i := range cells {
				cells[i] = f.AddNumber(strconv.Itoa(i), panel.Field(m.Index(i)), panel.Step(0.01))
			}
			f.AddButton("toIdentityMatrix", func() {
				for i, cell := range cells {
					id := 0.0
					if i%5 == 0 {
						id = 1
					}
					if err := cell.SetValue(id); err != nil {
						c.logger.Debug("matrix reset failed", "cell", i, "err", err)
					}
				}
			})
		},
	}, nil
}

// vectorOverride shows x, y and z of a vector. Inside a scene node it adds
// locate and moveTo buttons, and opening it attaches the transform gizmo.
func vectorOverride(mode gizmo.Mode, opts ...panel.Option) Override {
	return func(c *Classifier, ctx FieldContext, value reflect.Value) (Action, error) {
		v, ok := deref(value)
		if !ok || !hasXYZ(v) {
			return Action{}, errors.New("no numeric X, Y, Z")
		}
		node := ctx.Node
		act := Action{
			Kind:   ActionSubfolder,
			Target: v.Interface(),
			Populate: func(f *panel.Folder, reveal bool) {
				v, ok := deref(value)
				if !ok {
					return
				}
				f.AddNumber("x", panel.Field(v.FieldByName("X")), opts...)
				f.AddNumber("y", panel.Field(v.FieldByName("Y")), opts...)
				f.AddNumber("z", panel.Field(v.FieldByName("Z")), opts...)
				if node != nil && c.nav != nil {
					f.AddButton("locate", func() { c.nav.Locate(node) })
					f.AddButton("moveTo", func() { c.nav.MoveTo(node) })
				}
			},
		}
		if vec, ok := vectorPtr(v); ok && node != nil && c.gizmo != nil {
			g := c.gizmo
			act.OnOpen = func() {
				g.Attach(mode, vec, func() rl.Vector3 { return worldPosition(node) }, parentWorld(node))
			}
			act.OnClose = func() {
				if g.Value() == vec {
					g.Detach()
				}
			}
		}
		return act, nil
	}
}

func hasXYZ(v reflect.Value) bool {
	if v.Kind() != reflect.Struct {
		return false
	}
	for _, name := range []string{"X", "Y", "Z"} {
		f := v.FieldByName(name)
		if !f.IsValid() || !isNumber(f) {
			return false
		}
	}
	return true
}

func vectorPtr(v reflect.Value) (*rl.Vector3, bool) {
	if !v.CanAddr() || !v.Addr().CanInterface() {
		return nil, false
	}
	p, ok := v.Addr().Interface().(*rl.Vector3)
	return p, ok
}
