package inspect

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"cogentcore.org/core/base/reflectx"
	"github.com/iancoleman/strcase"

	"inspect3d/internal/enums"
	"inspect3d/internal/gizmo"
	"inspect3d/internal/panel"
)

// ActionKind is the outcome of classifying one field.
type ActionKind int

const (
	ActionSkip ActionKind = iota
	ActionLeaf
	ActionEnum
	ActionSubfolder
)

func (k ActionKind) String() string {
	switch k {
	case ActionSkip:
		return "skip"
	case ActionLeaf:
		return "leaf"
	case ActionEnum:
		return "enum"
	case ActionSubfolder:
		return "subfolder"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action describes the widgets one field gets.
type Action struct {
	Kind ActionKind
	// Note says why a field was skipped.
	Note string

	// Leaf and Enum
	Widget   panel.Kind
	Binding  panel.Binding
	Options  []panel.Option
	Table    *enums.Table
	OnChange func(any)
	Press    func()

	// Subfolder
	Target   any
	Populate PopulateFunc
	OnOpen   func()
	OnClose  func()
}

func skip(note string) Action {
	return Action{Kind: ActionSkip, Note: note}
}

func leaf(w panel.Kind, b panel.Binding, opts ...panel.Option) Action {
	return Action{Kind: ActionLeaf, Widget: w, Binding: b, Options: opts}
}

// FieldContext is where a field lives.
type FieldContext struct {
	// Node is the scene node the field belongs to, nil outside scenes.
	Node Node
	// Owner is the struct, map, slice or array holding the field.
	Owner reflect.Value
	// MapKey is the entry key when Owner is a map.
	MapKey reflect.Value
	// Hidden is set by an `inspect:"hidden"` struct tag.
	Hidden bool
}

// Override replaces generic classification for one field key. An error
// makes the classifier fall back to the generic rules.
type Override func(c *Classifier, ctx FieldContext, value reflect.Value) (Action, error)

// Navigator is what the transform overrides call from their buttons.
type Navigator interface {
	Locate(n Node)
	MoveTo(n Node)
}

// Classifier decides which widget each field of a live value gets.
// Classification is a pure function of the field key, the value's kind and
// the reveal flag.
type Classifier struct {
	hidden    map[string]bool
	overrides map[string]Override
	logger    *slog.Logger
	nav       Navigator
	gizmo     *gizmo.Transform
}

// NewClassifier builds a classifier with the standard override table.
func NewClassifier(hidden []string, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Classifier{
		overrides: make(map[string]Override, len(defaultOverrides)),
		logger:    logger,
	}
	for k, fn := range defaultOverrides {
		c.overrides[strings.ToLower(k)] = fn
	}
	c.SetHidden(hidden)
	return c
}

// fieldKey normalizes a Go field name into the lowerCamel key used for labels,
// the hidden set and overrides.
func fieldKey(name string) string {
	return strcase.ToLowerCamel(name)
}

// sameKey compares keys ignoring case so "ElementID" matches "elementId".
func sameKey(a, b string) bool {
	return strings.EqualFold(a, b)
}

func (c *Classifier) SetHidden(keys []string) {
	c.hidden = make(map[string]bool, len(keys))
	for _, k := range keys {
		c.hidden[strings.ToLower(fieldKey(k))] = true
	}
}

func (c *Classifier) IsHidden(key string) bool {
	return c.hidden[strings.ToLower(key)]
}

// RegisterOverride adds or replaces the override for key.
func (c *Classifier) RegisterOverride(key string, fn Override) {
	c.overrides[strings.ToLower(fieldKey(key))] = fn
}

func (c *Classifier) SetNavigator(nav Navigator)  { c.nav = nav }
func (c *Classifier) SetGizmo(g *gizmo.Transform) { c.gizmo = g }
func (c *Classifier) SetLogger(l *slog.Logger)    { c.logger = l }
func (c *Classifier) Logger() *slog.Logger        { return c.logger }

// Classify picks the action for the field called name holding value.
func (c *Classifier) Classify(ctx FieldContext, name string, value reflect.Value, reveal bool) Action {
	key := fieldKey(name)
	if (ctx.Hidden || c.IsHidden(key)) && !reveal {
		return skip("hidden")
	}
	if ov := c.overrides[strings.ToLower(key)]; ov != nil {
		act, err := c.callOverride(key, ov, ctx, value)
		if err == nil {
			return act
		}
		c.logger.Debug("override failed, using generic widget", "field", key, "err", err)
	}
	return c.generic(ctx, value)
}

func (c *Classifier) callOverride(key string, ov Override, ctx FieldContext, value reflect.Value) (act Action, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("inspect: override %s panicked: %v", key, r)
		}
	}()
	return ov(c, ctx, value)
}

func (c *Classifier) generic(ctx FieldContext, value reflect.Value) Action {
	v, ok := deref(value)
	if !ok {
		return skip("cannot guess type")
	}
	k := v.Kind()
	switch {
	case k == reflect.Bool:
		return leaf(panel.Toggle, panel.Field(v))
	case reflectx.KindIsInt(k), reflectx.KindIsFloat(k):
		return leaf(panel.Number, panel.Field(v))
	case k == reflect.String:
		return leaf(panel.Text, panel.Field(v))
	case k == reflect.Slice, k == reflect.Array, k == reflect.Map:
		if v.Len() == 0 {
			return skip("empty")
		}
		return c.subfolder(ctx, value, v)
	case k == reflect.Struct:
		if len(structFields(v)) == 0 {
			return skip("no exported fields")
		}
		return c.subfolder(ctx, value, v)
	case k == reflect.Func, k == reflect.Chan:
		return skip("")
	}
	return skip(fmt.Sprintf("no widget for kind %s", k))
}

// subfolder keeps the original field value so a reopened folder follows
// pointer reassignments.
func (c *Classifier) subfolder(ctx FieldContext, field, v reflect.Value) Action {
	var target any
	if v.CanInterface() {
		target = v.Interface()
	}
	return Action{
		Kind:   ActionSubfolder,
		Target: target,
		Populate: func(f *panel.Folder, reveal bool) {
			c.Populate(f, FieldContext{Node: ctx.Node}, field, reveal)
		},
	}
}

// Populate adds a widget for every field, element or entry of target.
func (c *Classifier) Populate(f *panel.Folder, ctx FieldContext, target reflect.Value, reveal bool) {
	v, ok := deref(target)
	if !ok {
		return
	}
	switch v.Kind() {
	case reflect.Struct:
		for _, fl := range structFields(v) {
			fctx := FieldContext{Node: ctx.Node, Owner: fl.owner, Hidden: fl.hidden}
			c.addField(f, fctx, fl.name, fieldKey(fl.name), fl.value, reveal)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			label := strconv.Itoa(i)
			c.addField(f, FieldContext{Node: ctx.Node, Owner: v}, label, label, v.Index(i), reveal)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			label := fmt.Sprint(k.Interface())
			fctx := FieldContext{Node: ctx.Node, Owner: v, MapKey: k}
			c.addField(f, fctx, label, label, v.MapIndex(k), reveal)
		}
	default:
		c.addField(f, ctx, "value", "value", v, reveal)
	}
}

// addField classifies and materializes one field. A panic stays scoped to
// the field so its siblings are still shown.
func (c *Classifier) addField(f *panel.Folder, ctx FieldContext, name, label string, value reflect.Value, reveal bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("field skipped", "field", label, "panic", r)
		}
	}()
	act := c.Classify(ctx, name, value, reveal)
	if ctx.MapKey.IsValid() && (act.Kind == ActionLeaf || act.Kind == ActionEnum) && !value.CanSet() {
		act.Binding = panel.MapEntry(ctx.Owner, ctx.MapKey)
	}
	c.Add(f, label, act)
}

// Add materializes act under f.
func (c *Classifier) Add(f *panel.Folder, label string, act Action) {
	switch act.Kind {
	case ActionSkip:
		if act.Note != "" {
			c.logger.Debug("field skipped", "field", label, "note", act.Note)
		}
	case ActionLeaf:
		var ctrl *panel.Control
		switch act.Widget {
		case panel.Number:
			ctrl = f.AddNumber(label, act.Binding, act.Options...)
		case panel.Text:
			ctrl = f.AddText(label, act.Binding)
		case panel.Toggle:
			ctrl = f.AddToggle(label, act.Binding)
		case panel.Button:
			ctrl = f.AddButton(label, act.Press)
		default:
			c.logger.Debug("no widget", "field", label, "kind", act.Widget)
			return
		}
		ctrl.OnChange(act.OnChange)
	case ActionEnum:
		ctrl := f.AddChoice(label, act.Table.Labels, &enumBinding{table: act.Table, raw: act.Binding})
		ctrl.OnChange(act.OnChange)
	case ActionSubfolder:
		lf, err := EnsureFolder(label, f, act.Target, act.Populate)
		if err != nil {
			c.logger.Debug("subfolder skipped", "field", label, "err", err)
			return
		}
		lf.SetLogger(c.logger)
		lf.OnOpen = act.OnOpen
		lf.OnClose = act.OnClose
	}
}

// enumBinding shows the label of the raw value behind raw and writes the
// raw value of a selected label.
type enumBinding struct {
	table *enums.Table
	raw   panel.Binding
}

func (b *enumBinding) current() enums.Binding {
	n, err := reflectx.ToInt(b.raw.Get())
	if err != nil {
		return enums.Binding{Table: b.table, Selected: -1}
	}
	return b.table.Bind(int(n))
}

func (b *enumBinding) Get() any { return b.current().Label() }

func (b *enumBinding) Set(v any) error {
	cur := b.current()
	val, ok := cur.Select(reflectx.ToString(v))
	if !ok {
		return fmt.Errorf("%w %q for %s", panel.ErrUnknownChoice, v, b.table.Name)
	}
	return b.raw.Set(val)
}

func (b *enumBinding) Raw() panel.Binding { return b.raw }

// deref follows pointers and interfaces. It fails on nil.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

type structField struct {
	name   string
	key    string
	value  reflect.Value
	owner  reflect.Value
	hidden bool
}

// structFields lists the exported fields of v, flattening embedded structs.
// Fields tagged `inspect:"-"` are dropped.
func structFields(v reflect.Value) []structField {
	var out []structField
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("inspect")
		if tag == "-" {
			continue
		}
		fv := v.Field(i)
		if sf.Anonymous {
			if ev, ok := deref(fv); ok && ev.Kind() == reflect.Struct {
				out = append(out, structFields(ev)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		out = append(out, structField{
			name:   sf.Name,
			key:    fieldKey(sf.Name),
			value:  fv,
			owner:  v,
			hidden: tag == "hidden",
		})
	}
	return out
}
