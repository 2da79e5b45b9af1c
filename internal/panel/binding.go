package panel

import (
	"errors"
	"fmt"
	"reflect"

	"cogentcore.org/core/base/reflectx"
)

// ErrReadOnly is returned when writing through a binding that cannot be set.
var ErrReadOnly = errors.New("panel: value is not settable")

// Binding connects a control to the live value it edits.
// Get is called every time a frontend draws the control; there is no caching,
// so a control always shows the live value.
type Binding interface {
	Get() any
	Set(v any) error
}

// RawBinding shows a derived form of an underlying binding, such as the
// label of an enum value. Undo restores the underlying value.
type RawBinding interface {
	Binding
	Raw() Binding
}

type fieldBinding struct {
	v reflect.Value
}

// Field binds to a reflect value. The value must be addressable to be written.
func Field(v reflect.Value) Binding {
	return &fieldBinding{v: v}
}

func (b *fieldBinding) Get() any {
	if !b.v.IsValid() || !b.v.CanInterface() {
		return nil
	}
	return b.v.Interface()
}

func (b *fieldBinding) Set(v any) error {
	if !b.v.CanAddr() || !b.v.CanSet() {
		return ErrReadOnly
	}
	if err := reflectx.SetRobust(b.v.Addr().Interface(), v); err != nil {
		return fmt.Errorf("panel: set %s: %w", b.v.Type(), err)
	}
	return nil
}

type mapBinding struct {
	m   reflect.Value
	key reflect.Value
}

// MapEntry binds to one entry of a map. Writes go through SetMapIndex so
// map values can be edited even though they are not addressable.
func MapEntry(m, key reflect.Value) Binding {
	return &mapBinding{m: m, key: key}
}

func (b *mapBinding) Get() any {
	v := b.m.MapIndex(b.key)
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

func (b *mapBinding) Set(v any) error {
	nv := reflect.New(b.m.Type().Elem())
	if err := reflectx.SetRobust(nv.Interface(), v); err != nil {
		return fmt.Errorf("panel: set map entry %v: %w", b.key, err)
	}
	b.m.SetMapIndex(b.key, nv.Elem())
	return nil
}

type funcBinding struct {
	get func() any
	set func(any) error
}

// Func binds through a getter and a setter. A nil setter makes the binding read only.
func Func(get func() any, set func(any) error) Binding {
	return &funcBinding{get: get, set: set}
}

func (b *funcBinding) Get() any {
	return b.get()
}

func (b *funcBinding) Set(v any) error {
	if b.set == nil {
		return ErrReadOnly
	}
	return b.set(v)
}
