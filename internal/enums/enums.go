// Package enums holds the label tables for engine fields that take one of a
// fixed set of raw values (blend modes, texture sampling, depth tests...).
package enums

import (
	"fmt"
	"sort"
)

// Table maps human readable labels to engine raw values.
// Labels and Values are parallel and must have the same length.
type Table struct {
	Name   string
	Labels []string
	Values []int
}

// NewTable creates a table. It panics if labels and values differ in length,
// since tables are declared statically.
func NewTable(name string, labels []string, values []int) *Table {
	if len(labels) != len(values) {
		panic(fmt.Sprintf("enums: table %q has %d labels for %d values", name, len(labels), len(values)))
	}
	return &Table{Name: name, Labels: labels, Values: values}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.Labels)
}

// Index returns the position of the raw value, or -1.
func (t *Table) Index(value int) int {
	for i, v := range t.Values {
		if v == value {
			return i
		}
	}
	return -1
}

// IndexOf returns the position of the label, or -1.
func (t *Table) IndexOf(label string) int {
	for i, l := range t.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Label translates a raw value to its label.
func (t *Table) Label(value int) (string, bool) {
	i := t.Index(value)
	if i < 0 {
		return "", false
	}
	return t.Labels[i], true
}

// Value translates a label to its raw value.
func (t *Table) Value(label string) (int, bool) {
	i := t.IndexOf(label)
	if i < 0 {
		return 0, false
	}
	return t.Values[i], true
}

// Bind returns a binding selecting the given raw value.
func (t *Table) Bind(current int) Binding {
	return Binding{Table: t, Selected: t.Index(current)}
}

// Binding is a table plus the currently selected entry.
// Selected is -1 when the current raw value is not in the table.
type Binding struct {
	Table    *Table
	Selected int
}

// Label returns the selected label, or "" when nothing is selected.
func (b Binding) Label() string {
	if b.Table == nil || b.Selected < 0 || b.Selected >= b.Table.Len() {
		return ""
	}
	return b.Table.Labels[b.Selected]
}

// Value returns the selected raw value.
func (b Binding) Value() (int, bool) {
	if b.Table == nil || b.Selected < 0 || b.Selected >= b.Table.Len() {
		return 0, false
	}
	return b.Table.Values[b.Selected], true
}

// Select moves the selection to label. It returns the matching raw value.
func (b *Binding) Select(label string) (int, bool) {
	i := b.Table.IndexOf(label)
	if i < 0 {
		return 0, false
	}
	b.Selected = i
	return b.Table.Values[i], true
}

var registry = map[string]*Table{}

// Register adds a table under a field key. Keys are lowerCamel field names.
func Register(field string, t *Table) {
	if _, exists := registry[field]; exists {
		panic(fmt.Sprintf("enums: field %q already registered", field))
	}
	registry[field] = t
}

// Lookup returns the table registered for a field key.
func Lookup(field string) (*Table, bool) {
	t, ok := registry[field]
	return t, ok
}

// Fields returns the registered field keys, sorted.
func Fields() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
