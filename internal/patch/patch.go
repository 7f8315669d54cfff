// Package patch models partial updates decoded from JSON request bodies.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is an optional JSON value that remembers whether its key was
// present and whether it was an explicit null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a Field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UnmarshalJSON is only invoked for keys present in the input.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes null for unset or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Present reports whether the key carried a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// Changes accumulates column assignments for a single-row update.
type Changes struct {
	cols []string
	vals []any
}

// Add records col = v unconditionally.
func (c *Changes) Add(col string, v any) {
	c.cols = append(c.cols, col)
	c.vals = append(c.vals, v)
}

// Columns returns the assigned column names in insertion order.
func (c *Changes) Columns() []string {
	return c.cols
}

// Values returns the assigned values, aligned with Columns.
func (c *Changes) Values() []any {
	return c.vals
}

// Len returns the number of assignments.
func (c *Changes) Len() int {
	return len(c.cols)
}

// Value records col from f when its key was present. An explicit null
// assigns SQL NULL.
func Value[T any](c *Changes, col string, f Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		c.Add(col, nil)
		return
	}
	c.Add(col, f.Value)
}

// Required records col from f only when it carries a value. Used for
// NOT NULL columns, where an explicit null is ignored.
func Required[T any](c *Changes, col string, f Field[T]) {
	if f.Present() {
		c.Add(col, f.Value)
	}
}
