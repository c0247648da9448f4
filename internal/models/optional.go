package models

import (
	"bytes"
	"encoding/json"
)

// Optional marks whether a JSON field was supplied at all. A field absent
// from the payload stays unset; an explicit null is set and null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a supplied, non-null value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a supplied explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON renders unset and null values as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// ValidationValue exposes the wrapped value to the validator, nil when
// there is nothing to validate.
func (o Optional[T]) ValidationValue() any {
	if !o.Set || o.Null {
		return nil
	}
	return o.Value
}
