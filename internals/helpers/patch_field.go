package helper

import (
	"encoding/json"
	"reflect"
)

// PatchField is one optional field of a partial update.
// Absent and null both leave the stored value unchanged.
type PatchField[T any] struct {
	Present bool
	Value   *T
}

// Patch builds a supplied, non-null field.
func Patch[T any](v T) PatchField[T] {
	return PatchField[T]{Present: true, Value: &v}
}

// Set reports whether the field carries a value to write.
func (f PatchField[T]) Set() bool { return f.Present && f.Value != nil }

func (f PatchField[T]) Get() (T, bool) {
	if !f.Set() {
		var zero T
		return zero, false
	}
	return *f.Value, true
}

// OrZero returns the value or T's zero value.
func (f PatchField[T]) OrZero() T {
	v, _ := f.Get()
	return v
}

func (f *PatchField[T]) DecodeLenient(raw json.RawMessage) (bool, error) {
	f.Present = true
	f.Value = nil
	v := new(T)
	set, err := DecodeLenient(raw, v)
	if err != nil || !set {
		return false, err
	}
	f.Value = v
	return true, nil
}

func (f *PatchField[T]) UnmarshalJSON(b []byte) error {
	_, err := f.DecodeLenient(b)
	return err
}

func (f PatchField[T]) MarshalJSON() ([]byte, error) {
	if !f.Set() {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

func (f PatchField[T]) InvalidMessage() string {
	return InvalidMessageFor(reflect.TypeOf((*T)(nil)).Elem())
}
