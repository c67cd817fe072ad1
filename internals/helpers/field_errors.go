package helper

import (
	"errors"
	"sort"
	"strings"
)

const MsgRequired = "This field is required and cannot be blank."

// FieldErrors collects validation messages per payload field.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge appends every message of o.
func (e FieldErrors) Merge(o FieldErrors) {
	for f, msgs := range o {
		e[f] = append(e[f], msgs...)
	}
}

// MergeNew only takes fields that have no message yet.
func (e FieldErrors) MergeNew(o FieldErrors) {
	for f, msgs := range o {
		if _, exists := e[f]; exists {
			continue
		}
		e[f] = append(e[f], msgs...)
	}
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ValidationError carries FieldErrors through service layers.
type ValidationError struct {
	Errors FieldErrors
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, f := range v.Errors.Fields() {
		parts = append(parts, f+": "+strings.Join(v.Errors[f], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewValidationError(errs FieldErrors) error {
	return &ValidationError{Errors: errs}
}

// FieldError is a one-field shortcut for NewValidationError.
func FieldError(field, msg string) error {
	return &ValidationError{Errors: FieldErrors{field: {msg}}}
}

func AsValidationError(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Errors, true
	}
	return nil, false
}
