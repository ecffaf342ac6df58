package static

import "gitlab.com/tozd/go/errors"

// Var is the storage for a declared field.
type Var[T any] struct {
	field *Field
	value T
}

// Get returns the current value.
func (v *Var[T]) Get() T {
	return v.value
}

// Field returns the field metadata for v.
func (v *Var[T]) Field() *Field {
	return v.field
}

// Init gives the field its value. A final field accepts exactly one Init, and
// only if nothing has been stored in it before. Non-final fields may be
// initialized any number of times.
func (v *Var[T]) Init(value T) error {
	f := v.field
	if f.modifiers&Final != 0 && f.assigned {
		return errors.Errorf("%w: %s", ErrAlreadyAssigned, f)
	}

	v.value = value
	f.assigned = true
	return nil
}
