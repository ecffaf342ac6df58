// Package static gives Go types class-level fields.
//
// A static field is a value slot owned by a type and identified by the owner
// and a name. Fields are declared once, usually as package-level variables,
// and can be found again at runtime with [Lookup]. A field may be marked
// [Final], in which case the reflective write path refuses to change it.
//
//	type Config interface {
//		Name() string
//	}
//
//	var Instance = static.DeclareFinal[Config]("INSTANCE")
package static

import (
	"reflect"
	"unsafe"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrNoSuchField     = errors.Base("no such field")
	ErrFinal           = errors.Base("field is final")
	ErrNotAssignable   = errors.Base("value not assignable to field")
	ErrAlreadyAssigned = errors.Base("final field already assigned")
)

// Field describes a declared static field.
type Field struct {
	owner reflect.Type
	name  string
	typ   reflect.Type

	modifiers Modifier

	// The value lives at base+offset. base is kept as an unsafe.Pointer so
	// the GC treats it as a reference to the owning Var.
	base   unsafe.Pointer
	offset uintptr

	// Set once the slot has been written through Init or Set.
	assigned bool
}

// Owner returns the type the field is declared on.
func (f *Field) Owner() reflect.Type { return f.owner }

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Type returns the declared type of the field.
func (f *Field) Type() reflect.Type { return f.typ }

// Modifiers returns the modifier bits of the field.
func (f *Field) Modifiers() Modifier { return f.modifiers }

func (f *Field) String() string {
	return f.modifiers.prefix() + typeName(f.owner) + "." + f.name + " " + f.typ.String()
}

func (f *Field) slot() reflect.Value {
	return reflect.NewAt(f.typ, unsafe.Add(f.base, f.offset)).Elem()
}

// Get returns the current value of the field.
func (f *Field) Get() any {
	return f.slot().Interface()
}

// Set stores value in the field. Final fields are never written; use
// [Var.Init] to give a final field its value. A nil value stores the zero
// value of the field type.
func (f *Field) Set(value any) error {
	if f.modifiers&Final != 0 {
		return errors.Errorf("%w: %s", ErrFinal, f)
	}

	var v reflect.Value
	if value == nil {
		v = reflect.Zero(f.typ)
	} else {
		v = reflect.ValueOf(value)
		if !v.Type().AssignableTo(f.typ) {
			return errors.Errorf("%w: %s: %v", ErrNotAssignable, f, diffTypes(f.typ, v.Type()))
		}
	}

	f.slot().Set(v)
	f.assigned = true
	return nil
}

func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
