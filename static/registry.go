package static

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"gitlab.com/tozd/go/errors"
)

type fieldKey struct {
	owner reflect.Type
	name  string
}

var (
	mu       sync.RWMutex
	declared = map[fieldKey]*Field{}
	byOwner  = map[reflect.Type][]*Field{}
)

// Declare declares a static field named name on owner and returns its slot.
// The field starts out with the zero value of T.
//
// Declare panics if owner is nil, name is empty or the field was already
// declared. It's meant to be called while initializing package variables.
func Declare[T any](owner reflect.Type, name string, mods Modifier) *Var[T] {
	if owner == nil {
		panic("static: nil owner type")
	}
	if name == "" {
		panic("static: empty field name")
	}

	v := &Var[T]{}
	v.field = &Field{
		owner:     owner,
		name:      name,
		typ:       reflect.TypeFor[T](),
		modifiers: mods,
		base:      unsafe.Pointer(v),
		offset:    unsafe.Offsetof(v.value),
	}

	mu.Lock()
	defer mu.Unlock()

	key := fieldKey{owner: owner, name: name}
	if _, ok := declared[key]; ok {
		panic(fmt.Sprintf("static: field %s.%s already declared", typeName(owner), name))
	}
	declared[key] = v.field
	byOwner[owner] = append(byOwner[owner], v.field)

	return v
}

// DeclareFinal declares a final field of type T on T itself. This is the
// usual way for an interface to carry its own default implementation.
func DeclareFinal[T any](name string) *Var[T] {
	return Declare[T](reflect.TypeFor[T](), name, Final)
}

// Lookup returns the field named name declared directly on owner. Hidden
// fields are included.
func Lookup(owner reflect.Type, name string) (*Field, error) {
	if owner == nil {
		return nil, errors.Errorf("%w: nil owner type", ErrNoSuchField)
	}

	mu.RLock()
	defer mu.RUnlock()

	f, ok := declared[fieldKey{owner: owner, name: name}]
	if !ok {
		return nil, errors.Errorf("%w: %s.%s", ErrNoSuchField, typeName(owner), name)
	}
	return f, nil
}

// Fields returns the fields declared on owner in declaration order, leaving
// out hidden fields.
func Fields(owner reflect.Type) []*Field {
	mu.RLock()
	defer mu.RUnlock()

	var fields []*Field
	for _, f := range byOwner[owner] {
		if f.modifiers&Hidden == 0 {
			fields = append(fields, f)
		}
	}
	return fields
}
