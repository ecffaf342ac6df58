//go:build !implinject_nomodifiers

package implinject

import (
	"reflect"
	"unsafe"

	"gitlab.com/tozd/go/errors"

	"github.com/pboyd/implinject/static"
)

// modifierPatch writes final fields by clearing the final bit for the
// duration of an ordinary Set.
type modifierPatch struct {
	offset uintptr
}

func probeModifierPatch() (*modifierPatch, error) {
	sf, ok := reflect.TypeFor[static.Field]().FieldByName("modifiers")
	if !ok {
		return nil, errors.New("static.Field has no modifiers field")
	}
	if sf.Type != reflect.TypeFor[static.Modifier]() {
		return nil, errors.Errorf("static.Field.modifiers is %v, not static.Modifier", sf.Type)
	}

	return &modifierPatch{offset: sf.Offset}, nil
}

func (p *modifierPatch) modifiers(f *static.Field) *static.Modifier {
	return (*static.Modifier)(unsafe.Add(unsafe.Pointer(f), p.offset))
}

func (p *modifierPatch) inject(f *static.Field, instance any) error {
	mods := p.modifiers(f)

	saved := *mods
	*mods = saved &^ static.Final
	defer func() { *mods = saved }()

	err := f.Set(instance)
	if errors.Is(err, static.ErrFinal) {
		return errors.Errorf("%w: %s is still final after clearing modifiers", ErrAccessDenied, f)
	}
	return err
}
