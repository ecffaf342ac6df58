//go:build !implinject_norawwrite

package implinject

import (
	"fmt"
	"reflect"
	"unsafe"

	"gitlab.com/tozd/go/errors"

	"github.com/pboyd/implinject/static"
)

// rawWriter copies values directly into field storage. It never consults
// the modifiers and skips the assignability check of the reflective path.
type rawWriter struct {
	baseOffset   uintptr
	offsetOffset uintptr
}

func probeRawWrite() (*rawWriter, error) {
	ft := reflect.TypeFor[static.Field]()

	base, ok := ft.FieldByName("base")
	if !ok || base.Type.Kind() != reflect.UnsafePointer {
		return nil, errors.New("static.Field has no base pointer")
	}
	offset, ok := ft.FieldByName("offset")
	if !ok || offset.Type.Kind() != reflect.Uintptr {
		return nil, errors.New("static.Field has no storage offset")
	}

	// Make sure the runtime's memory move behaves before trusting it with a
	// real field.
	src, dst := any("probe"), any(nil)
	typedmemmove(abiType(reflect.TypeFor[any]()), unsafe.Pointer(&dst), unsafe.Pointer(&src))
	if dst != src {
		return nil, errors.New("typedmemmove did not copy the probe value")
	}

	return &rawWriter{
		baseOffset:   base.Offset,
		offsetOffset: offset.Offset,
	}, nil
}

func (w *rawWriter) inject(f *static.Field, instance any) error {
	fp := unsafe.Pointer(f)
	base := *(*unsafe.Pointer)(unsafe.Add(fp, w.baseOffset))
	if base == nil {
		return errors.Errorf("%w: %s has no storage", ErrAccessDenied, f)
	}
	offset := *(*uintptr)(unsafe.Add(fp, w.offsetOffset))

	val, err := materialize(f.Type(), instance)
	if err != nil {
		return errors.Errorf("%w: %s: %v", static.ErrNotAssignable, f, err)
	}

	typedmemmove(abiType(f.Type()), unsafe.Add(base, offset), val.Addr().UnsafePointer())
	return nil
}

// materialize returns an addressable value of type typ holding instance.
// Anything the reflect package can convert is accepted.
func materialize(typ reflect.Type, instance any) (val reflect.Value, err error) {
	src := reflect.ValueOf(instance)
	val = reflect.New(typ).Elem()

	switch {
	case src.Type().AssignableTo(typ):
		val.Set(src)
	case src.Type().ConvertibleTo(typ):
		// Convert panics on some conversions ConvertibleTo allows, such as
		// a short slice to an array.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("converting %v to %v: %v", src.Type(), typ, r)
			}
		}()
		val.Set(src.Convert(typ))
	default:
		return reflect.Value{}, fmt.Errorf("%v can't be represented as %v", src.Type(), typ)
	}

	return val, nil
}
