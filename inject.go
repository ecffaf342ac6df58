package implinject

import (
	"reflect"

	"gitlab.com/tozd/go/errors"

	"github.com/pboyd/implinject/static"
)

var (
	ErrInvalidArgument        = errors.Base("invalid argument")
	ErrNoSuchField            = static.ErrNoSuchField
	ErrAccessDenied           = errors.Base("access denied")
	ErrUnsupportedEnvironment = errors.Base("unable to find a suitable way to inject into the field")
)

// Inject stores instance in the static field fieldName declared on target,
// even if the field is final.
//
// An error is returned if any argument is missing, if the field doesn't
// exist, if instance can't be stored in the field, or if neither injection
// mechanism is available in this build.
func Inject(target reflect.Type, fieldName string, instance any) error {
	if target == nil {
		return errors.Errorf("%w: target type is nil", ErrInvalidArgument)
	}
	if fieldName == "" {
		return errors.Errorf("%w: field name is empty", ErrInvalidArgument)
	}
	if isNil(instance) {
		return errors.Errorf("%w: instance is nil", ErrInvalidArgument)
	}

	inj := capability().injector
	if inj == nil {
		return errors.WithStack(ErrUnsupportedEnvironment)
	}

	f, err := static.Lookup(target, fieldName)
	if err != nil {
		return err
	}

	return inj.inject(f, instance)
}

// InjectFor is Inject for a field declared on T.
//
//	implinject.InjectFor[Config]("INSTANCE", &configImpl{})
func InjectFor[T any](fieldName string, instance T) error {
	return Inject(reflect.TypeFor[T](), fieldName, instance)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
