package static

import (
	"fmt"
	"reflect"

	"gitlab.com/tozd/go/errors"
)

// typeDifferences explains why a value of type Got can't be stored in a
// field of type Want.
type typeDifferences struct {
	Want, Got reflect.Type

	// Only set when both are func types.
	In  []*argDifference
	Out []*argDifference

	// Only set when Want is an interface.
	Missing []string
}

type argDifference struct {
	Want reflect.Type
	Got  reflect.Type
}

func (d *typeDifferences) Error() error {
	errs := []error{}
	for i, arg := range d.In {
		if arg != nil {
			errs = append(errs, fmt.Errorf("argument %d: %v != %v", i, arg.Want, arg.Got))
		}
	}
	for i, out := range d.Out {
		if out != nil {
			errs = append(errs, fmt.Errorf("output %d: %v != %v", i, out.Want, out.Got))
		}
	}
	for _, name := range d.Missing {
		errs = append(errs, fmt.Errorf("%v is missing method %s", d.Got, name))
	}

	if len(errs) == 0 {
		return fmt.Errorf("%v is not assignable to %v", d.Got, d.Want)
	}
	return errors.Join(errs...)
}

func diffTypes(want, got reflect.Type) error {
	d := typeDifferences{Want: want, Got: got}

	switch {
	case want.Kind() == reflect.Func && got.Kind() == reflect.Func:
		d.In = diffArgs(want.NumIn(), got.NumIn(), want.In, got.In)
		d.Out = diffArgs(want.NumOut(), got.NumOut(), want.Out, got.Out)
	case want.Kind() == reflect.Interface:
		for i := 0; i < want.NumMethod(); i++ {
			m := want.Method(i)
			gm, ok := got.MethodByName(m.Name)
			if !ok || !methodMatches(m.Type, gm.Type, got.Kind() == reflect.Interface) {
				d.Missing = append(d.Missing, m.Name)
			}
		}
	}

	return d.Error()
}

// diffArgs compares two argument lists. Arguments present on only one side
// are reported with a nil type for the other.
func diffArgs(wantN, gotN int, want, got func(int) reflect.Type) []*argDifference {
	n := max(wantN, gotN)
	diffs := make([]*argDifference, n)
	for i := 0; i < n; i++ {
		var w, g reflect.Type
		if i < wantN {
			w = want(i)
		}
		if i < gotN {
			g = got(i)
		}
		if w != g {
			diffs[i] = &argDifference{Want: w, Got: g}
		}
	}
	return diffs
}

// methodMatches compares an interface method type with a method found on a
// concrete type, whose func type includes the receiver as its first
// argument.
func methodMatches(want, got reflect.Type, gotIsInterface bool) bool {
	skip := 1
	if gotIsInterface {
		skip = 0
	}
	if want.NumIn() != got.NumIn()-skip || want.NumOut() != got.NumOut() {
		return false
	}
	for i := 0; i < want.NumIn(); i++ {
		if want.In(i) != got.In(i+skip) {
			return false
		}
	}
	for i := 0; i < want.NumOut(); i++ {
		if want.Out(i) != got.Out(i) {
			return false
		}
	}
	return want.IsVariadic() == got.IsVariadic()
}
