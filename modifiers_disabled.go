//go:build implinject_nomodifiers

package implinject

import (
	"gitlab.com/tozd/go/errors"

	"github.com/pboyd/implinject/static"
)

type modifierPatch struct{}

func probeModifierPatch() (*modifierPatch, error) {
	return nil, errors.New("disabled by the implinject_nomodifiers build tag")
}

func (*modifierPatch) inject(*static.Field, any) error {
	return errors.WithStack(ErrAccessDenied)
}
