//go:build implinject_norawwrite

package implinject

import (
	"gitlab.com/tozd/go/errors"

	"github.com/pboyd/implinject/static"
)

type rawWriter struct{}

func probeRawWrite() (*rawWriter, error) {
	return nil, errors.New("disabled by the implinject_norawwrite build tag")
}

func (*rawWriter) inject(*static.Field, any) error {
	return errors.WithStack(ErrAccessDenied)
}
