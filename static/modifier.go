package static

import "strings"

// Modifier is a set of field attribute bits.
type Modifier uint32

const (
	// Final fields can't be written through [Field.Set].
	Final Modifier = 1 << iota

	// Hidden fields are left out of [Fields]. They can still be found by
	// name with [Lookup].
	Hidden
)

func (m Modifier) String() string {
	var names []string
	if m&Hidden != 0 {
		names = append(names, "hidden")
	}
	if m&Final != 0 {
		names = append(names, "final")
	}
	return strings.Join(names, " ")
}

func (m Modifier) prefix() string {
	if m == 0 {
		return ""
	}
	return m.String() + " "
}
