//go:build !implinject_norawwrite

package implinject

import (
	"reflect"
	"unsafe"
)

// iface is the runtime layout of a non-empty interface value.
type iface struct {
	tab  unsafe.Pointer
	data unsafe.Pointer
}

// abiType returns the runtime type descriptor behind t. The reflect.Type
// interface always holds a *reflect.rtype, which starts with the runtime's
// type structure.
func abiType(t reflect.Type) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&t)).data
}

// typedmemmove copies a value of type typ from src to dst, with the write
// barriers the garbage collector needs for any pointers in it.
//
//go:linkname typedmemmove reflect.typedmemmove
func typedmemmove(typ unsafe.Pointer, dst, src unsafe.Pointer)
