package ecs

import (
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeKey returns a stable identity key for a reflect.Type. Two Types
// describing the same Go type share one runtime type descriptor, so the data
// pointer is unique per type and much cheaper than hashing the type name.
func typeKey(t reflect.Type) int64 {
	ptr := (*iface)(unsafe.Pointer(&t)).data
	return int64(uintptr(ptr))
}
