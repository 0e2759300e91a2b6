package ecs

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/kamstrup/intmap"
)

// Schema is the fixed mapping from component type to storage slot index,
// shared by every entity in a Context. Slot indices are assigned lazily, in
// first-seen order, and are permanent for the schema's lifetime: IndexOf for
// the same type always returns the same slot. The slot count is fixed at
// construction — running out of slots is a configuration error, not something
// the schema recovers from, because growing it would invalidate the slot
// arrays of every live entity.
type Schema struct {
	mu    sync.Mutex
	name  string
	types []reflect.Type
	names []string
	index *intmap.Map[int64, int]
}

// NewSchema creates a schema with the given name and slot capacity.
func NewSchema(name string, slotCount int) *Schema {
	if slotCount <= 0 {
		panic("ecs: schema slot count must be positive")
	}
	return &Schema{
		name:  name,
		types: make([]reflect.Type, slotCount),
		names: make([]string, slotCount),
		index: intmap.New[int64, int](slotCount),
	}
}

// DefaultSchema creates an unnamed schema with the given slot capacity and
// no types pre-bound.
func DefaultSchema(slotCount int) *Schema {
	return NewSchema("Default", slotCount)
}

// Name returns the schema's informational label.
func (s *Schema) Name() string {
	return s.name
}

// SlotCount returns the fixed number of component slots.
func (s *Schema) SlotCount() int {
	return len(s.types)
}

// IndexOf returns the slot index for a component type, binding the type to
// the first free slot on first use. Pointer types are normalized to their
// element type, so IndexOf for *Position and Position agree. Returns
// ErrSchemaFull when no free slot remains.
func (s *Schema) IndexOf(t reflect.Type) (int, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slot, ok := s.index.Get(typeKey(t)); ok {
		return slot, nil
	}

	for slot, bound := range s.types {
		if bound == nil {
			s.types[slot] = t
			s.names[slot] = displayName(t)
			s.index.Put(typeKey(t), slot)
			return slot, nil
		}
	}

	return -1, fmt.Errorf("%w: schema %q (capacity %d) cannot bind %s",
		ErrSchemaFull, s.name, len(s.types), t.String())
}

// IndexFor is the generic convenience form of Schema.IndexOf.
func IndexFor[T any](s *Schema) (int, error) {
	return s.IndexOf(reflect.TypeOf((*(T))(nil)).Elem())
}

// TypeAt returns the component type bound to the given slot, or nil for an
// unassigned slot.
func (s *Schema) TypeAt(slot int) reflect.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.types[slot]
}

// NameAt returns the display name of the component type bound to the given
// slot, or the empty string for an unassigned slot.
func (s *Schema) NameAt(slot int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.names[slot]
}

// Types returns a snapshot of the slot-indexed component types. Unassigned
// slots are nil.
func (s *Schema) Types() []reflect.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]reflect.Type, len(s.types))
	copy(out, s.types)
	return out
}

// Names returns a snapshot of the slot-indexed component display names.
func (s *Schema) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Schema) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	bound := make([]string, 0, len(s.names))
	for _, n := range s.names {
		if n != "" {
			bound = append(bound, n)
		}
	}
	return fmt.Sprintf("Schema{name=%s, slots=%d, bound=[%s]}",
		s.name, len(s.types), strings.Join(bound, " "))
}

// displayName is the unqualified type name, falling back to the full string
// form for unnamed types.
func displayName(t reflect.Type) string {
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}
