package ecs

import (
	"fmt"

	"github.com/google/uuid"
)

// Entity is the runtime entity handle: a random id plus a dense component
// slot array sized by the owning Context's schema. Slot i holds at most one
// instance, of the component type the schema bound to slot i. The handle only
// borrows the instances in its slots — removing or resetting never repays
// them to their pools; that discipline belongs to the caller.
//
// Handles compare by pointer identity, never by id: ids are reassigned every
// time a handle is recycled through the entity pool.
type Entity struct {
	id     string
	schema *Schema
	slots  []any
}

// newEntity constructs a handle bound to the given schema with a fresh id.
// Handles are only ever constructed by a Context's entity pool.
func newEntity(schema *Schema) *Entity {
	return &Entity{
		id:     uuid.NewString(),
		schema: schema,
		slots:  make([]any, schema.SlotCount()),
	}
}

// ID returns the entity's current identifier. The value changes when the
// handle is recycled, so a stored id never aliases a later entity.
func (e *Entity) ID() string {
	return e.id
}

// Schema returns the shared schema this handle's slots are indexed by.
func (e *Entity) Schema() *Schema {
	return e.schema
}

// SetComponent stores a component instance into the given slot. Returns
// ErrDuplicateComponent, leaving the slot untouched, if the slot is already
// occupied; remove the existing component first or use ReplaceComponent.
func (e *Entity) SetComponent(index int, component any) error {
	if e.slots[index] != nil {
		return fmt.Errorf("%w: entity %s slot %d (%s)",
			ErrDuplicateComponent, e.id, index, e.schema.NameAt(index))
	}
	e.slots[index] = component
	return nil
}

// ReplaceComponent unconditionally overwrites the slot. The displaced
// instance is discarded without being repaid to any pool; callers wanting
// pool discipline must repay it themselves before calling this.
func (e *Entity) ReplaceComponent(index int, component any) {
	e.slots[index] = component
}

// GetComponent returns the instance in the given slot, or nil for an empty
// slot.
func (e *Entity) GetComponent(index int) any {
	return e.slots[index]
}

// RemoveComponent clears the given slot. Returns ErrComponentNotFound if the
// slot is empty. The removed instance is not repaid to its pool.
func (e *Entity) RemoveComponent(index int) error {
	if e.slots[index] == nil {
		return fmt.Errorf("%w: entity %s slot %d (%s)",
			ErrComponentNotFound, e.id, index, e.schema.NameAt(index))
	}
	e.slots[index] = nil
	return nil
}

// HasComponent reports whether the given slot is occupied.
func (e *Entity) HasComponent(index int) bool {
	return e.slots[index] != nil
}

// HasComponents reports whether every listed slot is occupied.
func (e *Entity) HasComponents(indices ...int) bool {
	for _, i := range indices {
		if e.slots[i] == nil {
			return false
		}
	}
	return true
}

// HasAnyComponent reports whether at least one listed slot is occupied.
func (e *Entity) HasAnyComponent(indices ...int) bool {
	for _, i := range indices {
		if e.slots[i] != nil {
			return true
		}
	}
	return false
}

// Components returns the occupied slots' instances in slot order.
func (e *Entity) Components() []any {
	out := make([]any, 0, len(e.slots))
	for _, c := range e.slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ComponentCount returns the number of occupied slots.
func (e *Entity) ComponentCount() int {
	n := 0
	for _, c := range e.slots {
		if c != nil {
			n++
		}
	}
	return n
}

// RemoveAllComponents clears every occupied slot. Instances are not repaid.
func (e *Entity) RemoveAllComponents() {
	for i := range e.slots {
		e.slots[i] = nil
	}
}

// Reset clears all slots and any handle-local bookkeeping. Invoked
// automatically when the handle returns to the entity pool.
func (e *Entity) Reset() {
	e.RemoveAllComponents()
}

// reassignID gives the handle a fresh random id. Called by the entity pool
// on repay so a destroyed entity's id can never name a later one.
func (e *Entity) reassignID() {
	e.id = uuid.NewString()
}

func (e *Entity) String() string {
	return fmt.Sprintf("Entity{id=%s, components=%d/%d}",
		e.id, e.ComponentCount(), len(e.slots))
}
