package ecs

import "errors"

// Errors are grouped by recovery strategy. Configuration errors
// (ErrSchemaFull) mean the system was sized wrong at startup and should be
// treated as fatal. Usage errors (ErrDuplicateComponent, ErrComponentNotFound,
// ErrNotPooled, ErrEntityNotFound, ErrTypeNotRegistered) are programmer
// errors; the operation that returned one has not mutated any bookkeeping.
// Compare with errors.Is.
var (
	// ErrSchemaFull is returned by Schema.IndexOf when every slot is already
	// bound to a component type. The schema never grows.
	ErrSchemaFull = errors.New("schema has no free slot")

	// ErrDuplicateComponent is returned by Entity.SetComponent when the slot
	// is already occupied.
	ErrDuplicateComponent = errors.New("component slot already occupied")

	// ErrComponentNotFound is returned by Entity.RemoveComponent when the
	// slot is empty.
	ErrComponentNotFound = errors.New("component slot is empty")

	// ErrNotPooled is returned by Pool.Repay for an instance that is not
	// currently checked out of the pool, including a second repay of the
	// same instance.
	ErrNotPooled = errors.New("instance not owned by this pool")

	// ErrEntityNotFound is returned by Context.DestroyEntity for a handle
	// that is not registered in the context.
	ErrEntityNotFound = errors.New("entity not registered in context")

	// ErrTypeNotRegistered is returned by Context.ComponentPool for a type
	// with no registered factory.
	ErrTypeNotRegistered = errors.New("component type not registered")
)
