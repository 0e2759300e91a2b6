package ecs

import "reflect"

// ComponentRegistry manages component type registration for a Context.
// Each Context has its own registry, allowing multiple independent ECS
// instances to coexist without interference. Registration supplies the
// default-construct capability the pools need when they expand; register
// every component type before the Context starts handing out instances.
type ComponentRegistry struct {
	factories map[reflect.Type]func() any
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() any),
	}
}

// RegisterComponent registers a component type with the given registry.
// Pool instances for T are pointers to a zero value.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeOf((*(T))(nil)).Elem()
	r.factories[t] = func() any {
		return new(T)
	}
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() any {
	return r.factories[t]
}
