package main

import (
	"reflect"

	"github.com/plus3/poolecs/ecs"
)

// Stress component set. The schema binds each type to a slot on first use,
// so keep schema_slots at or above the number of types in use.
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current, Max int
}

type AI struct {
	State int
}

type Name struct {
	Value string
}

type Lifespan struct {
	Remaining float64
}

type Combat struct {
	Attack, Defense int
}

type Tag struct {
	Value uint64
}

var stressComponentTypes = []reflect.Type{
	reflect.TypeOf((*(Position))(nil)).Elem(),
	reflect.TypeOf((*(Velocity))(nil)).Elem(),
	reflect.TypeOf((*(Health))(nil)).Elem(),
	reflect.TypeOf((*(AI))(nil)).Elem(),
	reflect.TypeOf((*(Name))(nil)).Elem(),
	reflect.TypeOf((*(Lifespan))(nil)).Elem(),
	reflect.TypeOf((*(Combat))(nil)).Elem(),
	reflect.TypeOf((*(Tag))(nil)).Elem(),
}

func newStressRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Lifespan](registry)
	ecs.RegisterComponent[Combat](registry)
	ecs.RegisterComponent[Tag](registry)
	return registry
}
