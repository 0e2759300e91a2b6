package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/poolecs/ecs"
)

// newTestEntity returns a fresh entity from a context with the given schema
// slot count.
func newTestEntity(t *testing.T, slots int) *ecs.Entity {
	t.Helper()
	world := ecs.NewContext("test", 4, newTestRegistry(), ecs.WithSchemaSlots(slots))
	return world.CreateEntity()
}

func TestEntityHasUniqueId(t *testing.T) {
	world := ecs.NewContext("test", 4, newTestRegistry(), ecs.WithSchemaSlots(4))

	a := world.CreateEntity()
	b := world.CreateEntity()

	assert.NotEmpty(t, a.ID())
	assert.NotEmpty(t, b.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestEntitySetComponent(t *testing.T) {
	e := newTestEntity(t, 4)

	pos := &Position{X: 1, Y: 2}
	require.NoError(t, e.SetComponent(0, pos))

	assert.True(t, e.HasComponent(0))
	assert.Same(t, pos, e.GetComponent(0))
}

func TestEntitySetComponentDuplicate(t *testing.T) {
	e := newTestEntity(t, 4)

	x := &Position{X: 1}
	y := &Position{X: 2}
	require.NoError(t, e.SetComponent(0, x))

	err := e.SetComponent(0, y)
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrDuplicateComponent)

	// The failed set left the original in place.
	assert.Same(t, x, e.GetComponent(0))
}

func TestEntityReplaceComponent(t *testing.T) {
	e := newTestEntity(t, 4)

	x := &Position{X: 1}
	y := &Position{X: 2}
	require.NoError(t, e.SetComponent(0, x))

	e.ReplaceComponent(0, y)
	assert.Same(t, y, e.GetComponent(0))

	// Replace also works on an empty slot.
	e.ReplaceComponent(1, &Velocity{})
	assert.True(t, e.HasComponent(1))
}

func TestEntityRemoveComponent(t *testing.T) {
	e := newTestEntity(t, 4)

	require.NoError(t, e.SetComponent(2, &Health{Current: 10}))
	require.NoError(t, e.RemoveComponent(2))
	assert.False(t, e.HasComponent(2))
	assert.Nil(t, e.GetComponent(2))
}

func TestEntityRemoveAbsentComponent(t *testing.T) {
	e := newTestEntity(t, 4)

	err := e.RemoveComponent(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrComponentNotFound)
}

func TestEntityCompositionQueries(t *testing.T) {
	e := newTestEntity(t, 4)

	require.NoError(t, e.SetComponent(0, &Position{}))
	require.NoError(t, e.SetComponent(2, &Health{}))

	assert.True(t, e.HasComponents(0, 2))
	assert.False(t, e.HasComponents(0, 1))
	assert.True(t, e.HasAnyComponent(1, 2))
	assert.False(t, e.HasAnyComponent(1, 3))
	assert.Equal(t, 2, e.ComponentCount())
	assert.Len(t, e.Components(), 2)
}

func TestEntityRemoveAllComponents(t *testing.T) {
	e := newTestEntity(t, 4)

	require.NoError(t, e.SetComponent(0, &Position{}))
	require.NoError(t, e.SetComponent(1, &Velocity{}))

	e.RemoveAllComponents()
	assert.Equal(t, 0, e.ComponentCount())
	assert.False(t, e.HasAnyComponent(0, 1, 2, 3))
}

func TestEntityResetClearsSlots(t *testing.T) {
	e := newTestEntity(t, 4)

	require.NoError(t, e.SetComponent(0, &Position{}))
	e.Reset()

	assert.Equal(t, 0, e.ComponentCount())
}

func TestEntitySlotsSizedBySchema(t *testing.T) {
	world := ecs.NewContext("test", 2, newTestRegistry(),
		ecs.WithSchema(ecs.NewSchema("wide", 7)))

	e := world.CreateEntity()
	assert.Same(t, world.Schema(), e.Schema())
	assert.Equal(t, 7, e.Schema().SlotCount())

	// The last slot is addressable.
	require.NoError(t, e.SetComponent(6, &Name{Value: "edge"}))
	assert.True(t, e.HasComponent(6))
}
