package ecs

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// DefaultComponentPoolCapacity is the initial size of a component pool
// created lazily by Context.ComponentPool.
const DefaultComponentPoolCapacity = 100

// Context owns a population of entities and their component pools. Entities
// are created and destroyed only through the Context; it tracks live handles
// by id, keeps one lazily created component pool per registered type, and
// recycles handles through a single entity pool.
//
// All Context operations serialize on one coarse lock; the Context guarantees
// its own bookkeeping stays consistent under concurrent callers but provides
// no per-entity transactional isolation.
type Context struct {
	mu             sync.Mutex
	name           string
	schema         *Schema
	registry       *ComponentRegistry
	entities       map[string]*Entity
	componentPools map[reflect.Type]*Pool[any]
	entityPool     *Pool[*Entity]
	poolCapacity   int
	log            *zap.Logger
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithSchema attaches a pre-built schema instead of the default one.
func WithSchema(s *Schema) Option {
	return func(c *Context) { c.schema = s }
}

// WithSchemaSlots sizes the default schema. Ignored when WithSchema is used.
func WithSchemaSlots(slotCount int) Option {
	return func(c *Context) {
		if c.schema == nil {
			c.schema = DefaultSchema(slotCount)
		}
	}
}

// WithLogger attaches a logger for pool growth and lifecycle events.
// The default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithComponentPoolCapacity overrides the initial capacity of lazily created
// component pools.
func WithComponentPoolCapacity(n int) Option {
	return func(c *Context) { c.poolCapacity = n }
}

// NewContext creates a context with the given name and initial entity-pool
// capacity. The registry supplies factories for every component type the
// context will pool. Without WithSchema or WithSchemaSlots, the default
// schema gets one slot per initial entity, mirroring the entity capacity.
func NewContext(name string, initialCapacity int, registry *ComponentRegistry, opts ...Option) *Context {
	if registry == nil {
		panic("ecs: context requires a component registry")
	}

	c := &Context{
		name:           name,
		registry:       registry,
		entities:       make(map[string]*Entity),
		componentPools: make(map[reflect.Type]*Pool[any]),
		poolCapacity:   DefaultComponentPoolCapacity,
		log:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.schema == nil {
		c.schema = DefaultSchema(initialCapacity)
	}

	c.entityPool = NewPool(name+"/entities", func() *Entity {
		return newEntity(c.schema)
	}, initialCapacity, c.log)
	c.entityPool.onRepay = func(e *Entity) {
		e.Reset()
		e.reassignID()
	}

	return c
}

// Name returns the context's label.
func (c *Context) Name() string {
	return c.name
}

// Schema returns the shared component schema.
func (c *Context) Schema() *Schema {
	return c.schema
}

// CreateEntity draws a handle from the entity pool and registers it live.
func (c *Context) CreateEntity() *Entity {
	e := c.entityPool.Get()

	c.mu.Lock()
	c.entities[e.id] = e
	c.mu.Unlock()
	return e
}

// GetEntity returns the live entity with the given id, or false if absent.
func (c *Context) GetEntity(id string) (*Entity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entities[id]
	return e, ok
}

// HasEntity reports whether the handle is registered live in this context.
// The check is by identity; a coincidental id match does not count.
func (c *Context) HasEntity(e *Entity) bool {
	if e == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entities[e.id] == e
}

// DestroyEntity resets the handle, deregisters it, and returns it to the
// entity pool, which reassigns its id before reuse. Still-attached components
// are discarded, not repaid — repay them to their pools first if they should
// be recycled. Returns ErrEntityNotFound, mutating nothing, if the handle is
// not registered here.
func (c *Context) DestroyEntity(e *Entity) error {
	if e == nil {
		return fmt.Errorf("%w: context %q (nil handle)", ErrEntityNotFound, c.name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := e.id
	if c.entities[id] != e {
		return fmt.Errorf("%w: context %q entity %s", ErrEntityNotFound, c.name, id)
	}
	if err := c.entityPool.Repay(e); err != nil {
		return err
	}
	delete(c.entities, id)
	return nil
}

// EntityCount returns the number of live entities.
func (c *Context) EntityCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entities)
}

// Entities returns a snapshot of the live entity handles.
func (c *Context) Entities() []*Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Entity, 0, len(c.entities))
	for _, e := range c.entities {
		out = append(out, e)
	}
	return out
}

// ComponentPool returns the pool for the given component type, creating it
// with the default capacity on first request. Pointer types are normalized to
// their element type. Returns ErrTypeNotRegistered when the registry has no
// factory for the type.
func (c *Context) ComponentPool(t reflect.Type) (*Pool[any], error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if pool, ok := c.componentPools[t]; ok {
		return pool, nil
	}
	factory := c.registry.getFactory(t)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotRegistered, t.String())
	}
	pool := NewPool(c.name+"/"+displayName(t), factory, c.poolCapacity, c.log)
	c.componentPools[t] = pool
	return pool, nil
}

// ComponentPoolFor is the generic convenience form of Context.ComponentPool.
func ComponentPoolFor[T any](c *Context) (*Pool[any], error) {
	return c.ComponentPool(reflect.TypeOf((*(T))(nil)).Elem())
}

// DestroyAllEntities resets every live handle and clears the live set, but
// keeps the component pool registry warm and does not return handles to the
// entity pool. This is "clear the world, keep the pools"; Reset is the fuller
// teardown.
func (c *Context) DestroyAllEntities() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entities {
		e.Reset()
	}
	clear(c.entities)
}

// Reset resets every live handle, clears the live set, and drops the
// component pool registry. The entity pool's bookkeeping and the schema are
// left intact.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entities {
		e.Reset()
	}
	clear(c.entities)
	clear(c.componentPools)

	c.log.Info("context reset", zap.String("context", c.name))
}

// EntityPoolStats returns a snapshot of the entity pool's counts.
func (c *Context) EntityPoolStats() PoolStats {
	return c.entityPool.Stats()
}

// ComponentPoolStats returns a snapshot of every created component pool.
func (c *Context) ComponentPoolStats() []PoolStats {
	c.mu.Lock()
	pools := make([]*Pool[any], 0, len(c.componentPools))
	for _, p := range c.componentPools {
		pools = append(pools, p)
	}
	c.mu.Unlock()

	out := make([]PoolStats, 0, len(pools))
	for _, p := range pools {
		out = append(out, p.Stats())
	}
	return out
}
