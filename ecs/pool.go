package ecs

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// poolMinGrowth is the smallest number of instances added in one expansion.
const poolMinGrowth = 10

// Pool is a reusable-object allocator: instead of constructing and discarding
// an instance per use, callers draw instances with Get and return them with
// Repay. Every instance is in exactly one of the available or used sets at a
// time. When Get finds no available instance the pool expands by
// max(10, total/2) — large enough to keep expansions rare, small enough to
// bound overshoot.
//
// T must carry identity semantics (in practice a pointer type); Repay matches
// by identity, not by value.
type Pool[T comparable] struct {
	mu        sync.Mutex
	name      string
	factory   func() T
	initial   int
	available []T
	used      []T
	onRepay   func(T)
	log       *zap.Logger
}

// PoolStats is a snapshot of a pool's instance counts.
type PoolStats struct {
	Name      string
	Available int
	Used      int
	Total     int
}

// NewPool creates a pool that constructs instances with factory, pre-filled
// with initialSize available instances. A nil logger disables growth logging.
func NewPool[T comparable](name string, factory func() T, initialSize int, logger *zap.Logger) *Pool[T] {
	if factory == nil {
		panic("ecs: pool factory must not be nil")
	}
	if initialSize < 0 {
		initialSize = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pool[T]{
		name:    name,
		factory: factory,
		initial: initialSize,
		log:     logger,
	}
	p.fill(initialSize)
	return p
}

// Get returns one instance, expanding the pool first if none is available.
func (p *Pool[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.available) == 0 {
		p.expand()
	}

	n := len(p.available) - 1
	x := p.available[n]
	p.available = p.available[:n]
	p.used = append(p.used, x)
	return x
}

// GetAll draws count instances. It is a convenience over repeated Get calls
// and carries no extra atomicity.
func (p *Pool[T]) GetAll(count int) []T {
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, p.Get())
	}
	return out
}

// Repay returns a checked-out instance to the pool. The instance is matched
// by identity against the used set; repaying an instance that is not checked
// out, or repaying the same instance twice, returns ErrNotPooled and leaves
// the pool unchanged.
func (p *Pool[T]) Repay(x T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, u := range p.used {
		if u == x {
			p.used[i] = p.used[len(p.used)-1]
			p.used = p.used[:len(p.used)-1]
			if p.onRepay != nil {
				p.onRepay(x)
			}
			p.available = append(p.available, x)
			return nil
		}
	}
	return fmt.Errorf("%w: pool %q", ErrNotPooled, p.name)
}

// RepayAll repays each instance in order, stopping at the first failure.
// Instances before the failing one stay repaid.
func (p *Pool[T]) RepayAll(xs []T) error {
	for _, x := range xs {
		if err := p.Repay(x); err != nil {
			return err
		}
	}
	return nil
}

// Cleanup discards every instance, checked out or not, and reconstructs the
// pool at its original initial capacity. Meant for hard resets such as a
// level reload; instances still held by callers are orphaned.
func (p *Pool[T]) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.available = nil
	p.used = nil
	p.fill(p.initial)
}

// Available returns the number of ready-to-use instances.
func (p *Pool[T]) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.available)
}

// Used returns the number of checked-out instances.
func (p *Pool[T]) Used() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.used)
}

// Total returns the true instance count, available plus used.
func (p *Pool[T]) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.available) + len(p.used)
}

// Stats returns a snapshot of the pool's counts.
func (p *Pool[T]) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		Name:      p.name,
		Available: len(p.available),
		Used:      len(p.used),
		Total:     len(p.available) + len(p.used),
	}
}

// expand grows the pool by max(10, total/2) new instances.
// Caller holds p.mu.
func (p *Pool[T]) expand() {
	total := len(p.available) + len(p.used)
	growth := total / 2
	if growth < poolMinGrowth {
		growth = poolMinGrowth
	}
	p.fill(growth)

	p.log.Info("pool expanded",
		zap.String("pool", p.name),
		zap.Int("added", growth),
		zap.Int("total", total+growth))
}

// fill constructs count new instances into the available set.
// Caller holds p.mu (or the pool is not yet shared).
func (p *Pool[T]) fill(count int) {
	for i := 0; i < count; i++ {
		p.available = append(p.available, p.factory())
	}
}
