package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/poolecs/ecs"
)

func newPositionPool(initial int) *ecs.Pool[*Position] {
	return ecs.NewPool("positions", func() *Position { return &Position{} }, initial, nil)
}

func TestPoolInitialCapacity(t *testing.T) {
	pool := newPositionPool(10)

	assert.Equal(t, 10, pool.Available())
	assert.Equal(t, 0, pool.Used())
	assert.Equal(t, 10, pool.Total())
}

func TestPoolGetMovesInstanceToUsed(t *testing.T) {
	pool := newPositionPool(5)

	p := pool.Get()
	require.NotNil(t, p)

	assert.Equal(t, 4, pool.Available())
	assert.Equal(t, 1, pool.Used())
	assert.Equal(t, 5, pool.Total())
}

func TestPoolExpansion(t *testing.T) {
	pool := newPositionPool(10)

	// Drain the initial capacity.
	drawn := pool.GetAll(10)
	assert.Equal(t, 0, pool.Available())
	assert.Equal(t, 10, pool.Used())

	// The next draw expands by max(10, 10/2) = 10.
	extra := pool.Get()
	require.NotNil(t, extra)
	assert.Equal(t, 9, pool.Available())
	assert.Equal(t, 11, pool.Used())
	assert.Equal(t, 20, pool.Total())

	require.NoError(t, pool.RepayAll(drawn))
	require.NoError(t, pool.Repay(extra))
}

func TestPoolExpansionIsGeometric(t *testing.T) {
	pool := newPositionPool(40)

	pool.GetAll(40)
	assert.Equal(t, 40, pool.Total())

	// 40 total, half is 20 > the minimum growth of 10.
	pool.Get()
	assert.Equal(t, 60, pool.Total())
}

func TestPoolRepayReturnsInstance(t *testing.T) {
	pool := newPositionPool(3)

	p := pool.Get()
	require.NoError(t, pool.Repay(p))

	assert.Equal(t, 3, pool.Available())
	assert.Equal(t, 0, pool.Used())
}

func TestPoolRepayForeignInstance(t *testing.T) {
	pool := newPositionPool(3)

	err := pool.Repay(&Position{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrNotPooled)

	// The failed repay changed nothing.
	assert.Equal(t, 3, pool.Available())
	assert.Equal(t, 0, pool.Used())
}

func TestPoolDoubleRepay(t *testing.T) {
	pool := newPositionPool(3)

	p := pool.Get()
	require.NoError(t, pool.Repay(p))

	err := pool.Repay(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrNotPooled)
	assert.Equal(t, 3, pool.Total())
}

func TestPoolRepayMatchesByIdentity(t *testing.T) {
	pool := newPositionPool(2)

	a := pool.Get()
	b := pool.Get()
	*a = Position{X: 1, Y: 2}
	*b = Position{X: 1, Y: 2}

	// Equal values, distinct instances: both repays must succeed.
	require.NoError(t, pool.Repay(a))
	require.NoError(t, pool.Repay(b))
	assert.Equal(t, 2, pool.Available())
}

func TestPoolBalancedSequencePreservesTotal(t *testing.T) {
	pool := newPositionPool(10)
	before := pool.Total()

	for round := 0; round < 5; round++ {
		drawn := pool.GetAll(7)
		require.NoError(t, pool.RepayAll(drawn))
	}

	assert.Equal(t, before, pool.Available()+pool.Used())
}

func TestPoolGetAllRepayAll(t *testing.T) {
	pool := newPositionPool(4)

	drawn := pool.GetAll(6)
	assert.Len(t, drawn, 6)
	assert.Equal(t, 6, pool.Used())

	require.NoError(t, pool.RepayAll(drawn))
	assert.Equal(t, 0, pool.Used())
}

func TestPoolRepayAllStopsAtFirstFailure(t *testing.T) {
	pool := newPositionPool(4)

	a := pool.Get()
	err := pool.RepayAll([]*Position{a, &Position{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrNotPooled)

	// The valid instance before the failure was still repaid.
	assert.Equal(t, 0, pool.Used())
}

func TestPoolCleanupRestoresInitialCapacity(t *testing.T) {
	pool := newPositionPool(10)

	pool.GetAll(25) // grows the pool past its initial size
	assert.Greater(t, pool.Total(), 10)

	pool.Cleanup()
	assert.Equal(t, 10, pool.Available())
	assert.Equal(t, 0, pool.Used())
	assert.Equal(t, 10, pool.Total())
}

func TestPoolStats(t *testing.T) {
	pool := newPositionPool(5)
	pool.GetAll(2)

	stats := pool.Stats()
	assert.Equal(t, "positions", stats.Name)
	assert.Equal(t, 3, stats.Available)
	assert.Equal(t, 2, stats.Used)
	assert.Equal(t, 5, stats.Total)
}

func TestPoolConcurrentChurn(t *testing.T) {
	pool := newPositionPool(8)

	done := make(chan struct{})
	for w := 0; w < 4; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				p := pool.Get()
				if err := pool.Repay(p); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for w := 0; w < 4; w++ {
		<-done
	}

	assert.Equal(t, 0, pool.Used())
	assert.Equal(t, pool.Total(), pool.Available())
}
