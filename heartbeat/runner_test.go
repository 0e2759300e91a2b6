package heartbeat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/poolecs/heartbeat"
)

type countingPulse struct {
	beats int
	total float64
}

func (p *countingPulse) Beat(dt float64) {
	p.beats++
	p.total += dt
}

func TestRunnerOnce(t *testing.T) {
	runner := heartbeat.NewRunner(nil)

	a := &countingPulse{}
	b := &countingPulse{}
	runner.Register(a)
	runner.Register(b)

	runner.Once(0.5)
	runner.Once(0.5)

	assert.Equal(t, 2, a.beats)
	assert.Equal(t, 2, b.beats)
	assert.InDelta(t, 1.0, a.total, 1e-9)
}

func TestRunnerPulseFunc(t *testing.T) {
	runner := heartbeat.NewRunner(nil)

	var got float64
	runner.Register(heartbeat.PulseFunc(func(dt float64) { got += dt }))

	runner.Once(0.25)
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestRunnerStats(t *testing.T) {
	runner := heartbeat.NewRunner(nil)
	runner.Register(&countingPulse{})

	runner.Once(0.1)
	runner.Once(0.1)
	runner.Once(0.1)

	stats := runner.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, "countingPulse", stats[0].Name)
	assert.Equal(t, int64(3), stats[0].BeatCount)
	assert.GreaterOrEqual(t, stats[0].MaxDuration, stats[0].MinDuration)
	assert.GreaterOrEqual(t, stats[0].AvgDuration, time.Duration(0))
}

func TestRunnerRunStopsOnCancel(t *testing.T) {
	runner := heartbeat.NewRunner(nil)

	pulse := &countingPulse{}
	runner.Register(pulse)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		runner.Run(ctx, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop on context cancellation")
	}
	assert.Greater(t, pulse.beats, 0)
}
