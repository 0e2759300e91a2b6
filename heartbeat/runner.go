// Package heartbeat drives a simulation at a fixed cadence. A Runner beats
// every registered Pulse once per tick with the elapsed delta time and keeps
// per-pulse timing statistics.
package heartbeat

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pulse is one unit of per-tick work, such as updating an agent manager or
// draining a message dispatcher.
type Pulse interface {
	Beat(dt float64)
}

// PulseFunc adapts a plain function to the Pulse interface.
type PulseFunc func(dt float64)

// Beat calls f.
func (f PulseFunc) Beat(dt float64) { f(dt) }

// PulseStats provides execution statistics for a single pulse.
type PulseStats struct {
	Name         string
	BeatCount    int64
	MinDuration  time.Duration
	MaxDuration  time.Duration
	AvgDuration  time.Duration
	LastDuration time.Duration
}

type pulseStatsInternal struct {
	name          string
	beatCount     int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

// Runner executes registered pulses in registration order.
type Runner struct {
	mu     sync.Mutex
	pulses []Pulse
	stats  []*pulseStatsInternal
	log    *zap.Logger
}

// NewRunner creates an empty runner. A nil logger disables lifecycle logging.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{log: logger}
}

// Register adds a pulse to the runner.
func (r *Runner) Register(p Pulse) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pulses = append(r.pulses, p)
	r.stats = append(r.stats, &pulseStatsInternal{
		name:        pulseName(p),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once beats every pulse a single time with the given delta time in seconds.
func (r *Runner) Once(dt float64) {
	r.mu.Lock()
	pulses := r.pulses
	stats := r.stats
	r.mu.Unlock()

	for i, p := range pulses {
		start := time.Now()
		p.Beat(dt)
		duration := time.Since(start)

		s := stats[i]
		s.beatCount++
		s.lastDuration = duration
		s.totalDuration += duration
		if duration < s.minDuration {
			s.minDuration = duration
		}
		if duration > s.maxDuration {
			s.maxDuration = duration
		}
	}
}

// Run beats all pulses repeatedly at the given interval until the context is
// cancelled.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Info("heartbeat started", zap.Duration("interval", interval))
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("heartbeat stopped")
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			r.Once(dt)
		}
	}
}

// Stats returns execution statistics for every registered pulse.
func (r *Runner) Stats() []PulseStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PulseStats, len(r.stats))
	for i, s := range r.stats {
		avg := time.Duration(0)
		if s.beatCount > 0 {
			avg = s.totalDuration / time.Duration(s.beatCount)
		}
		out[i] = PulseStats{
			Name:         s.name,
			BeatCount:    s.beatCount,
			MinDuration:  s.minDuration,
			MaxDuration:  s.maxDuration,
			AvgDuration:  avg,
			LastDuration: s.lastDuration,
		}
	}
	return out
}

func pulseName(p Pulse) string {
	t := reflect.TypeOf(p)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
