package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/poolecs/ecs"
	"github.com/plus3/poolecs/heartbeat"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML scenario file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 0, "Initial live entities (overrides the config value when > 0).")
	profileMode := flag.String("profile", "off", "Profiling mode: cpu, mem, or off.")
	verbose := flag.Bool("v", false, "Log at debug level regardless of config.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *entityCount > 0 {
		cfg.Stress.Entities = *entityCount
	}
	if *verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	logger.Info("starting pooled ECS stress test",
		zap.Int("entities", cfg.Stress.Entities),
		zap.Duration("duration", *duration))

	world := ecs.NewContext("stress", cfg.Stress.Entities, newStressRegistry(),
		ecs.WithSchemaSlots(cfg.Stress.SchemaSlots),
		ecs.WithComponentPoolCapacity(cfg.Stress.PoolCapacity),
		ecs.WithLogger(logger))

	churn := newChurnPulse(world, cfg.Stress, logger)
	for i := 0; i < cfg.Stress.Entities; i++ {
		churn.spawn()
	}

	runner := heartbeat.NewRunner(logger)
	runner.Register(churn)

	report := &Report{
		Duration:    *duration,
		Entities:    cfg.Stress.Entities,
		SchemaSlots: cfg.Stress.SchemaSlots,
		TickRate:    cfg.Stress.TickRate,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	runner.Run(ctx, cfg.Stress.TickRate)

	report.TotalTime = time.Since(startTime)
	report.Pulses = runner.Stats()
	report.EntityPool = world.EntityPoolStats()
	report.ComponentPools = world.ComponentPoolStats()
	report.LiveEntities = world.EntityCount()
	report.Churn = churn.counters()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("stress test finished")

	fmt.Println("\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// churnPulse randomly attaches, detaches, and recycles entities each beat,
// always repaying component instances to their pools before they are
// discarded.
type churnPulse struct {
	world *ecs.Context
	cfg   StressConfig
	log   *zap.Logger
	rng   *rand.Rand

	attached int64
	detached int64
	recycled int64
}

type churnCounters struct {
	Attached int64
	Detached int64
	Recycled int64
}

func newChurnPulse(world *ecs.Context, cfg StressConfig, log *zap.Logger) *churnPulse {
	return &churnPulse{
		world: world,
		cfg:   cfg,
		log:   log,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *churnPulse) Beat(dt float64) {
	for _, e := range c.world.Entities() {
		roll := c.rng.Float64()
		switch {
		case roll < c.cfg.RecycleChance:
			c.recycle(e)
		case roll < c.cfg.RecycleChance+c.cfg.DetachChance:
			c.detachRandom(e)
		case roll < c.cfg.RecycleChance+c.cfg.DetachChance+c.cfg.AttachChance:
			c.attachRandom(e)
		}
	}
}

// spawn creates one entity with a random component attached.
func (c *churnPulse) spawn() {
	e := c.world.CreateEntity()
	c.attachRandom(e)
}

func (c *churnPulse) attachRandom(e *ecs.Entity) {
	t := stressComponentTypes[c.rng.Intn(len(stressComponentTypes))]
	slot, err := c.world.Schema().IndexOf(t)
	if err != nil {
		c.log.Fatal("schema exhausted", zap.Error(err))
	}
	if e.HasComponent(slot) {
		return
	}
	pool, err := c.world.ComponentPool(t)
	if err != nil {
		c.log.Fatal("unregistered component", zap.Error(err))
	}
	if err := e.SetComponent(slot, pool.Get()); err != nil {
		c.log.Error("attach failed", zap.Error(err))
		return
	}
	c.attached++
}

func (c *churnPulse) detachRandom(e *ecs.Entity) {
	slots := c.occupiedSlots(e)
	if len(slots) == 0 {
		return
	}
	slot := slots[c.rng.Intn(len(slots))]
	c.repaySlot(e, slot)
	if err := e.RemoveComponent(slot); err != nil {
		c.log.Error("detach failed", zap.Error(err))
		return
	}
	c.detached++
}

// recycle repays every attached component, destroys the entity, and spawns a
// replacement so the live population stays constant.
func (c *churnPulse) recycle(e *ecs.Entity) {
	for _, slot := range c.occupiedSlots(e) {
		c.repaySlot(e, slot)
	}
	if err := c.world.DestroyEntity(e); err != nil {
		c.log.Error("destroy failed", zap.Error(err))
		return
	}
	c.recycled++
	c.spawn()
}

func (c *churnPulse) occupiedSlots(e *ecs.Entity) []int {
	var slots []int
	for i := 0; i < c.world.Schema().SlotCount(); i++ {
		if e.HasComponent(i) {
			slots = append(slots, i)
		}
	}
	return slots
}

// repaySlot returns the instance in the slot to its pool without clearing
// the slot.
func (c *churnPulse) repaySlot(e *ecs.Entity, slot int) {
	t := c.world.Schema().TypeAt(slot)
	if t == nil {
		return
	}
	pool, err := c.world.ComponentPool(t)
	if err != nil {
		c.log.Error("repay failed", zap.Error(err))
		return
	}
	if err := pool.Repay(e.GetComponent(slot)); err != nil {
		c.log.Error("repay failed", zap.Error(err))
	}
}

func (c *churnPulse) counters() churnCounters {
	return churnCounters{
		Attached: c.attached,
		Detached: c.detached,
		Recycled: c.recycled,
	}
}
