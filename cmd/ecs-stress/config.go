package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Stress  StressConfig  `toml:"stress"`
	Logging LoggingConfig `toml:"logging"`
}

type StressConfig struct {
	Entities      int           `toml:"entities"`       // initial live entity count
	SchemaSlots   int           `toml:"schema_slots"`   // component slot capacity per entity
	PoolCapacity  int           `toml:"pool_capacity"`  // initial capacity of each component pool
	TickRate      time.Duration `toml:"tick_rate"`      // heartbeat interval
	AttachChance  float64       `toml:"attach_chance"`  // per-entity chance to attach a component each tick
	DetachChance  float64       `toml:"detach_chance"`  // per-entity chance to detach a component each tick
	RecycleChance float64       `toml:"recycle_chance"` // per-entity chance to destroy and respawn each tick
}

type LoggingConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

func defaultConfig() Config {
	return Config{
		Stress: StressConfig{
			Entities:      10000,
			SchemaSlots:   16,
			PoolCapacity:  256,
			TickRate:      10 * time.Millisecond,
			AttachChance:  0.30,
			DetachChance:  0.20,
			RecycleChance: 0.05,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func newLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
