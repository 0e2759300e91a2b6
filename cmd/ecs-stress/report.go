package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/poolecs/ecs"
	"github.com/plus3/poolecs/heartbeat"
)

type Report struct {
	// Configuration
	Duration    time.Duration
	Entities    int
	SchemaSlots int
	TickRate    time.Duration

	// Results
	TotalTime      time.Duration
	Pulses         []heartbeat.PulseStats
	EntityPool     ecs.PoolStats
	ComponentPools []ecs.PoolStats
	LiveEntities   int
	Churn          churnCounters
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Pooled ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Schema Slots:** {{.SchemaSlots}}
- **Tick Rate:** {{.TickRate}}

## Churn Results
- **Total Test Time:** {{.TotalTime}}
- **Components Attached:** {{.Churn.Attached}}
- **Components Detached:** {{.Churn.Detached}}
- **Entities Recycled:** {{.Churn.Recycled}}
- **Live Entities at End:** {{.LiveEntities}}

## Pulse Timing
{{range .Pulses}}- **{{.Name}}:** beats={{.BeatCount}} avg={{.AvgDuration}} min={{.MinDuration}} max={{.MaxDuration}}
{{end}}
## Pool State
- **{{.EntityPool.Name}}:** available={{.EntityPool.Available}} used={{.EntityPool.Used}} total={{.EntityPool.Total}}
{{range .ComponentPools}}- **{{.Name}}:** available={{.Available}} used={{.Used}} total={{.Total}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
