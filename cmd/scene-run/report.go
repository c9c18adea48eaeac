package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/scenery/ecs"
)

type Report struct {
	// Configuration
	ConfigPath string
	Duration   time.Duration
	TickRate   int

	// Load
	LoadTime    time.Duration
	Diagnostics []error
	World       ecs.WorldStats
	Scheduler   *ecs.SchedulerStats

	// Results
	TotalUpdates  int64
	TotalTime     time.Duration
	SimulatedTime time.Duration
	UpdateTime    Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Sorted(slices.Values(s.Samples))
	s.P99 = sorted[(len(sorted)*99)/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Scene Run Report

## Configuration
- **Config:** {{.ConfigPath}}
- **Run Duration:** {{.Duration}}
- **Tick Rate:** {{.TickRate}} tps

## Load
- **Load Time:** {{.LoadTime}}
- **Diagnostics:** {{len .Diagnostics}}
{{- range .Diagnostics}}
  - {{.}}
{{- end}}

## World Contents
- **Entities:** {{.World.EntityCount}}
- **Components:** {{.World.ComponentCount}}
- **Prefabs:** {{.World.PrefabCount}}
- **Systems:** {{.World.SystemCount}}
{{- range .World.KindBreakdown}}
  - {{.Kind}}: {{.Count}}
{{- end}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Run Time:** {{.TotalTime}}
- **Simulated Time:** {{.SimulatedTime}}
- **Update Time (Tick):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Systems
| System | Priority | Enabled | Runs | Avg | Max | Errors |
|---|---|---|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Name}} | {{.Priority}} | {{.Enabled}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} | {{.ErrorCount}} |
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} bytes
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- Total GC Pause: {{ns .MemStatsEnd.PauseTotalNs}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
