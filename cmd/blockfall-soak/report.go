package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/driver"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Games    int
	Seed     uint64

	// Results
	Played         int
	MaxScore       int
	Best           int
	Violations     int
	FirstViolation string
	Placements     driver.StatsSnapshot
	Scheduler      *driver.SchedulerStats
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
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
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Soak Test Report

## Configuration
- **Max Duration:** {{.Duration}}
- **Games Requested:** {{.Games}}
- **Seed:** {{.Seed}}

## Play
- **Games Played:** {{.Played}}
- **Pieces Placed:** {{.Placements.Pieces}}
- **Lines Cleared:** {{.Placements.Lines}}
- **Max Score:** {{.MaxScore}}
- **Best Score (store):** {{.Best}}
- **Placements by Kind:**{{range $kind, $n := .Placements.Kinds}}
  - {{$kind}}: {{$n}}{{end}}
- **Placements by Rows Cleared:**{{range $rows, $n := .Placements.Clears}}
  - {{$rows}}: {{$n}}{{end}}

## Invariants
- **Violations:** {{.Violations}}{{if .FirstViolation}}
- **First:** {{.FirstViolation}}{{end}}

## Performance Results
- **Frames:** {{.Scheduler.Frames}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Systems:**{{range .Scheduler.Systems}}
  - {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}{{end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
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
		return fmt.Errorf("parsing report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
