package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/fryer/ecs"
)

type PanScore struct {
	Player int
	Score  int
}

type Report struct {
	// Configuration
	Level  string
	Script string
	Frames int
	Delta  time.Duration

	// Results
	Simulated     uint64
	Rebuilds      int
	Mode          string
	Pans          []PanScore
	Sprites       int
	TotalTime     time.Duration
	FrameTime     Stats
	Systems       []ecs.SystemStats
	Storage       *ecs.StorageStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
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
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Fryer Simulation Report

## Run
- **Level:** {{.Level}}
- **Script:** {{.Script}}
- **Frames requested:** {{.Frames}} at {{.Delta}}
- **Frames simulated:** {{.Simulated}}
- **Rebuilds:** {{.Rebuilds}}
- **Final mode:** {{.Mode}}
- **Meshes in last frame:** {{.Sprites}}

## Pans
{{- range .Pans}}
- P{{.Player}}: {{.Score}}
{{- else}}
- none
{{- end}}

## Frame Time
- **Total:** {{.TotalTime}}
- **Avg:** {{.FrameTime.Avg}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}

## Systems (current state)
{{- range .Systems}}
- {{printf "%-20s" .Name}} runs {{printf "%6d" .ExecutionCount}}  avg {{.AvgDuration}}  max {{.MaxDuration}}
{{- end}}

## Storage
- Archetypes: {{.Storage.ArchetypeCount}}
- Entities:   {{.Storage.TotalEntityCount}}
- Singletons: {{.Storage.SingletonCount}}

## Memory Usage (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

func (r *Report) Generate(w io.Writer) error {
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
