package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/plus3/blockblast/cue"
	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/fx"
)

type Report struct {
	// Configuration
	Games        int
	MovesPerGame int
	Workers      int
	Seed         uint64
	Width        int
	Height       int

	// Results
	TotalTime      time.Duration
	Totals         engine.Stats
	CommitTime     Stats
	Cues           []CueCount
	Effects        []fx.KindStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type CueCount struct {
	Action cue.Action
	Plays  int
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
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// add folds one finished game into the report.
func (r *Report) add(g gameResult) {
	r.Totals.Add(g.Stats)
	r.CommitTime.Samples = append(r.CommitTime.Samples, g.Commits...)

	for _, action := range cue.Actions {
		i := slices.IndexFunc(r.Cues, func(c CueCount) bool { return c.Action == action })
		if i < 0 {
			r.Cues = append(r.Cues, CueCount{Action: action})
			i = len(r.Cues) - 1
		}
		r.Cues[i].Plays += g.Cues[action]
	}

	for _, k := range g.Effects {
		i := slices.IndexFunc(r.Effects, func(e fx.KindStats) bool { return e.Name == k.Name })
		if i < 0 {
			r.Effects = append(r.Effects, fx.KindStats{Name: k.Name})
			i = len(r.Effects) - 1
		}
		e := &r.Effects[i]
		if k.Updates > 0 {
			if e.Updates == 0 || k.MinDuration < e.MinDuration {
				e.MinDuration = k.MinDuration
			}
			e.MaxDuration = max(e.MaxDuration, k.MaxDuration)
		}
		e.Started += k.Started
		e.Completed += k.Completed
		e.Active += k.Active
		e.Updates += k.Updates
		e.TotalDuration += k.TotalDuration
		if e.Updates > 0 {
			e.AvgDuration = e.TotalDuration / time.Duration(e.Updates)
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Block Blast Stress Test Report

## Test Configuration
- **Games:** {{comma .Games}}
- **Moves per Game:** {{comma .MovesPerGame}}
- **Workers:** {{.Workers}}
- **Base Seed:** {{.Seed}}
- **Board:** {{.Width}}x{{.Height}}

## Game Results
- **Total Test Time:** {{.TotalTime}}
- **Placements:** {{comma .Totals.Placements}} ({{percent .Totals.AcceptRate}} accepted)
- **Rejections:** {{comma .Totals.Rejections}}
- **Lines Cleared:** {{comma .Totals.Lines}} ({{comma .Totals.CellsCleared}} cells)
- **Deadlocks:** {{comma .Totals.Deadlocks}}
- **Batches Spawned:** {{comma .Totals.Batches}}
- **Boards Seeded:** {{comma .Totals.Seeds}}
- **Commit Time:**
  - **Avg:** {{.CommitTime.Avg}}
  - **P99:** {{.CommitTime.P99}}
  - **Min:** {{.CommitTime.Min}}
  - **Max:** {{.CommitTime.Max}}

## Sound Cues
{{range .Cues}}- {{.Action}}: {{comma .Plays}}
{{end}}
## Effects
{{range .Effects}}- {{.Name}}: {{.Started}} started, {{.Completed}} completed, {{.Updates}} updates, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage
- Heap Alloc:     {{bytes .MemStatsStart.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{bytes .MemStatsStart.TotalAlloc}} (start) -> {{bytes .MemStatsEnd.TotalAlloc}} (end) -> delta: {{bytes (usub64 .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{bytes .MemStatsStart.Sys}} (start) -> {{bytes .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"comma": func(v int) string {
			return humanize.Comma(int64(v))
		},
		"percent": func(v float64) string {
			return humanize.FormatFloat("#.#", v*100) + "%"
		},
		"bytes": humanize.Bytes,
		"usub64": func(a, b uint64) uint64 {
			if b > a {
				return 0
			}
			return a - b
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
