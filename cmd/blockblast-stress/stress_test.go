package main

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/blockblast/config"
	"github.com/plus3/blockblast/cue"
	"github.com/plus3/blockblast/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	loader, err := config.Load("", log.New(io.Discard))
	require.NoError(t, err)

	cfg := loader.Config()
	cfg.Seed.Value = 7
	cfg.Stress.Games = 4
	cfg.Stress.MovesPerGame = 60
	cfg.Stress.Workers = 2
	return cfg
}

func TestPlayGameIsReproducible(t *testing.T) {
	cfg := testConfig(t)
	logger := log.New(io.Discard)

	a, err := playGame(cfg, 42, 80, logger)
	require.NoError(t, err)
	b, err := playGame(cfg, 42, 80, logger)
	require.NoError(t, err)

	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, a.Cues, b.Cues)
	assert.Len(t, a.Commits, 80)
	assert.Equal(t, 80, a.Stats.Placements+a.Stats.Rejections)
}

func TestPlayGameDrivesPresenter(t *testing.T) {
	cfg := testConfig(t)

	g, err := playGame(cfg, 3, 100, log.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, g.Stats.Placements, g.Cues[cue.PiecePlaced])
	assert.Equal(t, g.Stats.Rejections, g.Cues[cue.ReturnPiece])
	assert.LessOrEqual(t, g.Cues[cue.ClearLine], g.Stats.Lines)
	assert.Positive(t, g.Stats.Placements)
	assert.Positive(t, g.Stats.Rejections)

	names := make([]string, 0, len(g.Effects))
	for _, k := range g.Effects {
		names = append(names, k.Name)
	}
	assert.Contains(t, names, "Reveal")
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)

	report, err := run(context.Background(), cfg, log.New(io.Discard), true)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Games)
	assert.Equal(t, uint64(7), report.Seed)
	assert.Equal(t, 4*60, report.Totals.Placements+report.Totals.Rejections)
	assert.Len(t, report.CommitTime.Samples, 4*60)
	assert.LessOrEqual(t, report.CommitTime.Min, report.CommitTime.P99)
	assert.LessOrEqual(t, report.CommitTime.P99, report.CommitTime.Max)
	assert.Len(t, report.Cues, len(cue.Actions))

	again, err := run(context.Background(), cfg, log.New(io.Discard), false)
	require.NoError(t, err)
	assert.Equal(t, report.Totals, again.Totals)
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := run(ctx, cfg, log.New(io.Discard), false)
	require.NoError(t, err)
	assert.LessOrEqual(t, report.Games, cfg.Stress.Games)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2, 10}}
	s.Finalize()

	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(10), s.Max)
	assert.Equal(t, time.Duration(4), s.Avg)
	assert.Equal(t, time.Duration(3), s.P99)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Max)
}

func TestGenerate(t *testing.T) {
	r := &Report{
		Games:        1200,
		MovesPerGame: 10,
		Workers:      2,
		Width:        10,
		Height:       10,
		Cues:         []CueCount{{Action: cue.ClearLine, Plays: 1500}},
	}
	r.Totals.Placements = 3
	r.Totals.Rejections = 1

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Games:** 1,200")
	assert.Contains(t, out, "(75.0% accepted)")
	assert.Contains(t, out, "- ClearLine: 1,500")
	assert.NotContains(t, out, "GC Pause")
}

func TestAddMergesEffectTimings(t *testing.T) {
	r := &Report{}
	r.add(gameResult{Effects: []fx.KindStats{{Name: "Shake", Started: 1, Active: 1}}})
	r.add(gameResult{Effects: []fx.KindStats{{Name: "Shake", Started: 2, Completed: 2, Updates: 8, MinDuration: 5, MaxDuration: 9, TotalDuration: 56}}})
	r.add(gameResult{Effects: []fx.KindStats{{Name: "Shake", Started: 1, Completed: 1, Updates: 2, MinDuration: 3, MaxDuration: 4, TotalDuration: 7}}})

	require.Len(t, r.Effects, 1)
	k := r.Effects[0]
	assert.Equal(t, int64(4), k.Started)
	assert.Equal(t, int64(3), k.Completed)
	assert.Equal(t, int64(10), k.Updates)
	assert.Equal(t, time.Duration(3), k.MinDuration)
	assert.Equal(t, time.Duration(9), k.MaxDuration)
	assert.Equal(t, time.Duration(6), k.AvgDuration)
}
