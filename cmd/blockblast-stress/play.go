package main

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/blockblast/config"
	"github.com/plus3/blockblast/cue"
	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/presenter"
	"github.com/plus3/blockblast/shape"
)

const (
	// Every wildEvery-th move drops the piece at a random anchor so
	// rejections get exercised too.
	wildEvery = 5
	frameTime = 1.0 / 60
)

type gameResult struct {
	Stats   engine.Stats
	Commits []time.Duration
	Cues    map[cue.Action]int
	Effects []fx.KindStats
}

// playGame runs one headless session with the presenter attached, so
// effects and cues run exactly as they would on screen.
func playGame(cfg config.Config, seed uint64, moves int, logger *log.Logger) (gameResult, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	counter := &cue.Counter{}
	bank := cue.NewBank(counter, rng, logger)
	for _, action := range cue.Actions {
		bank.Register(action, cue.Clip{Name: string(action)})
	}

	effects := fx.NewScheduler()
	p := presenter.New(effects, bank, rng, logger)

	opts := cfg.EngineOptions(rng)
	opts.Listener = p
	opts.Logger = logger
	e, err := engine.New(opts)
	if err != nil {
		return gameResult{}, err
	}
	p.Attach(e)

	e.SeedStartingBoard(rng, engine.SeedPolicy{})
	e.SpawnBatch(opts.BatchSize, rng)

	result := gameResult{
		Commits: make([]time.Duration, 0, moves),
		Cues:    make(map[cue.Action]int, len(cue.Actions)),
	}

	for i := range moves {
		entries := e.Tray()
		if len(entries) == 0 {
			e.SpawnBatch(opts.BatchSize, rng)
			continue
		}

		entry := entries[rng.IntN(len(entries))]
		anchor := shape.Cell{X: rng.IntN(e.Width()), Y: rng.IntN(e.Height())}
		if i%wildEvery != 0 {
			if found, ok := findAnchor(e, entry.Piece.Shape, rng); ok {
				anchor = found
			}
		}

		start := time.Now()
		e.CommitPlacement(entry.Handle, anchor)
		result.Commits = append(result.Commits, time.Since(start))

		effects.Once(frameTime)
	}

	result.Stats = e.Stats()
	for _, action := range cue.Actions {
		result.Cues[action] = counter.Plays(string(action))
	}
	result.Effects = effects.GetStats().Kinds

	return result, nil
}

// findAnchor scans the board from a random cell for a valid anchor of s.
func findAnchor(e *engine.Engine, s shape.Shape, rng *rand.Rand) (shape.Cell, bool) {
	w, h := e.Width(), e.Height()
	total := w * h
	start := rng.IntN(total)
	for k := range total {
		i := (start + k) % total
		c := shape.Cell{X: i % w, Y: i / w}
		if e.ValidatePlacement(s, c) {
			return c, true
		}
	}
	return shape.Cell{}, false
}
