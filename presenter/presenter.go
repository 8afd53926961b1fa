// Package presenter turns engine events into effects and sound cues. Hosts
// attach it as the engine listener and draw whatever the scheduler holds.
package presenter

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/plus3/blockblast/board"
	"github.com/plus3/blockblast/cue"
	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/shape"
	"github.com/plus3/blockblast/tray"
)

// Presenter implements engine.Listener.
type Presenter struct {
	Effects *fx.Scheduler
	Sounds  *cue.Bank

	// Camera is the shake offset in cell units. Hosts add it to every draw.
	Camera fx.Vec

	// OnReject, if set, is called for a rejected drop so the host can slide
	// the piece home.
	OnReject func(h tray.Handle, reason error)

	rng    fx.Rand
	logger *log.Logger

	mu     sync.Mutex
	engine *engine.Engine
	reveal *fx.Reveal
}

// New creates a presenter. Attach must be called once the engine exists.
func New(effects *fx.Scheduler, sounds *cue.Bank, rng fx.Rand, logger *log.Logger) *Presenter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Presenter{
		Effects: effects,
		Sounds:  sounds,
		rng:     rng,
		logger:  logger,
	}
}

// Attach binds the engine the events come from.
func (p *Presenter) Attach(e *engine.Engine) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.engine = e
}

// Reveal returns the running board reveal, if any.
func (p *Presenter) Reveal() *fx.Reveal {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reveal != nil && p.reveal.Done() {
		p.reveal = nil
	}
	return p.reveal
}

func (p *Presenter) OnBoardSeeded(s engine.Seeded) {
	p.mu.Lock()
	e := p.engine
	p.mu.Unlock()
	if e == nil {
		return
	}

	reveal := fx.NewReveal(e.Board(), s)
	p.Effects.Cancel(func(effect fx.Effect) bool {
		_, ok := effect.(*fx.Reveal)
		return ok
	})
	p.Effects.Add(reveal)

	p.mu.Lock()
	p.reveal = reveal
	p.mu.Unlock()

	p.logger.Debug("revealing board", "filled", len(s.Filled), "removed", len(s.Removed))
}

func (p *Presenter) OnCellsOccupied(cells []shape.Cell, sprite board.Sprite) {
	p.Sounds.Play(cue.PiecePlaced)
}

func (p *Presenter) OnLinesCleared(c board.Clear) {
	p.mu.Lock()
	e := p.engine
	p.mu.Unlock()

	width, height := 0, 0
	if e != nil {
		width, height = e.Width(), e.Height()
	}
	for _, line := range c.Lines {
		p.Effects.Add(fx.NewBurst(line, width, height, p.rng))
	}

	p.Effects.Cancel(func(effect fx.Effect) bool {
		_, ok := effect.(*fx.Shake)
		return ok
	})
	p.Camera = fx.Vec{}
	p.Effects.Add(fx.NewShake(&p.Camera, p.rng))
	p.Sounds.Play(cue.ClearLine)

	p.logger.Debug("lines cleared", "lines", len(c.Lines), "cells", len(c.Cells))
}

func (p *Presenter) OnPlacementRejected(h tray.Handle, reason error) {
	p.Sounds.Play(cue.ReturnPiece)
	if p.OnReject != nil {
		p.OnReject(h, reason)
	}
}

func (p *Presenter) OnTrayLow(remaining int) {
	p.logger.Debug("tray running low", "remaining", remaining)
}

func (p *Presenter) OnDeadlock() {
	p.logger.Info("no valid moves left, resetting the board")
}
