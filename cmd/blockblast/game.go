package main

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockblast/config"
	"github.com/plus3/blockblast/cue"
	"github.com/plus3/blockblast/debugui"
	debugui_ebiten "github.com/plus3/blockblast/debugui/ebiten"
	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/presenter"
	"github.com/plus3/blockblast/tray"
)

const margin = 24

// drag is a piece held by the mouse. pos is the screen position of its
// origin square.
type drag struct {
	handle tray.Handle
	grab   fx.Vec
	pos    fx.Vec
}

type Game struct {
	cfg    config.Config
	logger *log.Logger
	rng    *rand.Rand

	engine    *engine.Engine
	effects   *fx.Scheduler
	sounds    *cue.Bank
	presenter *presenter.Presenter
	layout    presenter.Layout

	ui    *debugui.UI
	imgui *debugui_ebiten.ImguiBackend
	timer *debugui.FrameTimer

	held      *drag
	dropped   fx.Vec
	returning map[tray.Handle]*fx.Vec
}

// NewGame starts a seeded session. backend may be nil, which disables the
// inspector.
func NewGame(cfg config.Config, player cue.Player, backend *debugui_ebiten.ImguiBackend, logger *log.Logger) (*Game, error) {
	rng := cfg.NewRand()
	effects := fx.NewScheduler()
	sounds := cue.NewBank(player, rng, logger)

	g := &Game{
		cfg:       cfg,
		logger:    logger,
		rng:       rng,
		effects:   effects,
		sounds:    sounds,
		presenter: presenter.New(effects, sounds, rng, logger),
		layout:    presenter.NewLayout(cfg.Grid.Width, cfg.Grid.Height, cfg.Tray.BatchSize, cfg.Grid.SquareSize, margin),
		imgui:     backend,
		timer:     debugui.NewFrameTimer(),
		returning: make(map[tray.Handle]*fx.Vec),
	}
	if backend != nil {
		g.ui = debugui.New(240, 12)
	}
	g.presenter.OnReject = g.slideBack

	opts := cfg.EngineOptions(rng)
	opts.Listener = g.presenter
	opts.Logger = logger
	e, err := engine.New(opts)
	if err != nil {
		return nil, err
	}
	g.engine = e
	g.presenter.Attach(e)

	g.start()
	g.logger.Info("game started", "session", e.SessionID(), "board", cfg.Grid.Width, "batch", cfg.Tray.BatchSize)

	return g, nil
}

// start seeds a fresh board and deals the first batch.
func (g *Game) start() {
	g.engine.SeedStartingBoard(g.rng, engine.SeedPolicy{})
	g.engine.SpawnBatch(g.cfg.Tray.BatchSize, g.rng)
}

func (g *Game) restart() {
	g.held = nil
	g.effects.Cancel(func(e fx.Effect) bool {
		_, ok := e.(*fx.Tween)
		return ok
	})
	clear(g.returning)

	if err := g.engine.Initialize(g.cfg.Grid.Width, g.cfg.Grid.Height); err != nil {
		g.logger.Error("restart failed", "err", err)
		return
	}
	g.start()
	g.logger.Info("board reset by player")
}

func (g *Game) Update() error {
	if g.imgui != nil {
		g.imgui.BeginFrame()
	}

	dt := g.timer.GetDeltaTime()

	keyboard := g.ui == nil || !g.ui.Input.WantCaptureKeyboard
	if keyboard {
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.restart()
		}
		if g.ui != nil && inpututil.IsKeyJustPressed(ebiten.KeyD) {
			g.ui.Hidden = !g.ui.Hidden
		}
	}

	if g.ui == nil || !g.ui.Input.WantCaptureMouse {
		g.handleMouse()
	}

	g.effects.Once(float64(dt))

	if g.imgui != nil {
		g.ui.Render(&debugui.Context{
			DeltaTime: dt,
			Engine:    g.engine,
			Effects:   g.effects,
		})
		g.imgui.EndFrame()
	}

	return nil
}

func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	cursor := fx.Vec{X: float64(x), Y: float64(y)}

	if g.held == nil && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pickUp(cursor)
	}
	if g.held == nil {
		return
	}

	g.held.pos = cursor.Sub(g.held.grab)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		held := g.held
		g.held = nil
		g.dropped = held.pos
		g.engine.CommitPlacement(held.handle, g.layout.AnchorAt(held.pos))
	}
}

func (g *Game) pickUp(cursor fx.Vec) {
	entries := g.engine.Tray()
	i, ok := g.layout.SlotAt(cursor, len(entries))
	if !ok {
		return
	}
	entry := entries[i]
	if _, busy := g.returning[entry.Handle]; busy {
		return
	}

	origin := g.layout.SlotOrigin(i, len(entries), entry.Piece.Shape)
	g.held = &drag{
		handle: entry.Handle,
		grab:   cursor.Sub(origin).Scale(1 / presenter.TrayScale),
	}
	g.held.pos = cursor.Sub(g.held.grab)
}

// slideBack tweens a rejected piece from where it was dropped back to its
// slot.
func (g *Game) slideBack(h tray.Handle, reason error) {
	entries := g.engine.Tray()
	for i, entry := range entries {
		if entry.Handle != h {
			continue
		}
		pos := &fx.Vec{X: g.dropped.X, Y: g.dropped.Y}
		g.returning[h] = pos
		g.effects.Add(fx.NewReturn(pos, g.layout.SlotOrigin(i, len(entries), entry.Piece.Shape), func() {
			delete(g.returning, h)
		}))
		g.logger.Debug("returning piece", "piece", h, "reason", reason)
		return
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
