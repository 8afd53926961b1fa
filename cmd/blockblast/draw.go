package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockblast/board"
	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/presenter"
	"github.com/plus3/blockblast/shape"
)

var (
	backgroundColor = color.RGBA{245, 245, 240, 255}
	emptyColor      = color.RGBA{230, 230, 225, 255}
	gridLineColor   = color.RGBA{210, 210, 205, 255}
	trayColor       = color.RGBA{235, 235, 230, 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	shake := g.presenter.Camera.Scale(g.layout.Square)

	grid := g.engine.Board()
	if reveal := g.presenter.Reveal(); reveal != nil {
		grid = reveal.View()
	}
	g.drawBoard(screen, grid, shake)
	g.drawGhost(screen, shake)
	g.drawTray(screen)
	g.drawBursts(screen, shake)

	if g.held != nil {
		if p, ok := g.engine.Piece(g.held.handle); ok {
			drawPiece(screen, p.Shape, p.Sprite, g.held.pos, g.layout.Square, 255)
		}
	}

	stats := g.engine.Stats()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("lines %d  placed %d  resets %d  fps %.0f",
		stats.Lines, stats.Placements, stats.Deadlocks, ebiten.ActualFPS()), margin, 4)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) drawBoard(screen *ebiten.Image, grid *board.Grid, shake fx.Vec) {
	sq := float32(g.layout.Square)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			c := shape.Cell{X: x, Y: y}
			center := g.layout.CellCenter(c).Add(shake)
			left, top := float32(center.X)-sq/2, float32(center.Y)-sq/2

			fill := color.Color(emptyColor)
			if sprite, ok := grid.At(c); ok {
				fill = fx.SpriteColor(sprite)
			}
			vector.DrawFilledRect(screen, left, top, sq, sq, fill, false)
			vector.StrokeRect(screen, left, top, sq, sq, 1, gridLineColor, false)
		}
	}
}

// drawGhost previews where the held piece would land.
func (g *Game) drawGhost(screen *ebiten.Image, shake fx.Vec) {
	if g.held == nil {
		return
	}
	p, ok := g.engine.Piece(g.held.handle)
	if !ok {
		return
	}
	anchor := g.layout.AnchorAt(g.held.pos)
	if !g.engine.ValidatePlacement(p.Shape, anchor) {
		return
	}
	drawPiece(screen, p.Shape, p.Sprite, g.layout.CellCenter(anchor).Add(shake), g.layout.Square, 90)
}

func (g *Game) drawTray(screen *ebiten.Image) {
	size := g.layout.BoardSize()
	vector.DrawFilledRect(screen,
		float32(g.layout.Origin.X), float32(g.layout.TrayTop),
		float32(size.X), float32(g.layout.TrayHeight), trayColor, false)

	entries := g.engine.Tray()
	scale := g.layout.Square * presenter.TrayScale
	for i, entry := range entries {
		if g.held != nil && g.held.handle == entry.Handle {
			continue
		}
		origin := g.layout.SlotOrigin(i, len(entries), entry.Piece.Shape)
		if pos, ok := g.returning[entry.Handle]; ok {
			origin = *pos
		}
		drawPiece(screen, entry.Piece.Shape, entry.Piece.Sprite, origin, scale, 255)
	}
}

func (g *Game) drawBursts(screen *ebiten.Image, shake fx.Vec) {
	radius := float32(g.layout.Square / 10)
	for _, effect := range g.effects.Active() {
		burst, ok := effect.(*fx.Burst)
		if !ok {
			continue
		}
		alpha := uint8(burst.Alpha() * 255)
		for _, p := range burst.Particles {
			pos := g.layout.ToScreen(p.Pos).Add(shake)
			c := color.NRGBA{p.Color.R, p.Color.G, p.Color.B, alpha}
			vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), radius, c, true)
		}
	}
}

// drawPiece draws s with its origin square centred on origin.
func drawPiece(screen *ebiten.Image, s shape.Shape, sprite board.Sprite, origin fx.Vec, square float64, alpha uint8) {
	base := fx.SpriteColor(sprite)
	fill := color.NRGBA{base.R, base.G, base.B, alpha}
	sq := float32(square)

	for _, o := range s.Offsets {
		center := origin.Add(fx.Vec{X: float64(o.X), Y: float64(o.Y)}.Scale(square))
		left, top := float32(center.X)-sq/2, float32(center.Y)-sq/2
		vector.DrawFilledRect(screen, left, top, sq, sq, fill, false)
		vector.StrokeRect(screen, left, top, sq, sq, 1, gridLineColor, false)
	}
}
