package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockblast/board"
	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/shape"
	"github.com/plus3/blockblast/tray"
)

const previewCellSize = 12

type TrayBrowser struct {
	filterText    string
	addShapeName  string
	addError      string
	selected      tray.Handle
	entriesOnPage int
	currentPage   int
}

func NewTrayBrowser(entriesOnPage int) *TrayBrowser {
	return &TrayBrowser{entriesOnPage: max(1, entriesOnPage)}
}

// filterTray keeps the entries whose shape name contains filter, ignoring
// case.
func filterTray(entries []engine.TrayEntry, filter string) []engine.TrayEntry {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return entries
	}

	var out []engine.TrayEntry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Piece.Shape.Name), filter) {
			out = append(out, entry)
		}
	}
	return out
}

// page returns the slice bounds of page p.
func page(total, size, p int) (start, end int) {
	start = min(p*size, total)
	end = min(start+size, total)
	return start, end
}

func (tb *TrayBrowser) Render(ctx *Context) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Tray Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	e := ctx.Engine

	imgui.InputTextWithHint("##search", "Filter shapes...", &tb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		tb.filterText = ""
	}

	if imgui.Button("Spawn Batch") {
		opts := e.Options()
		e.SpawnBatch(opts.BatchSize, opts.Rand)
	}
	imgui.SameLine()
	imgui.SetNextItemWidth(120)
	imgui.InputTextWithHint("##shape", "L/2", &tb.addShapeName, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Add Piece") {
		if s, ok := e.Options().Catalog.Lookup(strings.TrimSpace(tb.addShapeName)); ok {
			e.AddPiece(s, 0)
			tb.addError = ""
		} else {
			tb.addError = fmt.Sprintf("unknown shape %q", tb.addShapeName)
		}
	}
	if tb.addError != "" {
		imgui.TextColored(imgui.NewVec4(1.0, 0.4, 0.4, 1.0), tb.addError)
	}

	entries := filterTray(e.Tray(), tb.filterText)
	totalPages := max(1, (len(entries)+tb.entriesOnPage-1)/tb.entriesOnPage)
	tb.currentPage = min(tb.currentPage, totalPages-1)

	var selected *engine.TrayEntry
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("TrayTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Handle")
		imgui.TableSetupColumn("Shape")
		imgui.TableSetupColumn("Sprite")
		imgui.TableSetupColumn("Squares")
		imgui.TableHeadersRow()

		start, end := page(len(entries), tb.entriesOnPage, tb.currentPage)
		for i := start; i < end; i++ {
			entry := entries[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := tb.selected == entry.Handle
			if imgui.SelectableBoolV(entry.Handle.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				tb.selected = entry.Handle
			}
			if isSelected {
				selected = &entries[i]
			}

			imgui.TableNextColumn()
			imgui.Text(entry.Piece.Shape.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entry.Piece.Sprite))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entry.Piece.Shape.Len()))
		}

		imgui.EndTable()
	}

	if len(entries) > tb.entriesOnPage {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d pieces)", tb.currentPage+1, totalPages, len(entries)))
		imgui.SameLine()
		if imgui.Button("Prev") && tb.currentPage > 0 {
			tb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && tb.currentPage < totalPages-1 {
			tb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d pieces", len(entries)))
	}

	if selected != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("%s  %s", selected.Piece.Shape.Name, selected.Piece.Shape))
		drawPreview(selected.Piece.Shape, selected.Piece.Sprite)
	}

	imgui.End()
}

func drawPreview(s shape.Shape, sprite board.Sprite) {
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	fill := imgui.ColorU32Vec4(vec4(fx.SpriteColor(sprite)))

	lo, _ := s.Bounds()
	for _, o := range s.Offsets {
		x := origin.X + float32((o.X-lo.X)*previewCellSize)
		y := origin.Y + float32((o.Y-lo.Y)*previewCellSize)
		drawList.AddRectFilled(imgui.NewVec2(x, y), imgui.NewVec2(x+previewCellSize-1, y+previewCellSize-1), fill)
	}
	imgui.Dummy(imgui.NewVec2(float32(s.Width()*previewCellSize), float32(s.Height()*previewCellSize)))
}
