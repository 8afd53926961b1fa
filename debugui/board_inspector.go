package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/shape"
)

const inspectorCellSize = 18

type BoardInspector struct {
	hovered    shape.Cell
	hasHovered bool
}

func NewBoardInspector() *BoardInspector {
	return &BoardInspector{}
}

func (bi *BoardInspector) Render(ctx *Context) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Board Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	e := ctx.Engine
	b := e.Board()

	imgui.Text(fmt.Sprintf("Session: %s", e.SessionID()))
	imgui.Text(fmt.Sprintf("State: %s", e.State()))
	imgui.Text(fmt.Sprintf("Size: %d x %d", b.Width(), b.Height()))
	imgui.Text(fmt.Sprintf("Occupied: %d / %d", b.Count(), b.Width()*b.Height()))

	if imgui.Button("Check Deadlock") {
		e.CheckDeadlock()
	}
	imgui.SameLine()
	if imgui.Button("Reset Board") {
		e.HandleDeadlock()
	}

	imgui.Separator()

	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	mouse := imgui.CurrentIO().MousePos()
	empty := imgui.ColorU32Vec4(imgui.NewVec4(0.15, 0.15, 0.18, 1))
	outline := imgui.ColorU32Vec4(imgui.NewVec4(0.3, 0.3, 0.35, 1))

	bi.hasHovered = false
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := shape.Cell{X: x, Y: y}
			lo := imgui.NewVec2(origin.X+float32(x*inspectorCellSize), origin.Y+float32(y*inspectorCellSize))
			hi := imgui.NewVec2(lo.X+inspectorCellSize-1, lo.Y+inspectorCellSize-1)

			fill := empty
			if sprite, ok := b.At(c); ok {
				fill = imgui.ColorU32Vec4(vec4(fx.SpriteColor(sprite)))
			}
			drawList.AddRectFilled(lo, hi, fill)

			if mouse.X >= lo.X && mouse.X < hi.X && mouse.Y >= lo.Y && mouse.Y < hi.Y {
				bi.hovered, bi.hasHovered = c, true
				drawList.AddRect(lo, hi, outline)
			}
		}
	}
	imgui.Dummy(imgui.NewVec2(float32(b.Width()*inspectorCellSize), float32(b.Height()*inspectorCellSize)))

	if bi.hasHovered {
		if sprite, ok := b.At(bi.hovered); ok {
			imgui.Text(fmt.Sprintf("Cell %s: sprite %d", bi.hovered, sprite))
		} else {
			imgui.Text(fmt.Sprintf("Cell %s: empty", bi.hovered))
		}
	} else {
		imgui.Text("Hover a cell")
	}

	if imgui.TreeNodeStr("Lines") {
		lines := b.Lines()
		if len(lines.Lines) == 0 {
			imgui.Text("No full rows or columns")
		}
		for _, l := range lines.Lines {
			imgui.BulletText(fmt.Sprintf("%s %d", l.Axis, l.Index))
		}
		imgui.TreePop()
	}

	imgui.End()
}
