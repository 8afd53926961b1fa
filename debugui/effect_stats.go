package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
)

type EffectStats struct {
	showIdle bool
}

func NewEffectStats() *EffectStats {
	return &EffectStats{showIdle: true}
}

func (es *EffectStats) Render(ctx *Context) {
	if ctx.Effects == nil {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(330, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Effects", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ctx.Effects.GetStats()
	imgui.Text(fmt.Sprintf("Running: %d", stats.ActiveCount))
	imgui.Text(fmt.Sprintf("Started: %d  Completed: %d", stats.TotalStarted, stats.TotalCompleted))
	imgui.Checkbox("Show idle kinds", &es.showIdle)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("EffectTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Effect")
		imgui.TableSetupColumn("Active")
		imgui.TableSetupColumn("Completed")
		imgui.TableSetupColumn("Updates")
		imgui.TableSetupColumn("Avg Update")
		imgui.TableHeadersRow()

		for _, kind := range stats.Kinds {
			if kind.Active == 0 && !es.showIdle {
				continue
			}
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(kind.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", kind.Active))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", kind.Completed))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", kind.Updates))
			imgui.TableNextColumn()
			imgui.Text(kind.AvgDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
