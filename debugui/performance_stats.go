package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
)

// history is a fixed-size ring of samples.
type history struct {
	samples []float32
	next    int
	filled  int
}

func newHistory(n int) *history {
	return &history{samples: make([]float32, max(1, n))}
}

func (h *history) push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average is taken over the samples pushed so far.
func (h *history) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for i := range h.filled {
		sum += h.samples[i]
	}
	return sum / float32(h.filled)
}

type PerformanceStats struct {
	frames *history
	lines  *history

	lastLines int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		frames: newHistory(historyFrames),
		lines:  newHistory(historyFrames),
	}
}

func (ps *PerformanceStats) Render(ctx *Context) {
	ps.frames.push(ctx.DeltaTime * 1000.0)

	st := ctx.Engine.Stats()
	ps.lines.push(float32(st.Lines - ps.lastLines))
	ps.lastLines = st.Lines

	imgui.SetNextWindowPosV(imgui.NewVec2(330, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avgFrameTime := ps.frames.average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Placements: %d", st.Placements))
	imgui.Text(fmt.Sprintf("Rejections: %d (%.0f%% accepted)", st.Rejections, st.AcceptRate()*100))
	imgui.Text(fmt.Sprintf("Lines: %d  Cells cleared: %d", st.Lines, st.CellsCleared))
	imgui.Text(fmt.Sprintf("Deadlocks: %d  Batches: %d  Seeds: %d", st.Deadlocks, st.Batches, st.Seeds))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frames.samples[0], int32(len(ps.frames.samples)))

	if imgui.TreeNodeStr("Line Clears") {
		if implot.BeginPlotV("Lines per frame", imgui.NewVec2(-1, 150), 0) {
			implot.SetupAxesV("Frame", "Lines", 0, implot.AxisFlagsAutoFit)
			implot.PlotLineFloatPtrInt("Lines", &ps.lines.samples[0], int32(len(ps.lines.samples)))
			implot.EndPlot()
		}
		imgui.TreePop()
	}

	imgui.End()
}
