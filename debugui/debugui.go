// Package debugui draws Dear ImGui inspector windows for a running session:
// the board, the tray, running effects and frame timings.
package debugui

import (
	"image/color"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/fx"
)

// Context is what panels can see and poke at during a frame.
type Context struct {
	DeltaTime float32
	Engine    *engine.Engine
	Effects   *fx.Scheduler
}

// Panel renders one ImGui window.
type Panel interface {
	Render(ctx *Context)
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Hosts check it before handling their own input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// UI renders its panels between the backend's BeginFrame and EndFrame.
type UI struct {
	Panels []Panel
	Input  InputState
	Hidden bool
}

// New builds the standard set of panels.
func New(historyFrames, trayPageSize int) *UI {
	return &UI{
		Panels: []Panel{
			NewBoardInspector(),
			NewTrayBrowser(trayPageSize),
			NewEffectStats(),
			NewPerformanceStats(historyFrames),
		},
	}
}

// Render updates the input state and draws every panel unless hidden.
func (u *UI) Render(ctx *Context) {
	io := imgui.CurrentIO()
	u.Input.WantCaptureMouse = !u.Hidden && io.WantCaptureMouse()
	u.Input.WantCaptureKeyboard = !u.Hidden && io.WantCaptureKeyboard()

	if u.Hidden {
		return
	}
	for _, p := range u.Panels {
		p.Render(ctx)
	}
}

func vec4(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
