package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
)

// Playback pauses, steps and scales the time fed to the world. A paused world still
// ticks with a zero delta so the debug windows keep rendering.
type Playback struct {
	Paused    bool
	TimeScale float32

	stepRequested bool
	timeToAdvance float64
	timeAdvanced  float64
}

func NewPlayback() *Playback {
	return &Playback{TimeScale: 1}
}

// Step advances a paused world by a single tick.
func (p *Playback) Step() {
	p.stepRequested = true
}

// AdvanceBy runs a paused world for the given amount of simulated seconds.
func (p *Playback) AdvanceBy(seconds float64) {
	p.timeToAdvance = seconds
	p.timeAdvanced = 0
}

func (p *Playback) Resume() {
	p.Paused = false
	p.stepRequested = false
	p.timeToAdvance = 0
	p.timeAdvanced = 0
}

// Delta returns the delta to pass to World.Update for a frame of dt seconds.
func (p *Playback) Delta(dt float64) float64 {
	if !p.Paused {
		return dt * float64(max(p.TimeScale, 0))
	}

	if p.stepRequested {
		p.stepRequested = false
		return dt
	}

	if p.timeToAdvance > 0 {
		dt = min(dt, p.timeToAdvance-p.timeAdvanced)
		p.timeAdvanced += dt
		if p.timeAdvanced >= p.timeToAdvance {
			p.timeToAdvance = 0
			p.timeAdvanced = 0
		}
		return dt
	}

	return 0
}

func (p *Playback) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(680, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(250, 180), imgui.CondOnce)

	if !imgui.BeginV("Playback", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if p.Paused {
		pushButtonColors(imgui.NewVec4(0.2, 0.7, 0.2, 1.0), imgui.NewVec4(0.3, 0.8, 0.3, 1.0), imgui.NewVec4(0.1, 0.6, 0.1, 1.0))
		if imgui.Button("Resume") {
			p.Resume()
		}
		popButtonColors()

		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")

		if p.timeToAdvance > 0 {
			progress := float32(p.timeAdvanced / p.timeToAdvance)
			imgui.ProgressBarV(progress, imgui.NewVec2(-1, 0), fmt.Sprintf("%.1f/%.1fs", p.timeAdvanced, p.timeToAdvance))
		}

		imgui.Separator()
		imgui.Text("Step Forward:")

		if imgui.Button("1 Tick") {
			p.Step()
		}

		imgui.SameLine()
		if imgui.Button("1 Second") {
			p.AdvanceBy(1)
		}

		imgui.SameLine()
		if imgui.Button("5 Seconds") {
			p.AdvanceBy(5)
		}
	} else {
		pushButtonColors(imgui.NewVec4(0.7, 0.2, 0.2, 1.0), imgui.NewVec4(0.8, 0.3, 0.3, 1.0), imgui.NewVec4(0.6, 0.1, 0.1, 1.0))
		if imgui.Button("Pause") {
			p.Paused = true
		}
		popButtonColors()

		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	}

	imgui.Separator()
	imgui.SetNextItemWidth(100)
	imgui.InputFloat("Time Scale", &p.TimeScale)

	imgui.End()
}

func pushButtonColors(normal, hovered, active imgui.Vec4) {
	imgui.PushStyleColorVec4(imgui.ColButton, normal)
	imgui.PushStyleColorVec4(imgui.ColButtonHovered, hovered)
	imgui.PushStyleColorVec4(imgui.ColButtonActive, active)
}

func popButtonColors() {
	imgui.PopStyleColor()
	imgui.PopStyleColor()
	imgui.PopStyleColor()
}
