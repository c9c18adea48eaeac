package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/ecs"
)

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

// Record stores the duration of one frame, in seconds.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean of the recorded frame times in milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	return avgFrameTime / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(w *ecs.World, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.Record(deltaTime)

	stats := w.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Components: %d", stats.ComponentCount))
	imgui.Text(fmt.Sprintf("Prefabs: %d", stats.PrefabCount))

	avgFrameTime := ps.AverageFrameTime()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		renderSystemTable(w)
		imgui.TreePop()
	}

	imgui.End()
}

// switchable is implemented by systems embedding ecs.SystemBase.
type switchable interface {
	ecs.Toggleable
	SetEnabled(enabled bool)
}

func renderSystemTable(w *ecs.World) {
	schedulerStats := w.Stats()
	systems := w.Systems()

	imgui.Text(fmt.Sprintf("Ticks: %d  Executions: %d  Errors: %d",
		schedulerStats.TotalTicks, schedulerStats.TotalExecutions, schedulerStats.TotalErrors))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemStatsTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	imgui.TableSetupColumn("Enabled")
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Priority")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Avg / Max")
	imgui.TableSetupColumn("Errors")
	imgui.TableHeadersRow()

	for idx, stats := range schedulerStats.Systems {
		imgui.TableNextRow()

		imgui.TableSetColumnIndex(0)
		if toggle, ok := systems[idx].(switchable); ok {
			enabled := toggle.Enabled()
			if imgui.Checkbox(fmt.Sprintf("##enabled%d", idx), &enabled) {
				toggle.SetEnabled(enabled)
			}
		} else {
			imgui.Text("-")
		}

		imgui.TableSetColumnIndex(1)
		imgui.Text(stats.Name)

		imgui.TableSetColumnIndex(2)
		imgui.Text(fmt.Sprintf("%d", stats.Priority))

		imgui.TableSetColumnIndex(3)
		imgui.Text(fmt.Sprintf("%d", stats.ExecutionCount))

		imgui.TableSetColumnIndex(4)
		imgui.Text(fmt.Sprintf("%s / %s", stats.AvgDuration, stats.MaxDuration))

		imgui.TableSetColumnIndex(5)
		if stats.LastError != nil {
			imgui.Text(fmt.Sprintf("%d (%v)", stats.ErrorCount, stats.LastError))
		} else {
			imgui.Text(fmt.Sprintf("%d", stats.ErrorCount))
		}
	}

	imgui.EndTable()
}
