package debugui

import (
	"time"

	"github.com/plus3/scenery/ecs"
)

// SpawnDebugUI creates an entity whose ImguiItem renders the debug windows for w.
// Selecting an entity in the browser shows it in the inspector; selecting a kind in
// the kind viewer filters the browser.
func SpawnDebugUI(w *ecs.World) *ecs.Entity {
	browser := NewEntityBrowser(100)
	inspector := NewComponentInspector()
	kinds := NewKindViewer()
	perf := NewPerformanceStats(120)
	query := NewQueryDebugger()
	timer := NewFrameTimer()

	entity := w.CreateEntity()
	entity.Add(&ImguiItem{Render: func() {
		browser.Render(w)
		id, selected := browser.SelectedEntity()
		inspector.Render(w, id, selected)
		if kind := kinds.Render(w); kind != nil {
			browser.filterKind = kind
		}
		perf.Render(w, timer.GetDeltaTime())
		query.Render(w)
	}})

	return entity
}

// FrameTimer measures wall time between rendered frames.
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
