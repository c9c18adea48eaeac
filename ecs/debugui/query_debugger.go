package debugui

import (
	"fmt"
	"maps"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/ecs"
)

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{
		selectedKinds: make(map[ecs.Kind]bool),
	}
}

// Render lets the user pick component kinds and lists the entities that have all of them.
func (qd *QueryDebugger) Render(w *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Kinds:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selectedKinds)
	}

	for _, kind := range w.ComponentRegistry().Kinds() {
		selected := qd.selectedKinds[kind]
		if imgui.Checkbox(string(kind), &selected) {
			qd.Toggle(kind, selected)
		}
	}

	imgui.Separator()

	kinds := qd.SelectedKinds()
	if len(kinds) == 0 {
		imgui.Text("No component kinds selected")
		imgui.End()
		return
	}

	matching := qd.Match(w)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entities") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, entity := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", entity.Id()))

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%v", entity.Kinds()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebugger) Toggle(kind ecs.Kind, selected bool) {
	if selected {
		qd.selectedKinds[kind] = true
	} else {
		delete(qd.selectedKinds, kind)
	}
}

// SelectedKinds returns the selected kinds, sorted.
func (qd *QueryDebugger) SelectedKinds() []ecs.Kind {
	return slices.Sorted(maps.Keys(qd.selectedKinds))
}

// Match returns the entities that have every selected kind.
func (qd *QueryDebugger) Match(w *ecs.World) []*ecs.Entity {
	return slices.Collect(ecs.With(w, qd.SelectedKinds()...))
}
