// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Render functions are carried by ImguiItem components and run by ImguiSystem at the end of each tick.
package debugui

import (
	"context"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/ecs"
)

const ImguiItemKind ecs.Kind = "imgui-item"

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
// ImguiItem is built in code only; it has no configuration fields.
type ImguiItem struct {
	ecs.ComponentBase

	Render func()
}

func (i *ImguiItem) Kind() ecs.Kind {
	return ImguiItemKind
}

func (i *ImguiItem) Deserialize(context.Context, ecs.Data) error {
	return nil
}

func (i *ImguiItem) Serialize() ecs.Data {
	return ecs.Data{}
}

func (i *ImguiItem) Clone() ecs.Component {
	return &ImguiItem{Render: i.Render}
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render functions of all ImguiItem components to the end of the tick
// and records the current input capture state.
type ImguiSystem struct {
	ecs.SystemBase

	InputState ImguiInputState
}

func (i *ImguiSystem) Name() string {
	return "debugui"
}

// Update updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Update(_ float64, w *ecs.World) error {
	io := imgui.CurrentIO()
	i.InputState.WantCaptureMouse = io.WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range ecs.Query[*ImguiItem](w, ImguiItemKind) {
		if item.Render != nil {
			w.Commands().Defer(item.Render)
		}
	}

	return nil
}
