package debugui

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/ecs"
	"github.com/rotisserie/eris"
)

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

// Render shows the serialized fields of every component of the selected entity.
// Edits are written back through the component's Deserialize, one field at a time.
func (ci *ComponentInspector) Render(w *ecs.World, selectedEntityId ecs.EntityId, selected bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !selected {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if ci.selectedEntityId != selectedEntityId {
		ci.lastError = nil
	}
	ci.selectedEntityId = selectedEntityId

	entity, ok := w.Entity(ci.selectedEntityId)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d not found", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", entity.Id()))
	switch entity {
	case w.Camera():
		imgui.Text("Role: camera")
	case w.Scene():
		imgui.Text("Role: scene")
	}
	imgui.Separator()

	for _, component := range entity.Components() {
		if imgui.TreeNodeStr(string(component.Kind())) {
			ci.renderComponent(w, component)
			imgui.TreePop()
		}
	}

	if ci.lastError != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Last edit failed: %v", ci.lastError))
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(w *ecs.World, component ecs.Component) {
	data := component.Serialize()

	for _, name := range slices.Sorted(maps.Keys(data)) {
		value, changed := renderField(name, data[name])
		if !changed {
			continue
		}

		if err := applyField(component, name, value); err != nil {
			ci.lastError = err
			w.Logger().Warn("Inspector edit rejected",
				slog.String("kind", string(component.Kind())),
				slog.String("field", name),
				slog.Any("error", err))
		}
	}
}

// renderField draws an editor for one serialized value and returns the edited value.
func renderField(name string, value any) (any, bool) {
	id := fmt.Sprintf("##%s", name)

	switch v := value.(type) {
	case float32:
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			return v, true
		}

	case float64:
		f := float32(v)
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &f) {
			return float64(f), true
		}

	case int:
		i := int32(v)
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &i) {
			return int(i), true
		}

	case bool:
		if imgui.Checkbox(name, &v) {
			return v, true
		}

	case string:
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			return v, true
		}

	case []float32:
		if len(v) != 3 {
			imgui.Text(fmt.Sprintf("%s: [%d items]", name, len(v)))
			return nil, false
		}

		edited := slices.Clone(v)
		changed := false

		imgui.Text(fmt.Sprintf("%s:", name))
		for idx, axis := range [3]string{"x", "y", "z"} {
			imgui.SameLine()
			imgui.SetNextItemWidth(80)
			if imgui.InputFloat(fmt.Sprintf("%s.%s", id, axis), &edited[idx]) {
				changed = true
			}
		}

		if changed {
			return edited, true
		}

	case ecs.Data:
		if imgui.TreeNodeStr(name) {
			defer imgui.TreePop()

			edited := v.Clone()
			changed := false
			for _, key := range slices.Sorted(maps.Keys(v)) {
				if value, ok := renderField(key, v[key]); ok {
					edited[key] = value
					changed = true
				}
			}

			if changed {
				return edited, true
			}
		}

	case []string:
		imgui.Text(fmt.Sprintf("%s: %v", name, v))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v))
	}

	return nil, false
}

// applyField merges a single edited field into the component.
func applyField(component ecs.Component, name string, value any) error {
	err := component.Deserialize(context.Background(), ecs.Data{name: value})
	return eris.Wrapf(err, "field %q", name)
}
