package debugui

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/ecs"
)

type KindInfo struct {
	Kind        ecs.Kind
	EntityCount int
	Registered  bool
}

type KindViewerCache struct {
	kinds         []KindInfo
	sortColumn    int
	sortAscending bool
}

func NewKindViewer() *KindViewer {
	return &KindViewer{
		cache: &KindViewerCache{
			sortColumn:    1,
			sortAscending: false,
		},
	}
}

// Render lists component kinds with their entity counts. It returns the kind clicked
// this frame, or nil.
func (kv *KindViewer) Render(w *ecs.World) *ecs.Kind {
	if !imgui.BeginV("Kind Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	kv.cache.kinds = collectKinds(w)
	sortKinds(kv.cache.kinds, kv.cache.sortColumn, kv.cache.sortAscending)

	maxEntityCount := 0
	for _, info := range kv.cache.kinds {
		maxEntityCount = max(maxEntityCount, info.EntityCount)
	}

	var clickedKind *ecs.Kind

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("KindTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableSetupColumn("Registered")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			kv.cache.sortColumn = int(spec.ColumnIndex())
			kv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortKinds(kv.cache.kinds, kv.cache.sortColumn, kv.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, info := range kv.cache.kinds {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := kv.selectedKind != nil && *kv.selectedKind == info.Kind
			if imgui.SelectableBoolV(string(info.Kind), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				kind := info.Kind
				clickedKind = &kind
				kv.selectedKind = &kind
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(info.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			if info.Registered {
				imgui.Text("yes")
			} else {
				imgui.Text("no")
			}
		}

		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Prefabs") {
		for _, name := range w.Prefabs() {
			defs, _ := w.Prefab(name)
			kinds := slices.Sorted(maps.Keys(defs))
			imgui.BulletText(fmt.Sprintf("%s: %s", name, joinKinds(kinds, ", ")))
		}
		imgui.TreePop()
	}

	imgui.End()
	return clickedKind
}

// collectKinds merges the kinds in use with the kinds known to the registry.
func collectKinds(w *ecs.World) []KindInfo {
	registered := w.ComponentRegistry().Kinds()

	var out []KindInfo
	for _, stats := range w.CollectStats().KindBreakdown {
		out = append(out, KindInfo{
			Kind:        stats.Kind,
			EntityCount: stats.Count,
			Registered:  slices.Contains(registered, stats.Kind),
		})
	}

	for _, kind := range registered {
		if !slices.ContainsFunc(out, func(info KindInfo) bool { return info.Kind == kind }) {
			out = append(out, KindInfo{Kind: kind, Registered: true})
		}
	}

	return out
}

func sortKinds(kinds []KindInfo, column int, ascending bool) {
	slices.SortStableFunc(kinds, func(a, b KindInfo) int {
		var c int

		switch column {
		case 0:
			c = strings.Compare(string(a.Kind), string(b.Kind))
		case 2:
			c = cmp.Compare(boolRank(a.Registered), boolRank(b.Registered))
		default:
			c = cmp.Compare(a.EntityCount, b.EntityCount)
		}

		// ties are listed by name
		c = cmp.Or(c, strings.Compare(string(a.Kind), string(b.Kind)))

		if !ascending {
			return -c
		}
		return c
	})
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
