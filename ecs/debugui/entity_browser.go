package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Kinds          []ecs.Kind
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastSignature [2]int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
			lastSignature: [2]int{-1, -1},
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(w *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(w)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterKind = nil
	}

	if eb.filterKind != nil {
		imgui.Text(fmt.Sprintf("Kind: %s", *eb.filterKind))
	}

	filteredEntities := filterEntities(eb.cache.entities, eb.filterText, eb.filterKind)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := min(eb.currentPage*eb.maxEntitiesPerPage, len(filteredEntities))
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for _, entity := range filteredEntities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
				eb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(joinKinds(entity.Kinds, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// rebuildCacheIfNeeded rebuilds the entity list when the entity or component count changes.
func (eb *EntityBrowser) rebuildCacheIfNeeded(w *ecs.World) {
	stats := w.CollectStats()
	signature := [2]int{stats.EntityCount, stats.ComponentCount}

	if eb.cache.lastSignature != signature {
		eb.cache.entities = collectEntities(w)
		eb.cache.lastSignature = signature
		sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
	}

	if eb.hasSelection {
		if _, ok := w.Entity(eb.selectedEntityId); !ok {
			eb.hasSelection = false
		}
	}
}

// SelectedEntity returns the entity picked in the table, if any.
func (eb *EntityBrowser) SelectedEntity() (ecs.EntityId, bool) {
	return eb.selectedEntityId, eb.hasSelection
}

func collectEntities(w *ecs.World) []EntityInfo {
	entities := w.Entities()
	out := make([]EntityInfo, 0, len(entities))

	for _, entity := range entities {
		kinds := entity.Kinds()
		slices.Sort(kinds)

		out = append(out, EntityInfo{
			ID:             entity.Id(),
			Kinds:          kinds,
			ComponentCount: len(kinds),
		})
	}

	return out
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int

		switch column {
		case 1:
			c = strings.Compare(joinKinds(a.Kinds, ","), joinKinds(b.Kinds, ","))
		case 2:
			c = cmp.Compare(a.ComponentCount, b.ComponentCount)
		default:
			c = cmp.Compare(a.ID, b.ID)
		}

		if !ascending {
			return -c
		}
		return c
	})
}

// filterEntities matches text against the id and the kinds of each entity, and keeps
// only entities that have kind when it is set.
func filterEntities(entities []EntityInfo, text string, kind *ecs.Kind) []EntityInfo {
	if text == "" && kind == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if kind != nil && !slices.Contains(entity.Kinds, *kind) {
			continue
		}

		if text != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			kindsStr := strings.ToLower(joinKinds(entity.Kinds, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(kindsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func joinKinds(kinds []ecs.Kind, sep string) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, sep)
}
