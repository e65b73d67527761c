package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/fryer/ecs"
)

// Archetype viewer columns.
const (
	ColumnID = iota
	ColumnComponents
	ColumnComponentCount
	ColumnEntityCount
)

type ArchetypeInfo struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// ArchetypeViewer lists archetypes with their entity counts. Rows are rebuilt
// when the archetype count changes and re-counted otherwise.
type ArchetypeViewer struct {
	rows          []ArchetypeInfo
	lastCount     int
	sortColumn    int
	sortAscending bool
	selected      *uint32
}

func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{sortColumn: ColumnEntityCount}
}

// Rows returns the current rows in display order.
func (av *ArchetypeViewer) Rows() []ArchetypeInfo {
	return av.rows
}

// Selected returns the archetype id picked in the table, if any.
func (av *ArchetypeViewer) Selected() (uint32, bool) {
	if av.selected == nil {
		return 0, false
	}
	return *av.selected, true
}

// Refresh brings the rows up to date with storage.
func (av *ArchetypeViewer) Refresh(storage *ecs.Storage) {
	stats := storage.CollectStats()

	if av.rows == nil || av.lastCount != stats.ArchetypeCount {
		av.lastCount = stats.ArchetypeCount
		av.rows = make([]ArchetypeInfo, 0, stats.ArchetypeCount)
		for _, arch := range stats.ArchetypeBreakdown {
			types := make([]string, len(arch.ComponentTypes))
			for i, t := range arch.ComponentTypes {
				types[i] = t.String()
			}
			av.rows = append(av.rows, ArchetypeInfo{
				ID:             arch.ID,
				ComponentTypes: types,
				EntityCount:    arch.EntityCount,
			})
		}
		av.sort()
		return
	}

	counts := make(map[uint32]int, len(stats.ArchetypeBreakdown))
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.ID] = arch.EntityCount
	}
	for i := range av.rows {
		av.rows[i].EntityCount = counts[av.rows[i].ID]
	}
	if av.sortColumn == ColumnEntityCount {
		av.sort()
	}
}

// SortBy changes the sort order.
func (av *ArchetypeViewer) SortBy(column int, ascending bool) {
	av.sortColumn, av.sortAscending = column, ascending
	av.sort()
}

func (av *ArchetypeViewer) sort() {
	sort.SliceStable(av.rows, func(i, j int) bool {
		a, b := av.rows[i], av.rows[j]
		var less bool

		switch av.sortColumn {
		case ColumnID:
			less = a.ID < b.ID
		case ColumnComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case ColumnComponentCount:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !av.sortAscending {
			return !less
		}
		return less
	})
}

func (av *ArchetypeViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.Refresh(storage)

	maxEntityCount := 0
	for _, arch := range av.rows {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selected != nil && *av.selected == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := arch.ID
				av.selected = &id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}
