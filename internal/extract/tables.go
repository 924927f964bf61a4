// Package extract reconstructs tables from the sparse cell grids of the two
// supported exports. Cut optimisation grids become one row-grouped cutting
// table; assembly lists become per-position cell groups from which accessory
// quantities and part numbers are read.
package extract

import (
	"sort"

	"github.com/piwi3910/profilecut/internal/model"
)

// CuttingTableName is the name of the single table of a cut optimisation grid.
const CuttingTableName = "Cutting 1"

// Tables is the result of an extraction. Only the field matching the
// extraction type is populated.
type Tables struct {
	Cutting   []model.CuttingTable
	Positions []model.PositionGroup
}

// Extractor partitions raw grids into tables.
type Extractor struct {
	Grouping model.AssemblyGrouping
}

// New returns an Extractor using the given assembly grouping.
func New(grouping model.AssemblyGrouping) *Extractor {
	if grouping == "" {
		grouping = model.GroupEachMarker
	}
	return &Extractor{Grouping: grouping}
}

// Extract strips grid metadata in place and partitions the grid according
// to typ.
func (e *Extractor) Extract(g *model.CellGrid, typ model.ExtractionType) (Tables, error) {
	g.StripMetadata()
	if g.Len() == 0 {
		return Tables{}, model.NewError(model.ErrEmptyInput, "", "%s grid has no cells", typ)
	}

	switch typ {
	case model.CutOptimisation:
		table, err := ExtractCuttingTable(g)
		if err != nil {
			return Tables{}, err
		}
		return Tables{Cutting: []model.CuttingTable{table}}, nil

	case model.AssemblyList:
		groups, err := ExtractPositionGroups(g, e.Grouping)
		if err != nil {
			return Tables{}, err
		}
		return Tables{Positions: groups}, nil
	}

	return Tables{}, model.NewError(model.ErrWrongFileKind, "", "unknown extraction type %q", typ)
}

// ExtractCuttingTable groups the cells of the cutting columns by row number.
// Cells keep grid order within a row; rows are ordered by number.
func ExtractCuttingTable(g *model.CellGrid) (model.CuttingTable, error) {
	byRow := make(map[int][]string)
	g.Each(func(addr string, c model.Cell) {
		n, ok := RowNumber(addr)
		if !ok {
			return
		}
		byRow[n] = append(byRow[n], c.Value)
	})

	if len(byRow) == 0 {
		return model.CuttingTable{}, model.NewError(model.ErrEmptyInput, CuttingTableName, "no cells in cutting columns")
	}

	numbers := make([]int, 0, len(byRow))
	for n := range byRow {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	rows := make(model.RowGroup, 0, len(numbers))
	for _, n := range numbers {
		rows = append(rows, model.Row{Number: n, Cells: byRow[n]})
	}
	return model.CuttingTable{Name: CuttingTableName, Rows: rows}, nil
}

// ExtractPositionGroups partitions an assembly list grid into groups keyed
// by "Position: DDD" markers. With GroupEachMarker every marker closes the
// running group and opens a new one. With GroupFirstMarker only the first
// marker opens a group and every later cell, later markers included, lands
// in it.
func ExtractPositionGroups(g *model.CellGrid, grouping model.AssemblyGrouping) ([]model.PositionGroup, error) {
	var (
		groups  []model.PositionGroup
		current *model.PositionGroup
	)

	g.Each(func(addr string, c model.Cell) {
		marker := IsPositionMarker(c.Value)

		if marker && (current == nil || grouping != model.GroupFirstMarker) {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &model.PositionGroup{Name: c.Value}
			return
		}
		if current != nil {
			current.Cells = append(current.Cells, model.AddressedCell{Address: addr, Cell: c})
		}
	})

	if current == nil {
		return nil, model.NewError(model.ErrNoPositionMarker, "", "assembly list has no %q marker", "Position: DDD")
	}
	groups = append(groups, *current)
	return groups, nil
}
