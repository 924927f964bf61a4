package model

import (
	"sort"

	"github.com/google/uuid"
)

// ExtractionType selects how a raw grid is partitioned.
type ExtractionType string

const (
	CutOptimisation ExtractionType = "CutOptimisation" // single cutting table, grouped by row
	AssemblyList    ExtractionType = "AssemblyList"    // per-position groups keyed by "Position: DDD"
)

// NoColor is the colour code used when a colour text maps to no finish.
const NoColor = "NO_COLOR"

// ReportColumns is the fixed header pair of the printed cut report.
var ReportColumns = []string{"Cod articol", "Cant."}

// Row is one spreadsheet row of a cutting table: its number and the cell
// texts found on it, in grid order.
type Row struct {
	Number int      `json:"number"`
	Cells  []string `json:"cells"`
}

// RowGroup is a cutting table's row-major view, ordered by row number.
type RowGroup []Row

// CuttingTable is a named RowGroup.
type CuttingTable struct {
	Name string   `json:"name"`
	Rows RowGroup `json:"rows"`
}

// AddressedCell is a cell together with its grid address.
type AddressedCell struct {
	Address string `json:"address"`
	Cell    Cell   `json:"cell"`
}

// PositionGroup is the run of assembly list cells belonging to one
// "Position: DDD" marker. The marker cell itself is not included.
type PositionGroup struct {
	Name  string          `json:"name"` // marker text, e.g. "Position: 101"
	Cells []AddressedCell `json:"cells"`
}

// ProfileHeaderInfo is parsed from one profile header row.
type ProfileHeaderInfo struct {
	PartNumber   string  `json:"part_number"`
	Pcs          int     `json:"pcs"`
	LengthPerPcs float64 `json:"length_per_pcs"` // mm
	Color        string  `json:"color"`          // colour text as printed
}

// CuttingInstruction requests Qty pieces of Length mm for a position.
type CuttingInstruction struct {
	Qty      int     `json:"qty"`
	Length   float64 `json:"length"`   // mm
	Position string  `json:"position"` // three digits
}

// CuttingRowData is one profile's full parsed record.
type CuttingRowData struct {
	PartNumber   string               `json:"part_number"`
	Pcs          int                  `json:"pcs"`
	LengthPerPcs float64              `json:"length_per_pcs"`
	TotalLength  float64              `json:"total_length"` // Pcs * LengthPerPcs
	ColorInfo    string               `json:"color_info"`   // colour code
	Instructions []CuttingInstruction `json:"instructions"`
}

// ProfileCut is a materialized physical cut.
type ProfileCut struct {
	ID       string  `json:"id"`
	Qty      int     `json:"qty"`
	Length   float64 `json:"length"`
	Position string  `json:"position"`
	Color    string  `json:"color"`
}

// NewProfileCut creates a cut with a fresh id.
func NewProfileCut(ci CuttingInstruction, color string) ProfileCut {
	return ProfileCut{
		ID:       uuid.New().String()[:8],
		Qty:      ci.Qty,
		Length:   ci.Length,
		Position: ci.Position,
		Color:    color,
	}
}

// PartsQty holds the accepted quantity rows of one position and the
// quantity of the block they were found in.
type PartsQty struct {
	Data     []string `json:"data"`
	Quantity float64  `json:"quantity"`
}

// AssemblyListData is the accessory data per position. PartsQty[pos].Data
// and PartsNumbers[pos] are index-aligned.
type AssemblyListData struct {
	PartsQty     map[string]PartsQty `json:"parts_qty"`
	PartsNumbers map[string][]string `json:"parts_numbers"`
	PositionQty  map[string]int      `json:"position_qty"`
}

// Positions returns the positions of PartsQty in ascending order.
func (a AssemblyListData) Positions() []string {
	return SortedKeys(a.PartsQty)
}

// ReportRow is one printed row: a position's share of one profile.
type ReportRow struct {
	Position   string `json:"position"`
	PartNumber string `json:"part_number"`
	Color      string `json:"color"`
	Length     string `json:"length"` // metres per unit, "0,000"
}

// AccessoryRow is one accessory line of a position.
type AccessoryRow struct {
	PartNumber string  `json:"part_number"`
	Qty        float64 `json:"qty"`
	Position   string  `json:"position"`
}

// Report is the output of a report build.
type Report struct {
	Columns     []string       `json:"columns"`
	Rows        []ReportRow    `json:"rows"`
	Accessories []AccessoryRow `json:"accessories"`
	Positions   []string       `json:"positions"`
}

// SheetInfo holds the fixed info cells of a cut optimisation export.
type SheetInfo struct {
	Title          string `json:"title"`
	Date           string `json:"date"`
	ProjectName    string `json:"project_name"`
	PersonInCharge string `json:"person_in_charge"`
}

// SortedKeys returns the keys of a string-keyed map in ascending order.
// Positions are fixed-width digit strings, so this is also numeric order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
