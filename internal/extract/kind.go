package extract

import (
	"strings"

	"github.com/piwi3910/profilecut/internal/model"
)

// Fixed info cells of a cut optimisation export.
const (
	TitleCell          = "C2"
	DateCell           = "N2"
	ProjectNameCell    = "N3"
	PersonInChargeCell = "R7"
)

var kindMarkers = map[model.ExtractionType]string{
	model.CutOptimisation: "Cut Optimisation",
	model.AssemblyList:    "Assembly List",
}

// IsKind reports whether some cell of g carries the title text of typ.
func IsKind(g *model.CellGrid, typ model.ExtractionType) bool {
	marker, ok := kindMarkers[typ]
	if !ok || g.Len() == 0 {
		return false
	}
	found := false
	g.Each(func(_ string, c model.Cell) {
		if !found && c.Type != "n" && strings.Contains(c.Value, marker) {
			found = true
		}
	})
	return found
}

// CheckKind returns ErrWrongFileKind unless g is an export of type typ.
func CheckKind(g *model.CellGrid, typ model.ExtractionType) error {
	if g.Len() == 0 {
		return model.NewError(model.ErrEmptyInput, "", "%s grid has no cells", typ)
	}
	if !IsKind(g, typ) {
		return model.NewError(model.ErrWrongFileKind, "", "expected %q export", kindMarkers[typ])
	}
	return nil
}

// ReadSheetInfo reads the fixed info cells. Missing cells are empty.
func ReadSheetInfo(g *model.CellGrid) model.SheetInfo {
	text := func(addr string) string {
		c, _ := g.Get(addr)
		return strings.TrimSpace(c.Value)
	}
	return model.SheetInfo{
		Title:          text(TitleCell),
		Date:           text(DateCell),
		ProjectName:    text(ProjectNameCell),
		PersonInCharge: text(PersonInChargeCell),
	}
}
