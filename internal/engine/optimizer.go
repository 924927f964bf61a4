package engine

import (
	"sort"

	"github.com/piwi3910/profilecut/internal/model"
)

// Optimizer lays the cuts of each profile out on its stock bars.
type Optimizer struct {
	Settings model.LayoutSettings
}

// New returns an Optimizer for the given settings. An empty strategy means
// first-fit decreasing.
func New(settings model.LayoutSettings) *Optimizer {
	if settings.Strategy == "" {
		settings.Strategy = model.LayoutFirstFitDecreasing
	}
	return &Optimizer{Settings: settings}
}

// Layout lays out every process, in process order.
func (o *Optimizer) Layout(processes []*CuttingProcess) model.LayoutResult {
	result := model.LayoutResult{}
	for _, p := range processes {
		result.Profiles = append(result.Profiles, o.LayoutProcess(p))
	}
	return result
}

// LayoutProcess assigns every physical piece of a process to one of its
// Pcs bars of stock Length. Pieces that fit on no bar are left unplaced.
func (o *Optimizer) LayoutProcess(p *CuttingProcess) model.ProfileLayout {
	pl := model.ProfileLayout{PartNumber: p.PartNumber, Color: p.Color}
	for i := 0; i < p.Pcs; i++ {
		pl.Bars = append(pl.Bars, model.NewBar(p.PartNumber, p.Color, p.Length, o.Settings.KerfWidth))
	}

	pieces := expandPieces(p.Instructions)
	if o.Settings.Strategy == model.LayoutFirstFitDecreasing {
		sort.SliceStable(pieces, func(i, j int) bool {
			return pieces[i].Length > pieces[j].Length
		})
	}

	for _, piece := range pieces {
		if !placeFirstFit(pl.Bars, piece, o.Settings.KerfWidth) {
			pl.Unplaced = append(pl.Unplaced, piece)
		}
	}
	return pl
}

// expandPieces turns instructions into one piece per physical cut.
func expandPieces(instructions []model.CuttingInstruction) []model.BarPiece {
	var pieces []model.BarPiece
	for _, ci := range instructions {
		for i := 0; i < ci.Qty; i++ {
			pieces = append(pieces, model.BarPiece{Length: ci.Length, Position: ci.Position})
		}
	}
	return pieces
}

// nextOffset returns where the next piece on b would start.
func nextOffset(b model.Bar, kerf float64) float64 {
	if len(b.Pieces) == 0 {
		return 0
	}
	return b.UsedLength() + kerf
}

// placeFirstFit puts piece on the first bar with room for it.
func placeFirstFit(bars []model.Bar, piece model.BarPiece, kerf float64) bool {
	if piece.Length <= 0 {
		return false
	}
	for i := range bars {
		off := nextOffset(bars[i], kerf)
		if off+piece.Length > bars[i].Length {
			continue
		}
		piece.Offset = off
		bars[i].Pieces = append(bars[i].Pieces, piece)
		return true
	}
	return false
}
