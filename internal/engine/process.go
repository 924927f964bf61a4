// Package engine computes wastage per profile, distributes it over the
// installation positions and lays the cuts out on stock bars.
package engine

import (
	"github.com/google/uuid"
	"github.com/piwi3910/profilecut/internal/model"
)

// CuttingProcess owns one profile: its stock, its instructions and, once
// Cut has run, the materialized cuts, the wastage and the cut length per
// position.
type CuttingProcess struct {
	ID           string
	PartNumber   string
	Pcs          int
	Length       float64 // stock length per piece, mm
	Color        string  // colour code
	Instructions []model.CuttingInstruction

	totalLength                    float64
	totalLengthCutFromInstructions float64

	cut       bool
	cuts      []model.ProfileCut
	wastage   float64
	perPos    map[string]float64
	positions []string // first-seen order of perPos keys
}

// NewCuttingProcess builds a process in the constructed state.
func NewCuttingProcess(data model.CuttingRowData) *CuttingProcess {
	p := &CuttingProcess{
		ID:           uuid.New().String()[:8],
		PartNumber:   data.PartNumber,
		Pcs:          data.Pcs,
		Length:       data.LengthPerPcs,
		Color:        data.ColorInfo,
		Instructions: data.Instructions,
		perPos:       make(map[string]float64),
	}

	lengths := make([]float64, 0, len(data.Instructions))
	for _, ci := range data.Instructions {
		lengths = append(lengths, float64(ci.Qty)*ci.Length)
	}
	p.totalLengthCutFromInstructions = model.Sum(lengths)
	p.totalLength = model.Round(p.Length*float64(p.Pcs), 0.5, 3)
	return p
}

// cutLength is the rounded length consumed by one cut.
func cutLength(c model.ProfileCut) float64 {
	return model.Round(c.Length*float64(c.Qty), 0.5, 3)
}

// Cut materializes one ProfileCut per instruction and computes the wastage
// and the per-position totals. Only the first call has an effect.
func (p *CuttingProcess) Cut() {
	if p.cut {
		return
	}
	p.cut = true

	for _, ci := range p.Instructions {
		p.cuts = append(p.cuts, model.NewProfileCut(ci, p.Color))
	}

	var used float64
	for _, c := range p.cuts {
		used += cutLength(c)
	}
	p.wastage += model.Round(p.totalLength-used, 0.5, 3)

	for _, c := range p.cuts {
		if _, ok := p.perPos[c.Position]; !ok {
			p.positions = append(p.positions, c.Position)
		}
		p.perPos[c.Position] += cutLength(c)
	}
}

// IsCut reports whether Cut has run.
func (p *CuttingProcess) IsCut() bool { return p.cut }

// ColorCodeCut is reserved for colour coding individual cuts and always
// fails.
func (p *CuttingProcess) ColorCodeCut(model.ProfileCut) error {
	return model.NewError(model.ErrUnimplemented, p.PartNumber, "colour coding a cut")
}

// TotalLength returns the rounded stock length of the profile (pcs * length).
func (p *CuttingProcess) TotalLength() float64 { return p.totalLength }

// TotalLengthCutFromInstructions returns the instructed cut length.
func (p *CuttingProcess) TotalLengthCutFromInstructions() float64 {
	return p.totalLengthCutFromInstructions
}

// Wastage returns the stock length left after all cuts. It is zero before
// Cut and may be negative for an over-instructed profile.
func (p *CuttingProcess) Wastage() float64 { return p.wastage }

// Cuts returns the materialized cuts.
func (p *CuttingProcess) Cuts() []model.ProfileCut { return p.cuts }

// CutLengthPerPosition returns the summed cut length of a position.
func (p *CuttingProcess) CutLengthPerPosition(position string) float64 {
	return p.perPos[position]
}

// CutLengths returns a copy of the per-position cut lengths.
func (p *CuttingProcess) CutLengths() map[string]float64 {
	out := make(map[string]float64, len(p.perPos))
	for k, v := range p.perPos {
		out[k] = v
	}
	return out
}

// Positions returns the distinct positions of the cuts, in the order they
// were first seen.
func (p *CuttingProcess) Positions() []string {
	return append([]string(nil), p.positions...)
}

// CreateCuttingProcesses builds and cuts one process per profile, in
// profile order.
func CreateCuttingProcesses(data []model.CuttingRowData) []*CuttingProcess {
	out := make([]*CuttingProcess, 0, len(data))
	for _, d := range data {
		p := NewCuttingProcess(d)
		p.Cut()
		out = append(out, p)
	}
	return out
}
