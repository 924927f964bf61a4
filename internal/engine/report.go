package engine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/profilecut/internal/model"
)

// leadingNumberRe matches the numeric prefix of a token the way a lenient
// float parser reads it ("2", "2.5pc", "-3e2").
var leadingNumberRe = regexp.MustCompile(`^\s*[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ReportBuilder distributes each profile's wastage over the positions it
// was cut for and joins the result with the assembly list accessories.
//
// The builder keeps a snapshot of its last run. Every Build overwrites the
// snapshot completely, including on failure.
type ReportBuilder struct {
	Basis model.OverflowBasis

	processes          []*CuttingProcess
	totalProjectLength float64
	last               model.Report
}

// NewReportBuilder returns a builder checking overflow against basis. An
// empty basis means model.BasisProject.
func NewReportBuilder(basis model.OverflowBasis) *ReportBuilder {
	if basis == "" {
		basis = model.BasisProject
	}
	return &ReportBuilder{Basis: basis}
}

// Build computes the report rows of all processes and the accessory rows of
// the assembly list. Processes must already be cut. On error no rows are
// returned.
func (b *ReportBuilder) Build(processes []*CuttingProcess, assembly model.AssemblyListData) (model.Report, error) {
	b.processes = processes
	b.totalProjectLength = 0
	b.last = model.Report{}
	for _, p := range processes {
		b.totalProjectLength += p.TotalLength()
	}

	var rows []model.ReportRow
	for _, p := range processes {
		pr, err := b.processRows(p, assembly)
		if err != nil {
			return model.Report{}, err
		}
		rows = append(rows, pr...)
	}

	b.last = model.Report{
		Columns:     append([]string(nil), model.ReportColumns...),
		Rows:        rows,
		Accessories: AccessoryRows(assembly),
		Positions:   b.ListOfPositions(),
	}
	return b.last, nil
}

// Last returns the snapshot of the most recent Build.
func (b *ReportBuilder) Last() model.Report { return b.last }

// TotalProjectLength returns the summed stock length of the last Build.
func (b *ReportBuilder) TotalProjectLength() float64 { return b.totalProjectLength }

// processRows builds one row per distinct position of a process, in
// ascending position order.
func (b *ReportBuilder) processRows(p *CuttingProcess, assembly model.AssemblyListData) ([]model.ReportRow, error) {
	positions := p.Positions()
	sort.Strings(positions)

	whole := p.TotalLengthCutFromInstructions()
	rows := make([]model.ReportRow, 0, len(positions))
	for _, pos := range positions {
		part := p.CutLengthPerPosition(pos)
		pct, err := b.percentage(p, pos, part, whole)
		if err != nil {
			return nil, err
		}
		share := model.Round(pct/100*p.Wastage(), 1, 3)
		meters := model.Round(model.Round(part+share, 0.5, 3)/1000, 0.5, 3)

		qty := assembly.PartsQty[pos].Quantity
		if qty <= 0 {
			return nil, model.NewError(model.ErrUnknownPosition, p.PartNumber, "position %s", pos)
		}

		rows = append(rows, model.ReportRow{
			Position:   pos,
			PartNumber: p.PartNumber,
			Color:      p.Color,
			Length:     FormatLength(model.Divide(meters, qty)),
		})
	}
	return rows, nil
}

func (b *ReportBuilder) percentage(p *CuttingProcess, pos string, part, whole float64) (float64, error) {
	if whole <= 0 {
		return 0, model.NewError(model.ErrPercentageOverflow, p.PartNumber,
			"position %s: profile has no instructed cut length", pos)
	}
	limit := b.totalProjectLength
	if b.Basis == model.BasisProfile {
		limit = whole
	}
	if part > limit {
		return 0, model.NewError(model.ErrPercentageOverflow, p.PartNumber,
			"position %s: %g > %g (%s)", pos, part, limit, b.Basis)
	}
	return model.ToPercent(part, whole), nil
}

// ListOfPositions returns every position cut by the processes of the last
// Build, ascending.
func (b *ReportBuilder) ListOfPositions() []string {
	seen := make(map[string]struct{})
	for _, p := range b.processes {
		for _, c := range p.Cuts() {
			seen[c.Position] = struct{}{}
		}
	}
	return model.SortedKeys(seen)
}

// AccessoryRows zips each position's part numbers with the leading quantity
// of its parts rows. A missing part number yields an empty one.
func AccessoryRows(assembly model.AssemblyListData) []model.AccessoryRow {
	var out []model.AccessoryRow
	for _, pos := range assembly.Positions() {
		numbers := assembly.PartsNumbers[pos]
		for i, row := range assembly.PartsQty[pos].Data {
			var pn string
			if i < len(numbers) {
				pn = numbers[i]
			}
			out = append(out, model.AccessoryRow{
				PartNumber: pn,
				Qty:        leadingNumber(strings.Split(row, " ")[0]),
				Position:   pos,
			})
		}
	}
	return out
}

// leadingNumber parses the numeric prefix of s, or 0 if it has none.
func leadingNumber(s string) float64 {
	m := leadingNumberRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatLength prints metres with three decimals and a decimal comma.
func FormatLength(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 3, 64), ".", ",", 1)
}
