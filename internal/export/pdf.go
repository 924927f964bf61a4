// Package export writes cut reports and bar layouts to files: PDF reports,
// QR-coded position labels, report workbooks and DXF bar drawings.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/profilecut/internal/model"
)

// pieceColor represents an RGB color for a piece drawn on a bar.
type pieceColor struct {
	R, G, B int
}

var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 in mm).
const (
	pageWidth    = 297.0 // landscape
	pageHeight   = 210.0
	portraitW    = 210.0
	portraitH    = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	barHeight    = 10.0
	barSpacing   = 6.0
)

const footerText = "Generated by profilecut - profile cut report"

// ExportReportPDF writes the cut report: a header with the sheet info, one
// table row per report row and the accessories list.
func ExportReportPDF(path string, info model.SheetInfo, report model.Report) error {
	if len(report.Rows) == 0 && len(report.Accessories) == 0 {
		return fmt.Errorf("no report rows to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	y := renderReportHeader(pdf, info)

	columns := report.Columns
	if len(columns) < 2 {
		columns = model.ReportColumns
	}

	t := &table{
		pdf:     pdf,
		y:       y,
		widths:  []float64{25, 95, 60},
		headers: []string{"Poz.", columns[0], columns[1]},
	}
	t.title("Profiles")
	t.header()
	for i, r := range report.Rows {
		t.row(i, []string{r.Position, r.PartNumber + " " + r.Color, r.Length})
	}

	if len(report.Accessories) > 0 {
		t.y += 8
		t.title("Accessories")
		t.header()
		for i, a := range report.Accessories {
			t.row(i, []string{a.Position, a.PartNumber, fmt.Sprintf("%g", a.Qty)})
		}
	}

	renderFooter(pdf, portraitW, portraitH)
	return pdf.OutputFileAndClose(path)
}

// renderReportHeader draws the title and sheet info block and returns the y
// position below it.
func renderReportHeader(pdf *fpdf.Fpdf, info model.SheetInfo) float64 {
	title := info.Title
	if title == "" {
		title = "Cut Report"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(portraitW-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, portraitW-marginRight, marginTop+12)

	y := marginTop + 16
	items := []struct {
		label string
		value string
	}{
		{"Project", info.ProjectName},
		{"Date", info.Date},
		{"In charge", info.PersonInCharge},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		if item.value == "" {
			continue
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(30, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y + 4
}

// table writes bordered rows, starting a new page when the current one is
// full.
type table struct {
	pdf     *fpdf.Fpdf
	y       float64
	widths  []float64
	headers []string
}

func (t *table) ensureRoom(h float64) {
	if t.y+h <= portraitH-marginBottom-6 {
		return
	}
	renderFooter(t.pdf, portraitW, portraitH)
	t.pdf.AddPage()
	t.y = marginTop
}

func (t *table) title(s string) {
	t.ensureRoom(9 + 2*rowHeight)
	t.pdf.SetFont("Helvetica", "B", 12)
	t.pdf.SetTextColor(0, 0, 0)
	t.pdf.SetXY(marginLeft, t.y)
	t.pdf.CellFormat(100, 7, s, "", 0, "L", false, 0, "")
	t.y += 9
}

func (t *table) header() {
	t.pdf.SetFont("Helvetica", "B", 9)
	t.pdf.SetFillColor(230, 230, 230)
	t.cells(t.headers, true)
}

func (t *table) row(i int, values []string) {
	if t.y+rowHeight > portraitH-marginBottom-6 {
		t.ensureRoom(rowHeight)
		t.header()
	}
	t.pdf.SetFont("Helvetica", "", 9)
	if i%2 == 0 {
		t.pdf.SetFillColor(245, 245, 245)
	} else {
		t.pdf.SetFillColor(255, 255, 255)
	}
	t.cells(values, true)
}

func (t *table) cells(values []string, fill bool) {
	x := marginLeft
	for j, v := range values {
		t.pdf.SetXY(x, t.y)
		align := "C"
		if j == 1 {
			align = "L"
		}
		t.pdf.CellFormat(t.widths[j], rowHeight, v, "1", 0, align, fill, 0, "")
		x += t.widths[j]
	}
	t.y += rowHeight
}

func renderFooter(pdf *fpdf.Fpdf, w, h float64) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, h-marginBottom)
	pdf.CellFormat(w-marginLeft-marginRight, 4, footerText, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// ExportLayoutPDF draws the bar layout of every profile, one profile per
// page, followed by a summary page.
func ExportLayoutPDF(path string, result model.LayoutResult, settings model.LayoutSettings) error {
	if len(result.Profiles) == 0 {
		return fmt.Errorf("no profiles to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, pl := range result.Profiles {
		pdf.AddPage()
		renderProfilePage(pdf, pl)
	}

	pdf.AddPage()
	renderLayoutSummary(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderProfilePage draws the used bars of one profile to scale.
func renderProfilePage(pdf *fpdf.Fpdf, pl model.ProfileLayout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Profile %s (%s)", pl.PartNumber, pl.Color)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - 30
	y := marginTop + headerHeight + 4

	for i, bar := range pl.Bars {
		if len(bar.Pieces) == 0 {
			continue
		}
		if y+barHeight+barSpacing > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		drawBar(pdf, bar, i+1, marginLeft, y, drawWidth)
		y += barHeight + barSpacing
	}

	if len(pl.Unplaced) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 6, fmt.Sprintf("WARNING: %d pieces do not fit", len(pl.Unplaced)), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

// drawBar draws one bar scaled to width w, its pieces and its remnant.
func drawBar(pdf *fpdf.Fpdf, bar model.Bar, num int, x, y, w float64) {
	if bar.Length <= 0 {
		return
	}
	scale := w / bar.Length

	pdf.SetFillColor(210, 210, 210)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, barHeight, "FD")

	for i, p := range bar.Pieces {
		col := pieceColors[i%len(pieceColors)]
		px := x + p.Offset*scale
		pw := p.Length * scale
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(px, y, pw, barHeight, "FD")

		label := fmt.Sprintf("%s: %.0f", p.Position, p.Length)
		pdf.SetFont("Helvetica", "", 6)
		if lw := pdf.GetStringWidth(label); lw < pw-1 {
			pdf.SetXY(px+(pw-lw)/2, y+barHeight/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(x+w+2, y+barHeight/2-2)
	pdf.CellFormat(28, 4, fmt.Sprintf("#%d %.1f%%", num, bar.Efficiency()), "", 0, "L", false, 0, "")
}

// renderLayoutSummary draws the per-profile statistics and the settings.
func renderLayoutSummary(pdf *fpdf.Fpdf, result model.LayoutResult, settings model.LayoutSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Bar Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	colWidths := []float64{50, 50, 30, 30, 35, 45}
	headers := []string{"Profile", "Colour", "Bars", "Pieces", "Unplaced", "Efficiency"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, h := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, pl := range result.Profiles {
		pieces := 0
		for _, b := range pl.Bars {
			pieces += len(b.Pieces)
		}
		eff := model.LayoutResult{Profiles: []model.ProfileLayout{pl}}.TotalEfficiency()
		rowData := []string{
			pl.PartNumber,
			pl.Color,
			fmt.Sprintf("%d / %d", pl.BarsUsed(), len(pl.Bars)),
			fmt.Sprintf("%d", pieces),
			fmt.Sprintf("%d", len(pl.Unplaced)),
			fmt.Sprintf("%.1f%%", eff),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
		if y > pageHeight-marginBottom-30 {
			pdf.AddPage()
			y = marginTop
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		fmt.Sprintf("Overall efficiency: %.1f%%", result.TotalEfficiency()),
		fmt.Sprintf("Kerf width: %.1f mm", settings.KerfWidth),
		fmt.Sprintf("Strategy: %s", settings.Strategy),
		fmt.Sprintf("Reusable offcuts: %.0f mm", model.TotalOffcutLength(model.DetectAllOffcuts(result, settings.MinOffcutLength))),
	}
	for _, l := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(150, 6, l, "", 0, "L", false, 0, "")
		y += 7
	}

	renderFooter(pdf, pageWidth, pageHeight)
}
