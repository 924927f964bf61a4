package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/piwi3910/profilecut/internal/engine"
	"github.com/piwi3910/profilecut/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8C42")).
			MarginTop(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB84D")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Summary numbers use the locale the reports are printed for, matching the
// decimal comma of the report lengths.
var numbers = message.NewPrinter(language.Romanian)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func printInfo(w io.Writer, info model.SheetInfo) {
	title := info.Title
	if title == "" {
		title = "Cut Optimisation"
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	var parts []string
	for _, kv := range [][2]string{
		{"Project", info.ProjectName},
		{"Date", info.Date},
		{"In charge", info.PersonInCharge},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+": "+kv[1])
		}
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, subtitleStyle.Render(strings.Join(parts, "  ")))
	}
}

func printReport(w io.Writer, report model.Report) {
	t := newTable("Poz.", model.ReportColumns[0], "Culoare", model.ReportColumns[1])
	for _, r := range report.Rows {
		t.Row(r.Position, r.PartNumber, r.Color, r.Length)
	}
	fmt.Fprintln(w, titleStyle.Render("Profiles"))
	fmt.Fprintln(w, t)

	if len(report.Accessories) == 0 {
		return
	}
	acc := newTable("Poz.", "Accesoriu", "Cant.")
	for _, r := range report.Accessories {
		acc.Row(r.Position, r.PartNumber, numbers.Sprintf("%v", r.Qty))
	}
	fmt.Fprintln(w, titleStyle.Render("Accessories"))
	fmt.Fprintln(w, acc)
}

func printLayout(w io.Writer, result model.LayoutResult, settings model.LayoutSettings) {
	for _, pl := range result.Profiles {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s  %s", pl.PartNumber, pl.Color)))

		t := newTable("Bar", "ID", "Pieces", "Used mm", "Rest mm", "Usage")
		for i, b := range pl.Bars {
			if len(b.Pieces) == 0 {
				continue
			}
			pieces := make([]string, len(b.Pieces))
			for j, p := range b.Pieces {
				pieces[j] = fmt.Sprintf("%g/%s", p.Length, p.Position)
			}
			t.Row(
				fmt.Sprint(i+1),
				b.ID,
				strings.Join(pieces, " "),
				numbers.Sprintf("%.0f", b.UsedLength()),
				numbers.Sprintf("%.0f", b.Remaining()),
				numbers.Sprintf("%.1f%%", b.Efficiency()),
			)
		}
		fmt.Fprintln(w, t)
		fmt.Fprintln(w, subtitleStyle.Render(fmt.Sprintf("%d of %d bars used", pl.BarsUsed(), len(pl.Bars))))

		if len(pl.Unplaced) > 0 {
			lengths := make([]string, len(pl.Unplaced))
			for i, p := range pl.Unplaced {
				lengths[i] = fmt.Sprintf("%g/%s", p.Length, p.Position)
			}
			fmt.Fprintln(w, errorStyle.Render("Unplaced: "+strings.Join(lengths, " ")))
		}
	}

	offcuts := model.DetectAllOffcuts(result, settings.MinOffcutLength)
	fmt.Fprintln(w, titleStyle.Render("Summary"))
	fmt.Fprintln(w, numbers.Sprintf("Usage %.1f%%, %d unplaced, %d offcuts (%.0f mm)",
		result.TotalEfficiency(), result.UnplacedCount(), len(offcuts), model.TotalOffcutLength(offcuts)))
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	t := newTable("Scenario", "Bars", "Unplaced", "Waste", "Offcuts mm")
	for _, r := range results {
		t.Row(
			r.Scenario.Name,
			fmt.Sprint(r.BarsUsed),
			fmt.Sprint(r.UnplacedCount),
			numbers.Sprintf("%.1f%%", r.WastePercent),
			numbers.Sprintf("%.0f", r.OffcutLength),
		)
	}
	fmt.Fprintln(w, titleStyle.Render("Scenarios"))
	fmt.Fprintln(w, t)
}
