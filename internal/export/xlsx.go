package export

import (
	"fmt"

	"github.com/piwi3910/profilecut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the report workbook.
const (
	ReportSheet      = "Report"
	AccessoriesSheet = "Accessories"
)

// reportTableRow is the first row of the report table; rows above it hold
// the sheet info.
const reportTableRow = 6

// ExportReportXLSX writes the report to a workbook with a report sheet and
// an accessories sheet. Lengths are written as printed ("6,500").
func ExportReportXLSX(path string, info model.SheetInfo, report model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(AccessoriesSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeInfo(f, info); err != nil {
		return err
	}

	columns := report.Columns
	if len(columns) < 2 {
		columns = model.ReportColumns
	}
	header := []interface{}{"Poz.", columns[0], "Culoare", columns[1]}
	if err := writeRow(f, ReportSheet, reportTableRow, header); err != nil {
		return err
	}
	if err := f.SetCellStyle(ReportSheet, "A6", "D6", bold); err != nil {
		return err
	}
	for i, r := range report.Rows {
		row := []interface{}{r.Position, r.PartNumber, r.Color, r.Length}
		if err := writeRow(f, ReportSheet, reportTableRow+1+i, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, AccessoriesSheet, 1, []interface{}{"Poz.", columns[0], columns[1]}); err != nil {
		return err
	}
	if err := f.SetCellStyle(AccessoriesSheet, "A1", "C1", bold); err != nil {
		return err
	}
	for i, a := range report.Accessories {
		if err := writeRow(f, AccessoriesSheet, 2+i, []interface{}{a.Position, a.PartNumber, a.Qty}); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(ReportSheet, "B", "C", 22)
	_ = f.SetColWidth(AccessoriesSheet, "B", "B", 22)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeInfo(f *excelize.File, info model.SheetInfo) error {
	rows := [][]interface{}{
		{info.Title},
		{"Project", info.ProjectName},
		{"Date", info.Date},
		{"In charge", info.PersonInCharge},
	}
	for i, r := range rows {
		if err := writeRow(f, ReportSheet, 1+i, r); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
