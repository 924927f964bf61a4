// Package importer turns spreadsheet exports into cell grids. It reads
// .xlsx workbooks through excelize, SheetJS-style JSON worksheet dumps and
// delimited text files, always preserving sheet order.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/profilecut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the grid read from a file and where it came from.
type ImportResult struct {
	Grid     *model.CellGrid
	Sheet    string
	Warnings []string
}

// Import reads a grid from path, choosing the reader by file extension.
// preferredSheet selects the worksheet of workbooks; the first sheet is used
// when it is missing.
func Import(path, preferredSheet string) (ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path, preferredSheet)
	case ".json":
		return ImportJSON(path, preferredSheet)
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	}
	return ImportResult{}, fmt.Errorf("unsupported input file %q", filepath.Base(path))
}

// ImportExcel reads one worksheet of an .xlsx workbook.
func ImportExcel(path, preferredSheet string) (ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open Excel file: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, preferredSheet)
}

// ReadExcel is ImportExcel for an already opened stream.
func ReadExcel(r io.Reader, preferredSheet string) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot read Excel data: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, preferredSheet)
}

func readWorkbook(f *excelize.File, preferredSheet string) (ImportResult, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{}, fmt.Errorf("excel file has no sheets")
	}

	result := ImportResult{Sheet: sheets[0]}
	if found := pickSheet(sheets, preferredSheet); found != "" {
		result.Sheet = found
	} else if preferredSheet != "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Sheet %q not found, using %q", preferredSheet, sheets[0]))
	}

	rows, err := f.GetRows(result.Sheet)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot read sheet %q: %w", result.Sheet, err)
	}

	g := model.NewCellGrid()
	for i, row := range rows {
		for j, value := range row {
			if value == "" {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return ImportResult{}, err
			}
			typ, err := f.GetCellType(result.Sheet, addr)
			if err != nil {
				return ImportResult{}, fmt.Errorf("cannot read cell %s: %w", addr, err)
			}
			g.Set(addr, newCell(cellTypeCode(typ, value), value))
		}
	}
	result.Grid = g
	return result, nil
}

func pickSheet(sheets []string, preferred string) string {
	for _, s := range sheets {
		if s == preferred {
			return s
		}
	}
	return ""
}

// cellTypeCode maps an excelize cell type to the single-letter codes of
// SheetJS dumps.
func cellTypeCode(typ excelize.CellType, value string) string {
	switch typ {
	case excelize.CellTypeNumber:
		return "n"
	case excelize.CellTypeBool:
		return "b"
	case excelize.CellTypeDate:
		return "d"
	case excelize.CellTypeError:
		return "e"
	case excelize.CellTypeUnset:
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return "n"
		}
	}
	return "s"
}

// newCell builds a cell whose raw markup is a single text run, so that a
// cell holding only a blank reads as a block terminator.
func newCell(typ, value string) model.Cell {
	return model.Cell{Type: typ, Value: value, Raw: "<t>" + value + "</t>"}
}

// ImportJSON reads a SheetJS JSON dump. Both a single worksheet object and a
// whole workbook ({"SheetNames": [...], "Sheets": {...}}) are accepted.
func ImportJSON(path, preferredSheet string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open file: %w", err)
	}
	return ReadJSON(bytes.NewReader(data), preferredSheet)
}

// ReadJSON is ImportJSON for a stream.
func ReadJSON(r io.Reader, preferredSheet string) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{}, fmt.Errorf("file is empty")
	}

	var wb struct {
		SheetNames []string                   `json:"SheetNames"`
		Sheets     map[string]json.RawMessage `json:"Sheets"`
	}
	if err := json.Unmarshal(data, &wb); err == nil && len(wb.SheetNames) > 0 && wb.Sheets != nil {
		result := ImportResult{Sheet: wb.SheetNames[0]}
		if found := pickSheet(wb.SheetNames, preferredSheet); found != "" {
			result.Sheet = found
		} else if preferredSheet != "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Sheet %q not found, using %q", preferredSheet, result.Sheet))
		}
		raw, ok := wb.Sheets[result.Sheet]
		if !ok {
			return ImportResult{}, fmt.Errorf("workbook has no data for sheet %q", result.Sheet)
		}
		result.Grid = model.NewCellGrid()
		if err := json.Unmarshal(raw, result.Grid); err != nil {
			return ImportResult{}, fmt.Errorf("cannot decode sheet %q: %w", result.Sheet, err)
		}
		return result, nil
	}

	g := model.NewCellGrid()
	if err := json.Unmarshal(data, g); err != nil {
		return ImportResult{}, fmt.Errorf("cannot decode cell grid: %w", err)
	}
	return ImportResult{Grid: g}, nil
}

// DetectCSVDelimiter reads the file content and determines the most likely
// delimiter. It tries comma, semicolon, tab and pipe; the one producing the
// most consistent multi-column rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		records, err := readRecords(bytes.NewReader(data), delim)
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func readRecords(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportCSV reads a delimited text export of a sheet. Every non-empty field
// becomes a string cell at its row/column address.
func ImportCSV(path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{}, fmt.Errorf("file is empty")
	}

	result := ImportResult{}
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readRecords(bytes.NewReader(data), delimiter)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot read CSV: %w", err)
	}

	g := model.NewCellGrid()
	for i, row := range records {
		for j, value := range row {
			if value == "" {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return ImportResult{}, err
			}
			g.Set(addr, newCell("s", value))
		}
	}
	result.Grid = g
	return result, nil
}
