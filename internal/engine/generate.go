package engine

import (
	"github.com/piwi3910/profilecut/internal/extract"
	"github.com/piwi3910/profilecut/internal/model"
	"github.com/piwi3910/profilecut/internal/parser"
)

// Options select the open behaviours of the report pipeline.
type Options struct {
	Basis    model.OverflowBasis
	Grouping model.AssemblyGrouping
}

// OptionsFromConfig returns the pipeline options of an app config.
func OptionsFromConfig(cfg model.AppConfig) Options {
	return Options{Basis: cfg.OverflowBasis, Grouping: cfg.AssemblyGrouping}
}

// Result is everything a report run produces.
type Result struct {
	Info      model.SheetInfo
	Processes []*CuttingProcess
	Report    model.Report
	Assembly  model.AssemblyListData
}

// Profiles parses a cut optimisation grid into per-profile data.
func Profiles(cutGrid *model.CellGrid, grouping model.AssemblyGrouping) (model.SheetInfo, []model.CuttingRowData, error) {
	cutGrid.StripMetadata()
	if err := extract.CheckKind(cutGrid, model.CutOptimisation); err != nil {
		return model.SheetInfo{}, nil, err
	}
	info := extract.ReadSheetInfo(cutGrid)

	tables, err := extract.New(grouping).Extract(cutGrid, model.CutOptimisation)
	if err != nil {
		return info, nil, err
	}
	data, err := parser.Parse(tables.Cutting)
	if err != nil {
		return info, nil, err
	}
	return info, data, nil
}

// Assembly reads the accessory data of an assembly list grid.
func Assembly(assemblyGrid *model.CellGrid, grouping model.AssemblyGrouping) (model.AssemblyListData, error) {
	assemblyGrid.StripMetadata()
	if err := extract.CheckKind(assemblyGrid, model.AssemblyList); err != nil {
		return model.AssemblyListData{}, err
	}
	tables, err := extract.New(grouping).Extract(assemblyGrid, model.AssemblyList)
	if err != nil {
		return model.AssemblyListData{}, err
	}
	return extract.ExtractAssemblyListData(tables.Positions), nil
}

// Generate runs the whole pipeline: kind checks, extraction, parsing,
// cutting and report building. Any failure aborts the run.
func Generate(cutGrid, assemblyGrid *model.CellGrid, opts Options) (Result, error) {
	info, data, err := Profiles(cutGrid, opts.Grouping)
	if err != nil {
		return Result{}, err
	}
	processes := CreateCuttingProcesses(data)

	assembly, err := Assembly(assemblyGrid, opts.Grouping)
	if err != nil {
		return Result{}, err
	}

	report, err := NewReportBuilder(opts.Basis).Build(processes, assembly)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Info:      info,
		Processes: processes,
		Report:    report,
		Assembly:  assembly,
	}, nil
}
