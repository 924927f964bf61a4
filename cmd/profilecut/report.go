package main

import (
	"fmt"

	"github.com/piwi3910/profilecut/internal/engine"
	"github.com/piwi3910/profilecut/internal/export"
	"github.com/piwi3910/profilecut/internal/importer"
	"github.com/piwi3910/profilecut/internal/model"
	"github.com/piwi3910/profilecut/internal/project"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	cut, assembly string
	pdf, xlsx     string
	labels, json  string
	basis         string
	grouping      string
}

func newReportCmd(a *app) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the profile report of a project",
		Long: `Reads a cut optimisation export and the matching assembly list, splits
every profile's wastage across the positions cut from it and prints one row
per position and profile with the length per unit in metres.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.cut, "cut", "", "cut optimisation export (.xlsx, .json)")
	cmd.Flags().StringVar(&f.assembly, "assembly", "", "assembly list export (.xlsx, .json)")
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "write the report as PDF")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "write the report as a workbook")
	cmd.Flags().StringVar(&f.labels, "labels", "", "write QR position labels as PDF")
	cmd.Flags().StringVar(&f.json, "json", "", "save a JSON snapshot of the run")
	cmd.Flags().StringVar(&f.basis, "basis", "", "overflow basis: project or profile")
	cmd.Flags().StringVar(&f.grouping, "grouping", "", "assembly grouping: each_marker or first_marker")
	_ = cmd.MarkFlagRequired("cut")
	_ = cmd.MarkFlagRequired("assembly")
	return cmd
}

func (a *app) runReport(cmd *cobra.Command, f reportFlags) error {
	cfg := a.config
	if f.basis != "" {
		cfg.OverflowBasis = model.OverflowBasis(f.basis)
	}
	if f.grouping != "" {
		cfg.AssemblyGrouping = model.AssemblyGrouping(f.grouping)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cut, err := a.importGrid(f.cut, cfg.SheetName)
	if err != nil {
		return err
	}
	assembly, err := a.importGrid(f.assembly, cfg.SheetName)
	if err != nil {
		return err
	}

	res, err := engine.Generate(cut, assembly, engine.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	a.log.Info("report built",
		"profiles", len(res.Processes),
		"positions", len(res.Report.Positions),
		"rows", len(res.Report.Rows),
		"accessories", len(res.Report.Accessories))

	out := cmd.OutOrStdout()
	printInfo(out, res.Info)
	printReport(out, res.Report)

	type writer struct {
		flag, kind string
		write      func(path string) error
	}
	writers := []writer{
		{f.pdf, "pdf", func(p string) error { return export.ExportReportPDF(p, res.Info, res.Report) }},
		{f.xlsx, "xlsx", func(p string) error { return export.ExportReportXLSX(p, res.Info, res.Report) }},
		{f.labels, "labels", func(p string) error { return export.ExportLabels(p, res.Info, res.Report) }},
		{f.json, "snapshot", func(p string) error { return project.SaveSnapshot(p, res.Info, res.Report, cfg) }},
	}
	for _, w := range writers {
		if w.flag == "" {
			continue
		}
		path, err := a.outputPath(w.flag)
		if err != nil {
			return err
		}
		if err := w.write(path); err != nil {
			return fmt.Errorf("writing %s: %w", w.kind, err)
		}
		a.log.Info("file written", "kind", w.kind, "path", path)
	}
	return nil
}

func (a *app) importGrid(path, sheet string) (*model.CellGrid, error) {
	res, err := importer.Import(path, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, w := range res.Warnings {
		a.log.Warn(w, "file", path)
	}
	a.log.Debug("grid imported", "file", path, "sheet", res.Sheet, "cells", res.Grid.Len())
	return res.Grid, nil
}
