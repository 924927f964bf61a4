package main

import (
	"fmt"

	"github.com/piwi3910/profilecut/internal/engine"
	"github.com/piwi3910/profilecut/internal/export"
	"github.com/piwi3910/profilecut/internal/model"
	"github.com/spf13/cobra"
)

type layoutFlags struct {
	cut      string
	dxf, pdf string
	kerf     float64
	strategy string
	compare  bool
}

func newLayoutCmd(a *app) *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Lay the cut pieces of every profile out on its stock bars",
		Long: `Assigns every instructed piece of a cut optimisation export to one of the
profile's stock bars. The layout is informational and never changes report
numbers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.config.LayoutSettings()
			if cmd.Flags().Changed("kerf") {
				settings.KerfWidth = f.kerf
			}
			if f.strategy != "" {
				settings.Strategy = model.LayoutStrategy(f.strategy)
			}
			return a.runLayout(cmd, f, settings)
		},
	}
	cmd.Flags().StringVar(&f.cut, "cut", "", "cut optimisation export (.xlsx, .json)")
	cmd.Flags().StringVar(&f.dxf, "dxf", "", "write the bar layout as DXF")
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "write the bar layout as PDF")
	cmd.Flags().Float64Var(&f.kerf, "kerf", 0, "saw blade width in mm (default from config)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "layout strategy: ffd or sequential")
	cmd.Flags().BoolVar(&f.compare, "compare", false, "compare the layout against alternative settings")
	_ = cmd.MarkFlagRequired("cut")
	return cmd
}

func (a *app) runLayout(cmd *cobra.Command, f layoutFlags, settings model.LayoutSettings) error {
	check := a.config
	check.KerfWidth = settings.KerfWidth
	check.LayoutStrategy = settings.Strategy
	if err := check.Validate(); err != nil {
		return err
	}

	grid, err := a.importGrid(f.cut, a.config.SheetName)
	if err != nil {
		return err
	}
	_, profiles, err := engine.Profiles(grid, a.config.AssemblyGrouping)
	if err != nil {
		return err
	}
	processes := engine.CreateCuttingProcesses(profiles)

	result := engine.New(settings).Layout(processes)
	a.log.Info("layout built",
		"profiles", len(result.Profiles),
		"unplaced", result.UnplacedCount(),
		"kerf", settings.KerfWidth,
		"strategy", settings.Strategy)

	out := cmd.OutOrStdout()
	printLayout(out, result, settings)

	if f.compare {
		printComparison(out, engine.CompareScenarios(engine.BuildDefaultScenarios(settings), processes))
	}

	if f.dxf != "" {
		path, err := a.outputPath(f.dxf)
		if err != nil {
			return err
		}
		if err := export.ExportLayoutDXF(path, result); err != nil {
			return fmt.Errorf("writing dxf: %w", err)
		}
		a.log.Info("file written", "kind", "dxf", "path", path)
	}
	if f.pdf != "" {
		path, err := a.outputPath(f.pdf)
		if err != nil {
			return err
		}
		if err := export.ExportLayoutPDF(path, result, settings); err != nil {
			return fmt.Errorf("writing pdf: %w", err)
		}
		a.log.Info("file written", "kind", "pdf", "path", path)
	}
	return nil
}
