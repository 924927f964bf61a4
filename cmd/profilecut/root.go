package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/profilecut/internal/model"
	"github.com/piwi3910/profilecut/internal/project"
	"github.com/spf13/cobra"
)

// app carries what the subcommands share once the root has run.
type app struct {
	configPath string
	verbose    bool

	config model.AppConfig
	log    *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "profilecut",
		Short:         "Profile cutting reports from cut optimisation exports",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (env: "+project.ConfigDirEnv+" sets its directory)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")

	root.AddCommand(newReportCmd(a), newLayoutCmd(a), newConfigCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath == "" {
		a.configPath = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.config = cfg

	level := parseLevel(cfg.LogLevel)
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.log)

	a.log.Debug("config loaded", "path", a.configPath, "basis", cfg.OverflowBasis, "grouping", cfg.AssemblyGrouping)
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// outputPath places relative output files under the configured output
// directory.
func (a *app) outputPath(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || a.config.OutputDir == "" || a.config.OutputDir == "." {
		return name, nil
	}
	if err := os.MkdirAll(a.config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return filepath.Join(a.config.OutputDir, name), nil
}
