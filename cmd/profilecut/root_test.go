package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/profilecut/internal/model"
	"github.com/piwi3910/profilecut/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrid(t *testing.T, name string, pairs ...string) string {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	g := model.NewCellGrid()
	for i := 0; i < len(pairs); i += 2 {
		v := pairs[i+1]
		raw := "<t>" + v + "</t>"
		if v == "" {
			v, raw = " ", model.BlankMarkerRaw
		}
		g.Set(pairs[i], model.Cell{Type: "s", Value: v, Raw: raw})
	}
	data, err := json.Marshal(g)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func cutFile(t *testing.T) string {
	return writeGrid(t, "cut.json",
		"C2", "Cut Optimisation",
		"N3", "Vila Pipera",
		"B4", "Qty",
		"D4", "Length",
		"J4", "Pos",
		"B10", "Cortizo 101045",
		"D10", "4 Pcs @ 6,500 mm",
		"J10", "Colour: Special 2 Powder Coating PE007TD",
		"B11", "2",
		"D11", "1,250",
		"J11", "101",
		"B12", "2",
		"D12", "1,250",
		"J12", "102",
	)
}

func assemblyFile(t *testing.T) string {
	return writeGrid(t, "assembly.json",
		"A1", "Assembly List",
		"A2", "Position: 101",
		"A3", "Quantity: 2 Pcs",
		"A4", "2 1,250 mm",
		"A5", "",
		"A6", "Number",
		"A7", "123456",
		"A8", "",
		"A9", "Position: 102",
		"A10", "Quantity: 3 Pcs",
		"A11", "1 500 mm",
		"A12", "",
	)
}

// run executes the CLI with an isolated config directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(project.ConfigDirEnv, t.TempDir())
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "report.xlsx")
	snap := filepath.Join(dir, "run.json")

	out, err := run(t, "report", "--cut", cutFile(t), "--assembly", assemblyFile(t), "--xlsx", xlsx, "--json", snap)
	require.NoError(t, err)

	assert.Contains(t, out, "Vila Pipera")
	assert.Contains(t, out, "6,500")
	assert.Contains(t, out, "4,333")
	assert.Contains(t, out, "123456")
	assert.FileExists(t, xlsx)

	s, err := project.LoadSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102"}, s.Report.Positions)
	assert.Equal(t, model.BasisProject, s.Config.OverflowBasis)
}

func TestReportCommand_BasisFlagOverridesConfig(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "run.json")

	_, err := run(t, "report", "--cut", cutFile(t), "--assembly", assemblyFile(t),
		"--basis", "profile", "--json", snap)
	require.NoError(t, err)

	s, err := project.LoadSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, model.BasisProfile, s.Config.OverflowBasis)
	assert.Equal(t, model.GroupEachMarker, s.Config.AssemblyGrouping)
}

func TestReportCommand_FirstMarkerGroupingCollapsesPositions(t *testing.T) {
	// Every cell after the first marker belongs to position 101, so 102
	// has no assembly quantity.
	_, err := run(t, "report", "--cut", cutFile(t), "--assembly", assemblyFile(t),
		"--grouping", "first_marker")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnknownPosition), err)
}

func TestReportCommand_FirstMarkerGroupingSinglePosition(t *testing.T) {
	cut := writeGrid(t, "cut.json",
		"C2", "Cut Optimisation",
		"B10", "Cortizo 101045",
		"D10", "1 Pcs @ 6,500 mm",
		"J10", "Colour: Special 2 Powder Coating PE007TD",
		"B11", "2",
		"D11", "1,250",
		"J11", "101",
	)
	assembly := writeGrid(t, "assembly.json",
		"A1", "Assembly List",
		"A2", "Position: 101",
		"A3", "Quantity: 2 Pcs",
		"A4", "2 1,250 mm",
		"A5", "",
	)
	snap := filepath.Join(t.TempDir(), "run.json")

	out, err := run(t, "report", "--cut", cut, "--assembly", assembly,
		"--grouping", "first_marker", "--json", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "3,250")

	s, err := project.LoadSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, model.GroupFirstMarker, s.Config.AssemblyGrouping)
}

func TestReportCommand_Errors(t *testing.T) {
	cut, assembly := cutFile(t), assemblyFile(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing assembly flag", []string{"report", "--cut", cut}},
		{"unknown basis", []string{"report", "--cut", cut, "--assembly", assembly, "--basis", "sheet"}},
		{"swapped files", []string{"report", "--cut", assembly, "--assembly", cut}},
		{"missing file", []string{"report", "--cut", filepath.Join(t.TempDir(), "nope.json"), "--assembly", assembly}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	dxfPath := filepath.Join(t.TempDir(), "layout.dxf")

	out, err := run(t, "layout", "--cut", cutFile(t), "--compare", "--dxf", dxfPath)
	require.NoError(t, err)

	assert.Contains(t, out, "101045")
	assert.Contains(t, out, "1250/101")
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "Sequential")
	assert.Contains(t, out, "No Kerf")
	assert.FileExists(t, dxfPath)
}

func TestLayoutCommand_ZeroKerf(t *testing.T) {
	out, err := run(t, "layout", "--cut", cutFile(t), "--kerf", "0", "--compare")
	require.NoError(t, err)

	// With no kerf there is no half-kerf or no-kerf alternative.
	assert.NotContains(t, out, "No Kerf")
	assert.NotContains(t, out, "(half)")
}

func TestLayoutCommand_UnknownStrategy(t *testing.T) {
	_, err := run(t, "layout", "--cut", cutFile(t), "--strategy", "genetic")
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	out, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = run(t, "--config", path, "config", "init")
	assert.Error(t, err, "init must not overwrite without --force")

	_, err = run(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)

	out, err = run(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"overflow_basis": "project"`)
	assert.Contains(t, out, `"sheet_name": "Table p. 1"`)
}

func TestConfigShow_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"overflow_basis": "sheet"}`), 0644))

	_, err := run(t, "--config", path, "config", "show")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestOutputPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	a := &app{config: model.AppConfig{OutputDir: dir}}

	got, err := a.outputPath("report.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.pdf"), got)
	assert.DirExists(t, dir)

	abs := filepath.Join(t.TempDir(), "x.pdf")
	got, err = a.outputPath(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	a.config.OutputDir = "."
	got, err = a.outputPath("report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got)
}
