package model

import "fmt"

// OverflowBasis selects the whole a position's cut length is checked against
// before its wastage share is computed.
type OverflowBasis string

const (
	// BasisProject compares against the summed stock length of all profiles.
	BasisProject OverflowBasis = "project"
	// BasisProfile compares against the profile's instructed cut length.
	BasisProfile OverflowBasis = "profile"
)

// AssemblyGrouping selects how "Position: DDD" markers partition an
// assembly list.
type AssemblyGrouping string

const (
	// GroupEachMarker opens a new group at every marker.
	GroupEachMarker AssemblyGrouping = "each_marker"
	// GroupFirstMarker collects everything after the first marker into one
	// group, as older exports were processed.
	GroupFirstMarker AssemblyGrouping = "first_marker"
)

// LayoutStrategy selects how pieces are assigned to stock bars.
type LayoutStrategy string

const (
	LayoutFirstFitDecreasing LayoutStrategy = "ffd"        // longest pieces first, first bar that fits
	LayoutSequential         LayoutStrategy = "sequential" // instruction order, first bar that fits
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Report settings
	OverflowBasis    OverflowBasis    `json:"overflow_basis"`
	AssemblyGrouping AssemblyGrouping `json:"assembly_grouping"`
	SheetName        string           `json:"sheet_name"` // preferred worksheet in .xlsx inputs

	// Bar layout settings
	KerfWidth       float64        `json:"kerf_width"` // saw blade width in mm
	LayoutStrategy  LayoutStrategy `json:"layout_strategy"`
	MinOffcutLength float64        `json:"min_offcut_length"` // mm

	// Application preferences
	LogLevel  string `json:"log_level"` // "debug", "info", "warn", "error"
	OutputDir string `json:"output_dir"`
}

// DefaultSheetName is the worksheet name used by cut optimisation exports.
const DefaultSheetName = "Table p. 1"

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		OverflowBasis:    BasisProject,
		AssemblyGrouping: GroupEachMarker,
		SheetName:        DefaultSheetName,
		KerfWidth:        4.0,
		LayoutStrategy:   LayoutFirstFitDecreasing,
		MinOffcutLength:  MinOffcutLength,
		LogLevel:         "info",
		OutputDir:        ".",
	}
}

// LayoutSettings returns the bar layout part of the config.
func (c AppConfig) LayoutSettings() LayoutSettings {
	return LayoutSettings{
		KerfWidth:       c.KerfWidth,
		Strategy:        c.LayoutStrategy,
		MinOffcutLength: c.MinOffcutLength,
	}
}

// Validate reports the first setting with an unknown value.
func (c AppConfig) Validate() error {
	switch c.OverflowBasis {
	case BasisProject, BasisProfile:
	default:
		return fmt.Errorf("overflow_basis: unknown value %q", c.OverflowBasis)
	}
	switch c.AssemblyGrouping {
	case GroupEachMarker, GroupFirstMarker:
	default:
		return fmt.Errorf("assembly_grouping: unknown value %q", c.AssemblyGrouping)
	}
	switch c.LayoutStrategy {
	case LayoutFirstFitDecreasing, LayoutSequential:
	default:
		return fmt.Errorf("layout_strategy: unknown value %q", c.LayoutStrategy)
	}
	if c.KerfWidth < 0 {
		return fmt.Errorf("kerf_width: must not be negative, got %g", c.KerfWidth)
	}
	return nil
}
