package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/profilecut/internal/model"
)

// SnapshotVersion is written into every snapshot file.
const SnapshotVersion = "1.0.0"

// Snapshot is a saved report run: the sheet info, the report and the
// settings it was built with.
type Snapshot struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Info      model.SheetInfo `json:"info"`
	Report    model.Report    `json:"report"`
	Config    model.AppConfig `json:"config"`
}

// SaveSnapshot writes a report snapshot as JSON to path.
func SaveSnapshot(path string, info model.SheetInfo, report model.Report, config model.AppConfig) error {
	snap := Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Info:      info,
		Report:    report,
		Config:    config,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	if snap.Version == "" {
		return Snapshot{}, fmt.Errorf("invalid snapshot file: missing version field")
	}
	return snap, nil
}
