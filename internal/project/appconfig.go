// Package project persists application settings and report snapshots.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/piwi3910/profilecut/internal/model"
)

// ConfigDirEnv overrides the configuration directory.
const ConfigDirEnv = "PROFILECUT_CONFIG_DIR"

// DefaultConfigDir returns the directory for application configuration:
// $PROFILECUT_CONFIG_DIR if set, else ~/.profilecut/
func DefaultConfigDir() string {
	if v := os.Getenv(ConfigDirEnv); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".profilecut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. Settings missing
// from the file (or zero) take their default value. If the file does not
// exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := mergo.Merge(&config, model.DefaultAppConfig()); err != nil {
		return model.AppConfig{}, fmt.Errorf("apply defaults: %w", err)
	}
	if err := config.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}
