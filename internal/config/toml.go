// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data      DataConfig      `toml:"data"`
	Alerts    AlertsConfig    `toml:"alerts"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

// DataConfig maps dataset file settings.
type DataConfig struct {
	Sales   *string `toml:"sales"`
	Persona *string `toml:"persona"`
}

// AlertsConfig maps alert rule thresholds.
type AlertsConfig struct {
	RestockFactor *float64 `toml:"restock-factor"`
	StaffingRatio *float64 `toml:"staffing-ratio"`
	PromoQuantile *float64 `toml:"promo-quantile"`
}

// DashboardConfig maps display and caching settings.
type DashboardConfig struct {
	PlotHeight *int  `toml:"plot-height"`
	Cache      *bool `toml:"cache"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
