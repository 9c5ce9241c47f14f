// Package config loads beamline build configuration from JSON files. A
// config file carries the same options as the command-line flags, so a
// machine's standard build settings can be kept in one place and overridden
// per invocation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/accel-data/beamline/internal/optics"
	"github.com/accel-data/beamline/internal/units"
)

// BuildConfig represents the root configuration for a model build. All
// fields are optional; nil fields keep the builder's defaults, so partial
// configs are safe.
type BuildConfig struct {
	// Beam params
	Momentum      *float64 `json:"momentum,omitempty"`
	MomentumUnits *string  `json:"momentum_units,omitempty"`

	// Construction params
	HonourMadStructure *bool    `json:"honour_mad_structure,omitempty"`
	FlatLattice        *bool    `json:"flat_lattice,omitempty"`
	SingleCellRF       *bool    `json:"single_cell_rf,omitempty"`
	ScaleForSynchRad   *bool    `json:"scale_for_synch_rad,omitempty"`
	TreatAsDrift       []string `json:"treat_as_drift,omitempty"`
	IgnoreZeroLength   []string `json:"ignore_zero_length,omitempty"`
	LogElements        *bool    `json:"log_elements,omitempty"`

	// Output params
	DBPath    *string `json:"db_path,omitempty"`
	ChartPath *string `json:"chart_path,omitempty"`
	PlotPath  *string `json:"plot_path,omitempty"`
}

// LoadBuildConfig loads a BuildConfig from a JSON file. The file must have
// a .json extension and stay under the max file size.
func LoadBuildConfig(path string) (*BuildConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg BuildConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *BuildConfig) Validate() error {
	if c.Momentum != nil && *c.Momentum <= 0 {
		return fmt.Errorf("momentum must be positive, got %g", *c.Momentum)
	}
	if c.MomentumUnits != nil && !units.IsValidEnergyUnit(*c.MomentumUnits) {
		return fmt.Errorf("invalid momentum_units %q", *c.MomentumUnits)
	}
	return nil
}

// MomentumGeV returns the configured reference momentum converted to GeV/c,
// or fallback when the config does not set one.
func (c *BuildConfig) MomentumGeV(fallback float64) float64 {
	if c.Momentum == nil {
		return fallback
	}
	unit := units.GeV
	if c.MomentumUnits != nil {
		unit = *c.MomentumUnits
	}
	return units.ToGeV(*c.Momentum, unit)
}

// Apply sets the configured construction options on a builder. Unset fields
// leave the builder untouched.
func (c *BuildConfig) Apply(b *optics.Builder) {
	if c.HonourMadStructure != nil {
		b.HonourMadStructure(*c.HonourMadStructure)
	}
	if c.FlatLattice != nil {
		b.ConstructFlatLattice(*c.FlatLattice)
	}
	if c.SingleCellRF != nil {
		b.SetSingleCellRF(*c.SingleCellRF)
	}
	if c.ScaleForSynchRad != nil {
		b.ScaleForSynchRad(*c.ScaleForSynchRad)
	}
	if c.LogElements != nil {
		b.SetLogging(*c.LogElements)
	}
	for _, t := range c.TreatAsDrift {
		b.TreatTypeAsDrift(t)
	}
	for _, t := range c.IgnoreZeroLength {
		b.IgnoreZeroLengthType(t)
	}
}

// Str returns the value of an optional string field, or "" when unset.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
