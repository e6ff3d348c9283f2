package design

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDesign reads a Design from a YAML (or YAML-compatible JSON) file.
// This is a caller-side convenience, not part of the pure engine: the
// engine itself never touches a filesystem or owns any persisted layout.
func LoadDesign(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading design file: %w", err)
	}

	var d Design
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing design file %s: %w", path, err)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid design %s: %w", path, err)
	}

	return &d, nil
}

// EngineConfig carries the tunable constants an analysis pass uses:
// derating inputs, the inverter efficiency, and the early-stop
// threshold. Zero-valued fields fall back to documented defaults via
// WithDefaults.
type EngineConfig struct {
	AmbientTempC       float64 `yaml:"ambientTempC" json:"ambientTempC"`
	BundlingFactor     float64 `yaml:"bundlingFactor" json:"bundlingFactor"`
	MaxDropPct         float64 `yaml:"maxDropPct" json:"maxDropPct"`
	InverterEfficiency float64 `yaml:"inverterEfficiency" json:"inverterEfficiency"`
	ScoreThreshold     float64 `yaml:"scoreThreshold" json:"scoreThreshold"`
}

// WithDefaults returns a copy of cfg with every zero-valued field
// replaced by its documented default.
func (c EngineConfig) WithDefaults() EngineConfig {
	if c.AmbientTempC == 0 {
		c.AmbientTempC = 30.0
	}
	if c.BundlingFactor == 0 {
		c.BundlingFactor = 1.0
	}
	if c.MaxDropPct == 0 {
		c.MaxDropPct = 3.0
	}
	if c.InverterEfficiency == 0 {
		c.InverterEfficiency = 0.875
	}
	if c.ScoreThreshold == 0 {
		c.ScoreThreshold = 90.0
	}
	return c
}

// LoadEngineConfig reads engine tuning parameters from a YAML file.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading engine config file: %w", err)
	}

	var c EngineConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing engine config file %s: %w", path, err)
	}

	c = c.WithDefaults()
	return &c, nil
}
