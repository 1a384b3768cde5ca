// Package survey is the driver that ties everything together: it walks
// configured (site, loe_index) pairs, loads each LOE and feature set
// through the Ingest contract, feeds them through the trench package's
// generator and evaluator, and aggregates totals. Ingest, configuration
// loading, and reporting are deliberately kept outside trench's core
// algorithm package; their contracts are fixed here, at the boundary.
package survey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kwv/trenchplan/trench"
)

// RunConfig is the full on-disk run configuration: the data root, which
// (site, loe_index) pairs to sweep, and which named trench configurations
// to run against each.
type RunConfig struct {
	DataDir     string        `yaml:"dataDir"`
	LayerFilter string        `yaml:"layerFilter,omitempty"`
	Workers     int           `yaml:"workers,omitempty"`
	Sites       []SiteConfig  `yaml:"sites"`
	Patterns    []PatternSpec `yaml:"patterns"`
}

// SiteConfig names one site and the LOE indices within it to run.
type SiteConfig struct {
	Name       string `yaml:"name"`
	LOEIndices []int  `yaml:"loeIndices"`
}

// PatternSpec names one of the five TrenchConfig constructors and its
// options. Exactly one of Spacing or CoverageTarget must be set; Spacing
// wins if both are present.
type PatternSpec struct {
	Name           string  `yaml:"name"` // continuous, parallel_array, standard_grid, test_pits, herringbone
	Width          float64 `yaml:"width"`
	Length         float64 `yaml:"length,omitempty"`
	Spacing        float64 `yaml:"spacing,omitempty"`
	CoverageTarget float64 `yaml:"coverageTarget,omitempty"`
}

// Distribution builds the trench.Distribution this spec describes.
func (p PatternSpec) Distribution() trench.Distribution {
	if p.Spacing > 0 {
		return trench.SpacingOf(p.Spacing)
	}
	return trench.CoverageOf(trench.Percentage(p.CoverageTarget))
}

// Build constructs the TrenchConfig named by p.
func (p PatternSpec) Build() (trench.TrenchConfig, error) {
	dist := p.Distribution()
	switch p.Name {
	case "continuous":
		return trench.Continuous(p.Width, dist), nil
	case "parallel_array":
		return trench.ParallelArray(p.Width, p.Length, dist), nil
	case "standard_grid":
		return trench.StandardGrid(p.Width, p.Length, dist), nil
	case "test_pits":
		return trench.TestPits(p.Width, dist), nil
	case "herringbone":
		return trench.Herringbone(p.Width, p.Length, dist), nil
	default:
		return trench.TrenchConfig{}, fmt.Errorf("unrecognised pattern constructor %q", p.Name)
	}
}

// LoadRunConfig loads a RunConfig from a YAML file, validating required
// fields before returning it.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("survey config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading survey config file: %w", err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing survey config YAML: %w", err)
	}

	if cfg.DataDir == "" {
		return nil, fmt.Errorf("dataDir is required")
	}
	if len(cfg.Sites) == 0 {
		return nil, fmt.Errorf("at least one site must be defined")
	}
	if len(cfg.Patterns) == 0 {
		return nil, fmt.Errorf("at least one pattern must be defined")
	}
	for i, s := range cfg.Sites {
		if s.Name == "" {
			return nil, fmt.Errorf("sites[%d].name is required", i)
		}
		if len(s.LOEIndices) == 0 {
			return nil, fmt.Errorf("sites[%d].loeIndices must not be empty for %s", i, s.Name)
		}
	}
	for i, p := range cfg.Patterns {
		if p.Name == "" {
			return nil, fmt.Errorf("patterns[%d].name is required", i)
		}
	}

	return &cfg, nil
}

// SaveRunConfig saves cfg to a YAML file.
func SaveRunConfig(path string, cfg *RunConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling survey config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing survey config file: %w", err)
	}
	return nil
}
