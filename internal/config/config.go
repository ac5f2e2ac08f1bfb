// Package config loads and validates the run configuration a CLI
// invocation needs: the order to pack, the reference bin it is packed
// into, and the packer configuration(s) to try.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/philipparndt/cratepack/internal/models"
	"github.com/philipparndt/cratepack/internal/packing"
	"gopkg.in/yaml.v3"
)

// RunConfig is the top-level file a `cratepack pack` invocation loads: an
// order, how many reference bins are available, how many variants to try,
// and an optional packer configuration override.
type RunConfig struct {
	Order          models.Order                `yaml:"order" json:"order"`
	NumBins        int                          `yaml:"num_bins" json:"num_bins"`
	NumVariants    int                          `yaml:"num_variants" json:"num_variants"`
	Config         *models.PackerConfiguration  `yaml:"config,omitempty" json:"config,omitempty"`
	OutputFile     string                       `yaml:"output_file,omitempty" json:"output_file,omitempty"`
}

// Loader reads and validates RunConfig files from disk.
type Loader struct{}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a YAML run-configuration file, validates it, and resolves
// output_file relative to the config file's own directory.
func (l *Loader) Load(configPath string) (*RunConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.OutputFile != "" && !filepath.IsAbs(cfg.OutputFile) {
		configDir := filepath.Dir(configPath)
		absConfigDir, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path of config directory: %w", err)
		}
		cfg.OutputFile = filepath.Join(absConfigDir, cfg.OutputFile)
	}

	return &cfg, nil
}

// Validate checks the run configuration and the order it wraps, rejecting
// out-of-domain values before the engine ever sees them.
func (l *Loader) Validate(cfg *RunConfig) error {
	if cfg.NumBins < 1 {
		return fmt.Errorf("num_bins must be >= 1")
	}
	if cfg.NumVariants < 1 {
		cfg.NumVariants = 1
	}
	if err := cfg.Order.Validate(); err != nil {
		return err
	}
	if cfg.Config != nil {
		if err := cfg.Config.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ReferenceBins expands the run config's ColliDetails + num_bins into the
// list of identical reference bins the packer schedules against.
func (cfg RunConfig) ReferenceBins() []packing.ReferenceBin {
	bins := make([]packing.ReferenceBin, cfg.NumBins)
	details := cfg.Order.ColliDetails
	for i := range bins {
		bins[i] = packing.ReferenceBin{
			Width:     details.Width,
			Length:    details.Length,
			Height:    details.Height,
			MaxLength: details.MaxLength,
			MaxWeight: details.MaxWeight,
		}
	}
	return bins
}

// EffectiveConfiguration returns the packer configuration to use: the
// explicit override if one was supplied, otherwise the default with
// ColliDetails' safety-distance fields translated into padding_x/
// padding_x_min_width/padding_length.
func (cfg RunConfig) EffectiveConfiguration() models.PackerConfiguration {
	if cfg.Config != nil {
		return *cfg.Config
	}
	base := models.DefaultPackerConfiguration()
	details := cfg.Order.ColliDetails
	base.PaddingX = safetyDistancePadding(details)
	base.PaddingXMinWidth = details.MinArticleWidthNoSafetyDistance
	if details.SafetyDistanceLengthwise != nil {
		base.PaddingLength = *details.SafetyDistanceLengthwise
	}
	return base
}

// safetyDistancePadding translates the order-level "safety distance"
// fields into an additive padding_x, grounded on original_source's
// historical handling of safety distance as bounding-box widening for
// articles narrower than min_article_width_no_safety_distance (applied by
// packing.PrepareItems via PaddingXMinWidth).
func safetyDistancePadding(details models.ColliDetails) int {
	if details.SafetyDistanceSmallerArticles == nil {
		return 0
	}
	return *details.SafetyDistanceSmallerArticles
}
