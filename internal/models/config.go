package models

import "fmt"

// ItemSelectStrategy picks the next item to place given a candidate set.
// It is immutable data dispatched by value: a tagged variant plus a pure
// function, not a class.
type ItemSelectStrategy int

const (
	LargestVolume ItemSelectStrategy = iota
	LargestHWL
	LargestWHL
	LargestLHW
	LargestLWH
	LargestWToFill
	LargestWHToFill
)

var strategyNames = map[ItemSelectStrategy]string{
	LargestVolume:  "LARGEST_VOLUME",
	LargestHWL:     "LARGEST_H_W_L",
	LargestWHL:     "LARGEST_W_H_L",
	LargestLHW:     "LARGEST_L_H_W",
	LargestLWH:     "LARGEST_L_W_H",
	LargestWToFill: "LARGEST_W_TO_FILL",
	LargestWHToFill: "LARGEST_W_H_TO_FILL",
}

func (s ItemSelectStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseItemSelectStrategy resolves a strategy by its wire name. Returns a
// ConfigurationError-flavored error for anything unrecognized: an
// unimplemented selector strategy is a programmer error, not a retryable
// failure.
func ParseItemSelectStrategy(name string) (ItemSelectStrategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("configuration error: unknown item select strategy %q", name)
}

// PackerConfiguration is an immutable record driving a single packing run.
// A zero-value struct would silently pick LARGEST_VOLUME (iota 0), so
// callers should always go through DefaultPackerConfiguration or
// internal/config's loader rather than the struct literal directly.
type PackerConfiguration struct {
	DefaultSelectStrategy    ItemSelectStrategy `json:"default_select_strategy" yaml:"default_select_strategy"`
	NewLayerSelectStrategy   ItemSelectStrategy `json:"new_layer_select_strategy" yaml:"new_layer_select_strategy"`
	DirectionChangeMinVolume float64            `json:"direction_change_min_volume" yaml:"direction_change_min_volume"`
	BinStabilityFactor       float64            `json:"bin_stability_factor" yaml:"bin_stability_factor"`
	AllowItemExceedsLayer    bool               `json:"allow_item_exceeds_layer" yaml:"allow_item_exceeds_layer"`
	MirrorWalls              bool               `json:"mirror_walls" yaml:"mirror_walls"`
	// PaddingX widens a single (ungrouped) item's width unconditionally
	// unless PaddingXMinWidth is set, in which case only items narrower than
	// it are widened. Grouped items are not padded.
	PaddingX                 int                `json:"padding_x" yaml:"padding_x"`
	PaddingXMinWidth         *int               `json:"padding_x_min_width,omitempty" yaml:"padding_x_min_width,omitempty"`
	PaddingLength            int                `json:"padding_length" yaml:"padding_length"`
	OverhangYStabilityFactor *float64           `json:"overhang_y_stability_factor,omitempty" yaml:"overhang_y_stability_factor,omitempty"`
	RemoveGaps               bool               `json:"remove_gaps" yaml:"remove_gaps"`
	ItemGroupingMode         *ItemGroupingMode  `json:"item_grouping_mode,omitempty" yaml:"item_grouping_mode,omitempty"`
	GroupNarrowItemsW        int                `json:"group_narrow_items_w" yaml:"group_narrow_items_w"`
}

// DefaultPackerConfiguration returns the documented default for every
// field.
func DefaultPackerConfiguration() PackerConfiguration {
	return PackerConfiguration{
		DefaultSelectStrategy:    LargestHWL,
		NewLayerSelectStrategy:   LargestHWL,
		DirectionChangeMinVolume: 1.0,
		BinStabilityFactor:       1.0,
		AllowItemExceedsLayer:    false,
		MirrorWalls:              false,
		PaddingX:                 0,
		PaddingXMinWidth:         nil,
		PaddingLength:            0,
		OverhangYStabilityFactor: nil,
		RemoveGaps:               false,
		ItemGroupingMode:         nil,
		GroupNarrowItemsW:        0,
	}
}

// Validate rejects an out-of-domain configuration at the call boundary:
// fallible construction happens once here, not repeatedly inside the
// packing loop.
func (c PackerConfiguration) Validate() error {
	if c.DirectionChangeMinVolume < 0 || c.DirectionChangeMinVolume > 1 {
		return fmt.Errorf("configuration error: direction_change_min_volume must be in [0,1]")
	}
	if c.BinStabilityFactor < 0 || c.BinStabilityFactor > 1 {
		return fmt.Errorf("configuration error: bin_stability_factor must be in [0,1]")
	}
	if c.PaddingX < 0 {
		return fmt.Errorf("configuration error: padding_x must be >= 0")
	}
	if c.PaddingXMinWidth != nil && *c.PaddingXMinWidth < 0 {
		return fmt.Errorf("configuration error: padding_x_min_width must be >= 0")
	}
	if c.PaddingLength < 0 {
		return fmt.Errorf("configuration error: padding_length must be >= 0")
	}
	if c.OverhangYStabilityFactor != nil {
		v := *c.OverhangYStabilityFactor
		if v < 0.5 || v >= 1 {
			return fmt.Errorf("configuration error: overhang_y_stability_factor must be in [0.5,1)")
		}
	}
	if c.GroupNarrowItemsW < 0 {
		return fmt.Errorf("configuration error: group_narrow_items_w must be >= 0")
	}
	if c.ItemGroupingMode != nil && *c.ItemGroupingMode != Lengthwise {
		return fmt.Errorf("configuration error: item_grouping_mode must be LENGTHWISE or unset")
	}
	return nil
}
