package packing

import (
	"sort"

	"github.com/philipparndt/cratepack/internal/geometry"
	"github.com/philipparndt/cratepack/internal/models"
)

// ReferenceBin is the specification a fresh Bin is created from for each
// variant slot.
type ReferenceBin struct {
	Width, Length, Height int
	MaxLength             *int
	MaxWeight             *float64
}

func (r ReferenceBin) newBin(config models.PackerConfiguration) *Bin {
	return NewBin(r.Width, r.Length, r.Height, config.BinStabilityFactor, config.OverhangYStabilityFactor)
}

// PackVariant runs the layered wall-building packer over as many reference
// bins as needed to place (or give up on) every item.
func PackVariant(order models.Order, bins []ReferenceBin, config models.PackerConfiguration) *PackingVariant {
	variant := &PackingVariant{Configurations: []models.PackerConfiguration{config}}

	binMaxLength := 0
	if len(bins) > 0 {
		binMaxLength = bins[0].Length
		if bins[0].MaxLength != nil {
			binMaxLength = *bins[0].MaxLength
		}
	}
	itemsToPack := PrepareItems(order.Items(), config, binMaxLength)

	for _, ref := range bins {
		if len(itemsToPack) == 0 {
			break
		}
		bin := ref.newBin(config)
		itemsToPack = packSingleBin(bin, itemsToPack, config)
		variant.AddBin(bin)
	}

	for _, it := range itemsToPack {
		variant.AddUnpacked(it, "no bin had room")
	}

	return variant
}

// packSingleBin runs the per-bin wall-building loop and returns the items
// that remained unplaced in this bin.
func packSingleBin(bin *Bin, itemsToPack []models.Item, config models.PackerConfiguration) []models.Item {
	ignored := map[[3]int]bool{}
	layerZMax := bin.Height
	direction := geometry.Right
	var prevItem models.Item

	snapKey := func(sp geometry.Snappoint) [3]int { return [3]int{sp.X, sp.Z, int(sp.Direction)} }

	for len(itemsToPack) > 0 {
		isNewLayer := layerZMax == bin.Height

		var minZ *int
		candidates := bin.Snappoints(minZ)
		var filtered []geometry.Snappoint
		for _, sp := range candidates {
			if !ignored[snapKey(sp)] && sp.Z < layerZMax {
				filtered = append(filtered, sp)
			}
		}

		if len(filtered) < 2 {
			if isNewLayer {
				break
			}
			if config.RemoveGaps {
				bin.RemoveGaps()
			}
			layerZMax = bin.Height
			ignored = map[[3]int]bool{}
			direction = geometry.Right
			continue
		}

		if isNewLayer {
			sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].X < filtered[j].X })
			if filtered[0].X != 0 {
				break
			}
		} else {
			sort.SliceStable(filtered, func(i, j int) bool {
				if filtered[i].Z != filtered[j].Z {
					return filtered[i].Z < filtered[j].Z
				}
				return filtered[i].X < filtered[j].X
			})
		}

		var left, right *geometry.Snappoint
		for idx := range filtered {
			sp := filtered[idx]
			if left == nil && sp.Direction == geometry.Right {
				left = &filtered[idx]
			}
			if right == nil && sp.Direction == geometry.Left {
				right = &filtered[idx]
			}
		}
		if left == nil || right == nil {
			// No usable pair of anchors remains; stop trying this layer.
			if isNewLayer {
				break
			}
			layerZMax = bin.Height
			ignored = map[[3]int]bool{}
			direction = geometry.Right
			continue
		}

		anchor := *left
		other := *right
		if direction == geometry.Left {
			anchor, other = other, anchor
		}

		allowedMaxZ := layerZMax
		if config.AllowItemExceedsLayer {
			allowedMaxZ = bin.Height
		}

		best := SelectItem(itemsToPack, bin, anchor, allowedMaxZ, config, prevItem)
		usedAnchor := anchor
		if best == nil {
			best = SelectItem(itemsToPack, bin, other, allowedMaxZ, config, prevItem)
			usedAnchor = other
			if best == nil {
				ignored[snapKey(anchor)] = true
				ignored[snapKey(other)] = true
				continue
			}
		}

		if err := packItemOnSnappoint(bin, best, usedAnchor); err != nil {
			ignored[snapKey(usedAnchor)] = true
			continue
		}

		layerZMax = bin.MaxZ()
		itemsToPack = removeItem(itemsToPack, best)
		ignored = map[[3]int]bool{}
		prevItem = best

		if config.MirrorWalls && usedAnchor.X == 0 {
			mirror := geometry.Snappoint{X: bin.Width, Z: usedAnchor.Z, Direction: geometry.Left}
			twin := findItemWithDimensions(itemsToPack, best)
			if twin != nil && CanPackOnSnappoint(bin, twin, mirror, allowedMaxZ) {
				if packItemOnSnappoint(bin, twin, mirror) == nil {
					itemsToPack = removeItem(itemsToPack, twin)
					layerZMax = bin.MaxZ()
				}
			}
		}

		if float64(best.Volume())/float64(bin.Volume()) >= config.DirectionChangeMinVolume {
			direction = direction.Toggle()
		}
	}

	return itemsToPack
}

// packItemOnSnappoint computes the corner position from the snappoint
// direction and commits the placement via Bin.PackItem.
func packItemOnSnappoint(bin *Bin, item models.Item, sp geometry.Snappoint) error {
	pos := PositionForSnappoint(item, sp)
	return bin.PackItem(item, pos)
}

func removeItem(items []models.Item, target models.Item) []models.Item {
	for i, it := range items {
		if it == target {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}

func findItemWithDimensions(items []models.Item, like models.Item) models.Item {
	k := dimsKey(like)
	for _, it := range items {
		if dimsKey(it) == k {
			return it
		}
	}
	return nil
}
