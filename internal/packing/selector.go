package packing

import (
	"sort"

	"github.com/philipparndt/cratepack/internal/geometry"
	"github.com/philipparndt/cratepack/internal/models"
)

// PositionForSnappoint translates a snappoint into the Position an item
// would occupy if anchored there: snappoint.X for RIGHT (left edge at x),
// snappoint.X - item.Width() for LEFT (right edge at x).
func PositionForSnappoint(item models.Item, sp geometry.Snappoint) geometry.Position {
	x := sp.X
	if sp.Direction == geometry.Left {
		x = sp.X - item.Width()
	}
	return geometry.Position{X: x, Y: 0, Z: sp.Z}
}

// CanPackOnSnappoint translates the snappoint to a position, checks Bin
// validity via CanPack, and rejects items whose top would exceed maxZ.
func CanPackOnSnappoint(bin *Bin, item models.Item, sp geometry.Snappoint, maxZ int) bool {
	if item.Height()+sp.Z > maxZ {
		return false
	}
	pos := PositionForSnappoint(item, sp)
	_, err := bin.CanPack(item, pos)
	return err == nil
}

// IsNewLayer reports whether no column in the bin's heightmap is strictly
// higher than the snappoint's z.
func IsNewLayer(bin *Bin, sp geometry.Snappoint) bool {
	for x := 0; x < bin.Width; x++ {
		if bin.HeightAt(x) > sp.Z {
			return false
		}
	}
	return true
}

// SelectItem is the top-level entry point for Component E: given a
// candidate set, a bin, a snappoint and an allowed max-z, it returns the
// item to pack, or nil if none fits.
func SelectItem(items []models.Item, bin *Bin, sp geometry.Snappoint, maxZ int, config models.PackerConfiguration, prevItem models.Item) models.Item {
	var possible []models.Item
	for _, it := range items {
		if CanPackOnSnappoint(bin, it, sp, maxZ) {
			if config.MirrorWalls && sp.X == 0 {
				mirror := geometry.Snappoint{X: bin.Width, Z: sp.Z, Direction: geometry.Left}
				if !CanPackOnSnappoint(bin, it, mirror, maxZ) {
					continue
				}
			}
			possible = append(possible, it)
		}
	}
	if len(possible) == 0 {
		return nil
	}

	strategy := config.DefaultSelectStrategy
	if IsNewLayer(bin, sp) {
		return selectByStrategy(possible, config.NewLayerSelectStrategy)
	}

	if config.MirrorWalls && len(possible) >= 2 {
		newLayerItem := selectByStrategy(possible, config.NewLayerSelectStrategy)
		possible = reserveLastMirrorPair(possible, newLayerItem, bin, sp, maxZ)
		if len(possible) == 0 {
			return nil
		}
	}

	_ = prevItem // tie-breaking against the previous item is not part of any
	// implemented strategy's key; kept for call-site symmetry with the
	// Python source's select_item_from_list signature.
	return selectByStrategy(possible, strategy)
}

// reserveLastMirrorPair handles the mirror_walls edge case: when it is
// active and exactly two instances of the new-layer-select strategy's item
// remain, verify that doubling that item's width would still fit in the
// remaining layer; if not, exclude both instances from this pick so they're
// reserved for the next layer. Only the new-layer item's dims-class is
// considered, matching new_layer_item in the source this is ported from.
func reserveLastMirrorPair(items []models.Item, newLayerItem models.Item, bin *Bin, sp geometry.Snappoint, maxZ int) []models.Item {
	if newLayerItem == nil {
		return items
	}

	target := dimsKey(newLayerItem)
	count := 0
	for _, it := range items {
		if dimsKey(it) == target {
			count++
		}
	}
	if count != 2 {
		return items
	}

	doubled := newLayerItem.Width() * 2
	if sp.X+doubled <= bin.Width {
		return items
	}

	var filtered []models.Item
	for _, it := range items {
		if dimsKey(it) != target {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

func dimsKey(i models.Item) [3]int { return [3]int{i.Width(), i.Length(), i.Height()} }

// CountSameDimensions counts how many items in the set share item's
// dimensions, used by the *_TO_FILL strategies.
func CountSameDimensions(items []models.Item, item models.Item) int {
	k := dimsKey(item)
	n := 0
	for _, it := range items {
		if dimsKey(it) == k {
			n++
		}
	}
	return n
}

func selectByStrategy(items []models.Item, strategy models.ItemSelectStrategy) models.Item {
	sorted := append([]models.Item(nil), items...)

	switch strategy {
	case models.LargestVolume:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Volume() > sorted[j].Volume() })
	case models.LargestHWL:
		sort.SliceStable(sorted, func(i, j int) bool { return lessTuple3Desc(sorted[i].Height(), sorted[i].Width(), sorted[i].Length(), sorted[j].Height(), sorted[j].Width(), sorted[j].Length()) })
	case models.LargestWHL:
		sort.SliceStable(sorted, func(i, j int) bool { return lessTuple3Desc(sorted[i].Width(), sorted[i].Height(), sorted[i].Length(), sorted[j].Width(), sorted[j].Height(), sorted[j].Length()) })
	case models.LargestLHW:
		sort.SliceStable(sorted, func(i, j int) bool { return lessTuple3Desc(sorted[i].Length(), sorted[i].Height(), sorted[i].Width(), sorted[j].Length(), sorted[j].Height(), sorted[j].Width()) })
	case models.LargestLWH:
		sort.SliceStable(sorted, func(i, j int) bool { return lessTuple3Desc(sorted[i].Length(), sorted[i].Width(), sorted[i].Height(), sorted[j].Length(), sorted[j].Width(), sorted[j].Height()) })
	case models.LargestWToFill:
		sort.SliceStable(sorted, func(i, j int) bool {
			return CountSameDimensions(sorted, sorted[i])*sorted[i].Width() > CountSameDimensions(sorted, sorted[j])*sorted[j].Width()
		})
	case models.LargestWHToFill:
		sort.SliceStable(sorted, func(i, j int) bool {
			fi := CountSameDimensions(sorted, sorted[i]) * sorted[i].Width() * sorted[i].Height()
			fj := CountSameDimensions(sorted, sorted[j]) * sorted[j].Width() * sorted[j].Height()
			return fi > fj
		})
	default:
		return nil
	}

	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}

// lessTuple3Desc orders (a1,a2,a3) before (b1,b2,b3) when it sorts strictly
// higher in descending lexicographic order.
func lessTuple3Desc(a1, a2, a3, b1, b2, b3 int) bool {
	if a1 != b1 {
		return a1 > b1
	}
	if a2 != b2 {
		return a2 > b2
	}
	return a3 > b3
}
