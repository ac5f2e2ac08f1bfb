package packing

import "github.com/philipparndt/cratepack/internal/models"

// PackingVariant is one concrete (bins, unpacked_items) packing outcome.
// Equality is structural over bin contents and unpacked residue.
type PackingVariant struct {
	Bins           []*Bin
	UnpackedItems  []UnpackedItem
	Configurations []models.PackerConfiguration
}

// UnpackedItem is an item that never found a placement in any bin, paired
// with an optional diagnostic. Accumulating unpacked items does not make
// the variant a failure.
type UnpackedItem struct {
	Item   models.Item
	Reason string
}

// AddBin appends a non-empty bin to the variant. Empty bins are dropped
// entirely and never appear in the output.
func (v *PackingVariant) AddBin(bin *Bin) {
	if bin != nil && len(bin.PackedItems()) > 0 {
		v.Bins = append(v.Bins, bin)
	}
}

// AddUnpacked records residue that never found a home.
func (v *PackingVariant) AddUnpacked(item models.Item, reason string) {
	v.UnpackedItems = append(v.UnpackedItems, UnpackedItem{Item: item, Reason: reason})
}

// Equal is structural equality: same bins (in order, by content) and same
// unpacked residue (order-independent, compared by leaf dimension
// multiset).
func (v *PackingVariant) Equal(other *PackingVariant) bool {
	if v == nil || other == nil {
		return v == other
	}
	if len(v.Bins) != len(other.Bins) || len(v.UnpackedItems) != len(other.UnpackedItems) {
		return false
	}
	for i := range v.Bins {
		if !v.Bins[i].Equal(other.Bins[i]) {
			return false
		}
	}
	aLeaves := unpackedLeafKeys(v.UnpackedItems)
	bLeaves := unpackedLeafKeys(other.UnpackedItems)
	if len(aLeaves) != len(bLeaves) {
		return false
	}
	for k, n := range aLeaves {
		if bLeaves[k] != n {
			return false
		}
	}
	return true
}

func unpackedLeafKeys(items []UnpackedItem) map[[3]int]int {
	out := map[[3]int]int{}
	for _, u := range items {
		for _, leaf := range u.Item.Flatten() {
			out[[3]int{leaf.W, leaf.L, leaf.H}]++
		}
	}
	return out
}
