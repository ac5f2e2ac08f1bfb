package models

import (
	"sort"

	"github.com/philipparndt/cratepack/internal/geometry"
)

// GroupItemsLengthwise packs items end-to-end along y (sorted by length
// ascending) and wraps them in a LENGTHWISE GroupedItem. All items must
// share width and height. Grounded on
// packutils/data/grouped_item.py:group_items_lengthwise.
func GroupItemsLengthwise(items []Item, paddingBetweenItems int) (*GroupedItem, error) {
	sorted := append([]Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Length() < sorted[j].Length() })

	offsets := make([]geometry.Position, len(sorted))
	yOffset := 0
	for i, item := range sorted {
		offsets[i] = geometry.Position{Y: yOffset}
		yOffset += item.Length() + paddingBetweenItems
	}
	return NewGroupedItem(Lengthwise, sorted, offsets)
}

// GroupItemsHorizontally packs items side-by-side along x (sorted by width
// ascending) and wraps them in a HORIZONTAL GroupedItem. All items must
// share height. Grounded on
// packutils/data/grouped_item.py:group_items_horizontally.
func GroupItemsHorizontally(items []Item, paddingBetweenItems int) (*GroupedItem, error) {
	sorted := append([]Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Width() < sorted[j].Width() })

	offsets := make([]geometry.Position, len(sorted))
	xOffset := 0
	for i, item := range sorted {
		offsets[i] = geometry.Position{X: xOffset}
		xOffset += item.Width() + paddingBetweenItems
	}
	return NewGroupedItem(Horizontal, sorted, offsets)
}

// GroupItemsVertically stacks items along z (sorted by width ascending) and
// wraps them in a VERTICAL GroupedItem. This grouping mode is implemented
// but never reachable from configuration input.
func GroupItemsVertically(items []Item) (*GroupedItem, error) {
	sorted := append([]Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Width() < sorted[j].Width() })

	offsets := make([]geometry.Position, len(sorted))
	zOffset := 0
	for i, item := range sorted {
		offsets[i] = geometry.Position{Z: zOffset}
		zOffset += item.Height()
	}
	return NewGroupedItem(Vertical, sorted, offsets)
}
