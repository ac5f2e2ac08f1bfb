package packing

import (
	"github.com/philipparndt/cratepack/internal/models"
)

// PrepareItems turns the leaf items the order expands to into the list the
// packer actually schedules, applying the two optional grouping
// transformations, then padding item dimensions per config.PaddingX/
// PaddingLength. PaddingX widens every SingleItem's width unless
// PaddingXMinWidth is set, in which case only items narrower than that
// threshold are widened (the "smaller articles" safety distance);
// PaddingLength widens every SingleItem's length unconditionally. Padding
// is not applied to a GroupedItem produced by grouping, nor to its
// children: a group keeps its unpadded dimensions.
func PrepareItems(items []models.Item, config models.PackerConfiguration, binMaxLength int) []models.Item {
	prepared := append([]models.Item(nil), items...)

	if config.ItemGroupingMode != nil && *config.ItemGroupingMode == models.Lengthwise {
		prepared = groupLengthwise(prepared, binMaxLength)
	}
	if config.GroupNarrowItemsW > 0 {
		prepared = groupNarrowItemsHorizontally(prepared, config.GroupNarrowItemsW)
	}

	if config.PaddingX > 0 {
		for _, it := range prepared {
			si, ok := it.(*models.SingleItem)
			if !ok {
				continue
			}
			if config.PaddingXMinWidth == nil || si.W < *config.PaddingXMinWidth {
				si.W += config.PaddingX
			}
		}
	}

	if config.PaddingLength > 0 {
		for _, it := range prepared {
			if si, ok := it.(*models.SingleItem); ok {
				si.L += config.PaddingLength
			}
		}
	}

	return prepared
}

// groupLengthwise groups items lengthwise: among items strictly shorter
// than the allowed length, repeatedly take the first remaining item, find
// all others sharing (w,h), and greedily gather them end-to-end along y
// until the cumulative length would exceed the allowed length. Groups of at
// least two replace their members; singletons are left untouched.
func groupLengthwise(items []models.Item, maxLength int) []models.Item {
	remaining := append([]models.Item(nil), items...)
	var out []models.Item

	for len(remaining) > 0 {
		head := remaining[0]
		if head.Length() >= maxLength {
			out = append(out, head)
			remaining = remaining[1:]
			continue
		}

		var candidates []models.Item
		var rest []models.Item
		candidates = append(candidates, head)
		cumulative := head.Length()

		for _, other := range remaining[1:] {
			if other.Width() == head.Width() && other.Height() == head.Height() && cumulative+other.Length() <= maxLength {
				candidates = append(candidates, other)
				cumulative += other.Length()
			} else {
				rest = append(rest, other)
			}
		}

		if len(candidates) >= 2 {
			group, err := models.GroupItemsLengthwise(candidates, 0)
			if err == nil {
				out = append(out, group)
				remaining = rest
				continue
			}
		}

		out = append(out, head)
		remaining = rest
	}

	return out
}

// groupNarrowItemsHorizontally pairs narrow items side by side: among items
// with width <= threshold, repeatedly take the first, find one other item
// with identical (l,h), and pair them into a HORIZONTAL GroupedItem.
func groupNarrowItemsHorizontally(items []models.Item, threshold int) []models.Item {
	remaining := append([]models.Item(nil), items...)
	var out []models.Item

	for len(remaining) > 0 {
		head := remaining[0]
		if head.Width() > threshold {
			out = append(out, head)
			remaining = remaining[1:]
			continue
		}

		partnerIdx := -1
		for i, other := range remaining[1:] {
			if other.Width() <= threshold && other.Length() == head.Length() && other.Height() == head.Height() {
				partnerIdx = i + 1
				break
			}
		}

		if partnerIdx == -1 {
			out = append(out, head)
			remaining = remaining[1:]
			continue
		}

		partner := remaining[partnerIdx]
		group, err := models.GroupItemsHorizontally([]models.Item{head, partner}, 0)
		if err != nil {
			out = append(out, head)
			remaining = remaining[1:]
			continue
		}

		out = append(out, group)
		next := remaining[1:partnerIdx]
		next = append(next, remaining[partnerIdx+1:]...)
		remaining = next
	}

	return out
}
