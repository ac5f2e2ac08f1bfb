// Package packing implements the bin-packing engine: the heightmap-backed
// Bin, item grouping, the snappoint generator, the item selector, the
// layered packer loop, and the packing evaluator.
package packing

import (
	"fmt"
	"math"

	"github.com/philipparndt/cratepack/internal/geometry"
	"github.com/philipparndt/cratepack/internal/models"
)

// PlacementRejectReason enumerates why a can_pack/pack_item call failed.
// These are expected control signals inside the packer loop, not failures.
type PlacementRejectReason string

const (
	ReasonOutOfBounds       PlacementRejectReason = "OutOfBounds"
	ReasonOccupied          PlacementRejectReason = "Occupied"
	ReasonUnstable          PlacementRejectReason = "Unstable"
	ReasonOverhangUnstable  PlacementRejectReason = "OverhangUnstable"
	ReasonAlreadyPacked     PlacementRejectReason = "AlreadyPacked"
	ReasonNotOnTop          PlacementRejectReason = "NotOnTop"
)

// PlacementRejected is the error value returned by can_pack/pack_item/
// remove_item on failure.
type PlacementRejected struct {
	Reason  PlacementRejectReason
	Message string
}

func (e *PlacementRejected) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func rejected(reason PlacementRejectReason, format string, args ...any) *PlacementRejected {
	return &PlacementRejected{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Bin is a fixed-size cuboid container tracked via a width-indexed
// heightmap: heightmapZ[x] is the top-z occupied at column x, and
// heightmapLen[x] is the length of the topmost item at column x (used for
// overhang-stability checks on subsequent layers).
type Bin struct {
	Width, Length, Height int
	MaxLength             *int
	MaxWeight             *float64
	StabilityFactor       float64
	OverhangYStability    *float64 // nil means overhang is disallowed

	packedItems  []models.Item
	heightmapZ   []int
	heightmapLen []int
}

// NewBin creates an empty bin of the given envelope. stabilityFactor must be
// in [0,1]; overhangYStability, if non-nil, must be in [0.5,1).
func NewBin(width, length, height int, stabilityFactor float64, overhangYStability *float64) *Bin {
	b := &Bin{
		Width:              width,
		Length:             length,
		Height:             height,
		StabilityFactor:    stabilityFactor,
		OverhangYStability: overhangYStability,
		heightmapZ:         make([]int, width),
		heightmapLen:       make([]int, width),
	}
	for x := 0; x < width; x++ {
		b.heightmapLen[x] = length
	}
	return b
}

// PackedItems returns the items packed so far, in placement order.
func (b *Bin) PackedItems() []models.Item { return b.packedItems }

// Volume is width*length*height.
func (b *Bin) Volume() int { return b.Width * b.Length * b.Height }

// effectiveMaxOverhang returns the max allowed y-overhang for item given the
// bin's overhang stability factor, or 0 if overhang isn't allowed at all.
func (b *Bin) effectiveMaxOverhang(item models.Item) int {
	if b.OverhangYStability == nil {
		return 0
	}
	return item.MaxOverhangY(*b.OverhangYStability)
}

// CanPack is the pure placement predicate: checks the item is not already
// packed, containment, non-overlap and stability, applying the y-overhang
// relaxation when the bin allows it. position is the requested anchor
// (top-left-front corner) before any y-centering is applied.
func (b *Bin) CanPack(item models.Item, position geometry.Position) (geometry.Position, error) {
	if item.IsPacked() {
		return position, rejected(ReasonAlreadyPacked, "item %s already packed", item.Identifier())
	}

	w, l, h := item.Width(), item.Length(), item.Height()

	if position.X < 0 || position.X+w > b.Width {
		return position, rejected(ReasonOutOfBounds, "x footprint [%d,%d) exceeds bin width %d", position.X, position.X+w, b.Width)
	}
	if position.Z < 0 || position.Z+h > b.Height {
		return position, rejected(ReasonOutOfBounds, "z footprint [%d,%d) exceeds bin height %d", position.Z, position.Z+h, b.Height)
	}

	effectiveY := position.Y
	if l > b.Length {
		if b.OverhangYStability == nil {
			return position, rejected(ReasonOutOfBounds, "item length %d exceeds bin length %d and overhang is disabled", l, b.Length)
		}
		centered := position.Y - int(math.Floor(float64(l-b.Length)/2))
		maxOverhang := item.MaxOverhangY(*b.OverhangYStability)
		perSide := (l - b.Length) / 2
		if perSide > maxOverhang {
			return position, rejected(ReasonOverhangUnstable, "centered overhang %d exceeds max overhang %d", perSide, maxOverhang)
		}
		effectiveY = centered
	} else if b.OverhangYStability == nil {
		if position.Y < 0 || position.Y+l > b.Length {
			return position, rejected(ReasonOutOfBounds, "y footprint [%d,%d) exceeds bin length %d", position.Y, position.Y+l, b.Length)
		}
	}

	baseZ := -1
	mismatchCols := 0
	overhangCols := 0
	for x := position.X; x < position.X+w; x++ {
		topZ := b.heightmapZ[x]
		topLen := b.heightmapLen[x]

		if position.Z != 0 {
			if baseZ == -1 {
				baseZ = topZ
			}
			if topZ != position.Z {
				mismatchCols++
			}
			if topZ > position.Z {
				return position, rejected(ReasonOccupied, "column %d already occupied above z=%d", x, position.Z)
			}
		} else if topZ > 0 {
			return position, rejected(ReasonOccupied, "column %d already occupied at floor", x)
		}

		if effectiveY+l > topLen && position.Z > 0 {
			exceed := effectiveY + l - topLen
			maxOverhang := b.effectiveMaxOverhang(item)
			if b.OverhangYStability == nil || exceed > maxOverhang {
				overhangCols++
			}
		}
	}

	if position.Z > 0 {
		maxMismatch := int(math.Floor(float64(w) * (1 - b.StabilityFactor)))
		if mismatchCols > maxMismatch {
			return position, rejected(ReasonUnstable, "%d/%d width columns unsupported, max allowed %d", mismatchCols, w, maxMismatch)
		}
		if overhangCols > 0 {
			return position, rejected(ReasonOverhangUnstable, "%d width columns exceed supporting length beyond tolerance", overhangCols)
		}
	}

	return geometry.Position{X: position.X, Y: effectiveY, Z: position.Z, Rotation: position.Rotation}, nil
}

// PackItem validates the placement via CanPack, then commits it: appends
// the item (possibly y-centered), updates the heightmap columns, and
// recurses into a GroupedItem's children.
func (b *Bin) PackItem(item models.Item, position geometry.Position) error {
	resolved, err := b.CanPack(item, position)
	if err != nil {
		return err
	}

	item.Pack(&resolved)
	item.SetPlacementIndex(len(b.packedItems))
	b.packedItems = append(b.packedItems, item)

	topZ := resolved.Z + item.Height()
	for x := resolved.X; x < resolved.X+item.Width(); x++ {
		b.heightmapZ[x] = topZ
		b.heightmapLen[x] = item.Length()
	}
	return nil
}

// RemoveItem succeeds only if item is currently topmost in every one of its
// footprint columns, then removes it and rebuilds the heightmap from
// scratch from the remaining items.
func (b *Bin) RemoveItem(item models.Item) error {
	pos := item.Position()
	if pos == nil {
		return rejected(ReasonNotOnTop, "item %s is not packed", item.Identifier())
	}
	topZ := pos.Z + item.Height()
	for x := pos.X; x < pos.X+item.Width(); x++ {
		if b.heightmapZ[x] != topZ {
			return rejected(ReasonNotOnTop, "item %s is not topmost at column %d", item.Identifier(), x)
		}
	}

	idx := -1
	for i, packed := range b.packedItems {
		if packed == item {
			idx = i
			break
		}
	}
	if idx == -1 {
		return rejected(ReasonNotOnTop, "item %s is not in this bin", item.Identifier())
	}

	b.packedItems = append(b.packedItems[:idx], b.packedItems[idx+1:]...)
	item.Pack(nil)
	b.rebuildHeightmap()
	return nil
}

// rebuildHeightmap iterates packed items in decreasing z and writes each
// item's top into its columns only if the column is still lower.
func (b *Bin) rebuildHeightmap() {
	for x := 0; x < b.Width; x++ {
		b.heightmapZ[x] = 0
		b.heightmapLen[x] = b.Length
	}

	items := append([]models.Item(nil), b.packedItems...)
	sortItemsByZDesc(items)

	for _, it := range items {
		pos := it.Position()
		if pos == nil {
			continue
		}
		top := pos.Z + it.Height()
		for x := pos.X; x < pos.X+it.Width(); x++ {
			if top > b.heightmapZ[x] {
				b.heightmapZ[x] = top
				b.heightmapLen[x] = it.Length()
			}
		}
	}
}

func sortItemsByZDesc(items []models.Item) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			pi, pj := items[j].Position(), items[j-1].Position()
			if pi == nil || pj == nil {
				break
			}
			if pi.Z <= pj.Z {
				break
			}
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// Gap is a maximal interval [Start,End) of bin width whose columns are
// currently empty (top-z 0).
type Gap struct {
	Start, End int
}

// GetGaps scans the width axis for maximal empty-floor intervals.
func (b *Bin) GetGaps() []Gap {
	var gaps []Gap
	x := 0
	for x < b.Width {
		if b.heightmapZ[x] == 0 {
			start := x
			for x < b.Width && b.heightmapZ[x] == 0 {
				x++
			}
			gaps = append(gaps, Gap{Start: start, End: x})
		} else {
			x++
		}
	}
	return gaps
}

// RemoveGaps iterates gaps from right to left, shifting every item whose x
// is at or beyond the gap's end left by the gap's width, then rebuilds the
// heightmap from scratch rather than patching it incrementally.
func (b *Bin) RemoveGaps() {
	gaps := b.GetGaps()
	for i := len(gaps) - 1; i >= 0; i-- {
		gap := gaps[i]
		shift := gap.End - gap.Start
		if shift <= 0 {
			continue
		}
		for _, it := range b.packedItems {
			pos := it.Position()
			if pos != nil && pos.X >= gap.End {
				shifted := *pos
				shifted.X -= shift
				it.Pack(&shifted)
			}
		}
	}
	b.rebuildHeightmap()
}

// GetCenterOfGravity returns the weighted centroid of placed items, using
// weight or volume as mass. Returns the zero position if total mass is
// zero.
func (b *Bin) GetCenterOfGravity(useVolume bool) geometry.Position {
	var totalMass float64
	var sx, sy, sz float64

	for _, it := range b.packedItems {
		center, ok := it.Centerpoint()
		if !ok {
			continue
		}
		mass := it.Weight()
		if useVolume {
			mass = float64(it.Volume())
		}
		totalMass += mass
		sx += mass * float64(center.X)
		sy += mass * float64(center.Y)
		sz += mass * float64(center.Z)
	}

	if totalMass == 0 {
		return geometry.Position{}
	}
	return geometry.Position{
		X: int(sx / totalMass),
		Y: int(sy / totalMass),
		Z: int(sz / totalMass),
	}
}

// GetUsedVolume returns the sum of packed items' volume, optionally scaled
// to a percentage of the bin's own volume (integer truncation).
func (b *Bin) GetUsedVolume(percentage bool) int {
	used := 0
	for _, it := range b.packedItems {
		used += it.Volume()
	}
	if !percentage {
		return used
	}
	total := b.Volume()
	if total == 0 {
		return 0
	}
	return used * 100 / total
}

// HeightAt returns the current top-z at column x, used by the snappoint
// generator and the selector's new-layer detection.
func (b *Bin) HeightAt(x int) int { return b.heightmapZ[x] }

// TopLengthAt returns the length of the topmost item at column x.
func (b *Bin) TopLengthAt(x int) int { return b.heightmapLen[x] }

// MaxZ returns the current maximum occupied z across all columns.
func (b *Bin) MaxZ() int {
	max := 0
	for _, z := range b.heightmapZ {
		if z > max {
			max = z
		}
	}
	return max
}

// Equal is structural equality over packed item contents, used by
// PackingVariant.Equal and the evaluator's de-duplication.
func (b *Bin) Equal(other *Bin) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Width != other.Width || b.Length != other.Length || b.Height != other.Height {
		return false
	}
	if len(b.packedItems) != len(other.packedItems) {
		return false
	}
	for i := range b.packedItems {
		la := b.packedItems[i].Flatten()
		lb := other.packedItems[i].Flatten()
		if len(la) != len(lb) {
			return false
		}
		for j := range la {
			if !la[j].Equal(lb[j]) {
				return false
			}
		}
	}
	return true
}
