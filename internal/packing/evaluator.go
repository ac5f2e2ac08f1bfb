package packing

import (
	"github.com/philipparndt/cratepack/internal/models"
)

// EvaluatedVariant pairs a unique packing variant with its score and the
// configurations that produced it.
type EvaluatedVariant struct {
	Variant        *PackingVariant
	Score          float64
	Configurations []models.PackerConfiguration
}

// Evaluate de-duplicates variants by structural equality over bins and
// unpacked residue, then scores each unique survivor.
func Evaluate(variants []*PackingVariant) []EvaluatedVariant {
	var unique []*PackingVariant
	configsByVariant := map[int][]models.PackerConfiguration{}

	for _, v := range variants {
		foundAt := -1
		for i, u := range unique {
			if u.Equal(v) {
				foundAt = i
				break
			}
		}
		if foundAt == -1 {
			unique = append(unique, v)
			foundAt = len(unique) - 1
		}
		configsByVariant[foundAt] = append(configsByVariant[foundAt], v.Configurations...)
	}

	out := make([]EvaluatedVariant, len(unique))
	for i, v := range unique {
		out[i] = EvaluatedVariant{
			Variant:        v,
			Score:          ScoreVariant(v),
			Configurations: configsByVariant[i],
		}
	}
	return out
}

// ScoreVariant is the mean of per-bin scores across a variant.
func ScoreVariant(v *PackingVariant) float64 {
	if len(v.Bins) == 0 {
		return 0
	}
	total := 0.0
	for _, bin := range v.Bins {
		total += ScoreBin(bin)
	}
	return total / float64(len(v.Bins))
}

// ScoreBin is the mean of four weighted metrics: item distribution, item
// stacking, item grouping, and utilized space.
func ScoreBin(b *Bin) float64 {
	return (itemDistribution(b) + itemStacking(b) + itemGrouping(b) + utilizedSpace(b)) / 4
}

// itemDistribution rewards placing larger items against the side walls.
func itemDistribution(b *Bin) float64 {
	items := b.PackedItems()
	used := b.GetUsedVolume(false)
	if used == 0 || len(items) == 0 {
		return 1
	}
	halfWidth := float64(b.Width) / 2
	total := 0.0
	for _, it := range items {
		pos := it.Position()
		if pos == nil {
			continue
		}
		distToWall := pos.X
		if alt := b.Width - pos.X - it.Width(); alt < distToWall {
			distToWall = alt
		}
		score := 1 - float64(distToWall)/halfWidth
		total += score * float64(it.Volume()) / float64(used)
	}
	return total
}

// itemStacking rewards putting smaller items on top of larger ones.
func itemStacking(b *Bin) float64 {
	items := b.PackedItems()
	if len(items) == 0 {
		return 1
	}
	total := 0.0
	for _, it := range items {
		pos := it.Position()
		if pos == nil {
			total += 1
			continue
		}
		below := belowNeighbors(items, it)
		if len(below) == 0 {
			total += 1
			continue
		}
		smaller := 0
		for _, other := range below {
			if other.Volume() < it.Volume() {
				smaller++
			}
		}
		total += 1 - float64(smaller)/float64(len(below))
	}
	return total / float64(len(items))
}

// belowNeighbors finds items placed strictly below it whose footprint
// overlaps it's half-width/half-length tolerance window.
func belowNeighbors(items []models.Item, it models.Item) []models.Item {
	pos := it.Position()
	var below []models.Item
	for _, other := range items {
		if other == it {
			continue
		}
		op := other.Position()
		if op == nil || op.Z+other.Height() > pos.Z {
			continue
		}
		if overlaps1D(pos.X, it.Width()/2+1, op.X, other.Width()) && overlaps1D(pos.Y, it.Length()/2+1, op.Y, other.Length()) {
			below = append(below, other)
		}
	}
	return below
}

func overlaps1D(aStart, aTolerance, bStart, bLen int) bool {
	aEnd := aStart + aTolerance
	bEnd := bStart + bLen
	return aStart < bEnd && bStart < aEnd
}

// itemGrouping rewards items of identical dimensions ending up as direct
// spatial neighbors.
func itemGrouping(b *Bin) float64 {
	items := b.PackedItems()
	partitions := map[[3]int][]models.Item{}
	for _, it := range items {
		k := dimsKey(it)
		partitions[k] = append(partitions[k], it)
	}

	var groupMeans []float64
	for _, group := range partitions {
		if len(group) < 2 {
			continue
		}
		divisor := len(group) - 1
		if divisor > 4 {
			divisor = 4
		}
		if divisor < 1 {
			divisor = 1
		}

		memberTotal := 0.0
		for _, it := range group {
			neighbors := 0
			pos := it.Position()
			if pos != nil {
				for _, other := range group {
					if other == it {
						continue
					}
					op := other.Position()
					if op == nil {
						continue
					}
					dx, dy, dz := pos.X-op.X, pos.Y-op.Y, pos.Z-op.Z
					if (abs(dx) == it.Width() && dy == 0 && dz == 0) ||
						(dx == 0 && abs(dy) == it.Length() && dz == 0) ||
						(dx == 0 && dy == 0 && abs(dz) == it.Height()) {
						neighbors++
					}
				}
			}
			memberTotal += float64(neighbors) / float64(divisor)
		}
		groupMeans = append(groupMeans, memberTotal/float64(len(group)))
	}

	if len(groupMeans) == 0 {
		return 1
	}
	sum := 0.0
	for _, m := range groupMeans {
		sum += m
	}
	return sum / float64(len(groupMeans))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// utilizedSpace is the fraction of the bin's volume that is occupied.
func utilizedSpace(b *Bin) float64 {
	if b.Volume() == 0 {
		return 0
	}
	return float64(b.GetUsedVolume(false)) / float64(b.Volume())
}
