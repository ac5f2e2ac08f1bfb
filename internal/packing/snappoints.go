package packing

import "github.com/philipparndt/cratepack/internal/geometry"

// Snappoints enumerates candidate anchor x-coordinates from the bin's
// heightmap. When minZ is non-nil, heights are clamped to it (z < minZ
// becomes minZ) and duplicate (x,z,direction) triples are dropped,
// preserving first occurrence.
func (b *Bin) Snappoints(minZ *int) []geometry.Snappoint {
	height := func(x int) int {
		h := b.heightmapZ[x]
		if minZ != nil && h < *minZ {
			h = *minZ
		}
		return h
	}

	type key struct {
		x, z int
		dir  geometry.SnappointDirection
	}
	seen := map[key]bool{}
	var out []geometry.Snappoint

	emit := func(x, z int, dir geometry.SnappointDirection) {
		k := key{x, z, dir}
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, geometry.Snappoint{X: x, Z: z, Direction: dir})
	}

	if b.Width == 0 {
		return out
	}

	emit(0, height(0), geometry.Right)
	for x := 1; x < b.Width; x++ {
		if height(x-1) != height(x) {
			emit(x, height(x-1), geometry.Left)
			emit(x, height(x), geometry.Right)
		}
	}
	emit(b.Width, height(b.Width-1), geometry.Left)

	return out
}
