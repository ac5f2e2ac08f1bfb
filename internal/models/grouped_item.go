package models

import (
	"fmt"
	"sort"

	"github.com/philipparndt/cratepack/internal/geometry"
)

// ItemGroupingMode selects how a GroupedItem's children are laid out
// relative to one another.
type ItemGroupingMode int

const (
	Lengthwise ItemGroupingMode = iota
	Horizontal
	Vertical
)

func (m ItemGroupingMode) String() string {
	switch m {
	case Lengthwise:
		return "LENGTHWISE"
	case Horizontal:
		return "HORIZONTAL"
	case Vertical:
		return "VERTICAL"
	default:
		return "UNKNOWN"
	}
}

// GroupedItem is a virtual super-item bundling several items into a single
// placement unit. Its own dimensions are derived from its children and
// their offsets; packing it at a position packs every child at
// position+offset.
type GroupedItem struct {
	ID              string
	Mode            ItemGroupingMode
	Children        []Item
	Offsets         []geometry.Position
	w, l, h         int
	weight          float64
	Pos             *geometry.Position
	Index           int
}

// NewGroupedItem validates the mode-specific invariants and computes the
// group's aggregate dimensions. Returns an error (ConfigurationError
// territory) if children/offsets are inconsistent.
func NewGroupedItem(mode ItemGroupingMode, children []Item, offsets []geometry.Position) (*GroupedItem, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("grouped item: no children")
	}
	if len(children) != len(offsets) {
		return nil, fmt.Errorf("grouped item: %d children but %d offsets", len(children), len(offsets))
	}

	g := &GroupedItem{Mode: mode, Children: children, Offsets: offsets}

	switch mode {
	case Lengthwise:
		w, h := children[0].Width(), children[0].Height()
		for _, c := range children {
			if c.Width() != w || c.Height() != h {
				return nil, fmt.Errorf("grouped item (lengthwise): children must share width and height")
			}
		}
		for _, o := range offsets {
			if o.X != 0 || o.Z != 0 {
				return nil, fmt.Errorf("grouped item (lengthwise): only y offsets are allowed")
			}
		}
		if overlapping1D(offsets, offsetY, children, lengthOf) {
			return nil, fmt.Errorf("grouped item (lengthwise): overlapping offsets")
		}
		maxEnd := offsets[0].Y + children[0].Length()
		minStart := offsets[0].Y
		for i, c := range children {
			if end := offsets[i].Y + c.Length(); end > maxEnd {
				maxEnd = end
			}
			if offsets[i].Y < minStart {
				minStart = offsets[i].Y
			}
		}
		g.w, g.h, g.l = w, h, maxEnd-minStart

	case Horizontal:
		h := children[0].Height()
		for _, c := range children {
			if c.Height() != h {
				return nil, fmt.Errorf("grouped item (horizontal): children must share height")
			}
		}
		for _, o := range offsets {
			if o.Y != 0 || o.Z != 0 {
				return nil, fmt.Errorf("grouped item (horizontal): only x offsets are allowed")
			}
		}
		if overlapping1D(offsets, offsetX, children, widthOf) {
			return nil, fmt.Errorf("grouped item (horizontal): overlapping offsets")
		}
		maxLength := 0
		for _, c := range children {
			if c.Length() > maxLength {
				maxLength = c.Length()
			}
		}
		maxEnd := offsets[0].X + children[0].Width()
		minStart := offsets[0].X
		for i, c := range children {
			if end := offsets[i].X + c.Width(); end > maxEnd {
				maxEnd = end
			}
			if offsets[i].X < minStart {
				minStart = offsets[i].X
			}
		}
		g.h, g.l, g.w = h, maxLength, maxEnd-minStart

	case Vertical:
		w := children[0].Width()
		for _, c := range children {
			if c.Width() != w {
				return nil, fmt.Errorf("grouped item (vertical): children must share width")
			}
		}
		for _, o := range offsets {
			if o.X != 0 || o.Y != 0 {
				return nil, fmt.Errorf("grouped item (vertical): only z offsets are allowed")
			}
		}
		maxLength := 0
		sumHeight := 0
		for _, c := range children {
			if c.Length() > maxLength {
				maxLength = c.Length()
			}
			sumHeight += c.Height()
		}
		g.w, g.l, g.h = w, maxLength, sumHeight

	default:
		return nil, fmt.Errorf("grouped item: unknown grouping mode %v", mode)
	}

	weight := 0.0
	for _, c := range children {
		weight += c.Weight()
	}
	g.weight = weight
	g.ID = fmt.Sprintf("ItemGroup (%s): %d items %dx%dx%d", mode, len(children), g.w, g.l, g.h)
	g.Index = -1
	return g, nil
}

func offsetX(p geometry.Position) int { return p.X }
func offsetY(p geometry.Position) int { return p.Y }
func widthOf(i Item) int              { return i.Width() }
func lengthOf(i Item) int             { return i.Length() }

// overlapping1D reports whether, sorted by the chosen offset axis, any two
// children's intervals [offset, offset+extent) overlap.
func overlapping1D(offsets []geometry.Position, axis func(geometry.Position) int, children []Item, extent func(Item) int) bool {
	type pair struct {
		offset int
		extent int
	}
	pairs := make([]pair, len(children))
	for i := range children {
		pairs[i] = pair{axis(offsets[i]), extent(children[i])}
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].offset < pairs[b].offset })

	cursor := pairs[0].offset - 1
	for _, p := range pairs {
		if cursor > p.offset {
			return true
		}
		cursor = p.offset + p.extent
	}
	return false
}

func (g *GroupedItem) Identifier() string          { return g.ID }
func (g *GroupedItem) Width() int                  { return g.w }
func (g *GroupedItem) Length() int                 { return g.l }
func (g *GroupedItem) Height() int                 { return g.h }
func (g *GroupedItem) Weight() float64             { return g.weight }
func (g *GroupedItem) Position() *geometry.Position { return g.Pos }
func (g *GroupedItem) PlacementIndex() int          { return g.Index }
func (g *GroupedItem) SetPlacementIndex(index int)  { g.Index = index }

func (g *GroupedItem) Volume() int  { return g.w * g.l * g.h }
func (g *GroupedItem) Surface() int { return g.w * g.l }
func (g *GroupedItem) IsPacked() bool { return g.Pos != nil }

func (g *GroupedItem) Centerpoint() (geometry.Position, bool) {
	if g.Pos == nil {
		return geometry.Position{}, false
	}
	return geometry.Position{
		X:        g.Pos.X + g.w/2,
		Y:        g.Pos.Y + g.l/2,
		Z:        g.Pos.Z + g.h/2,
		Rotation: g.Pos.Rotation,
	}, true
}

// Pack places the group at position and recursively packs every child at
// position+offset.
func (g *GroupedItem) Pack(position *geometry.Position) {
	g.Pos = position
	if position == nil {
		for _, c := range g.Children {
			c.Pack(nil)
		}
		return
	}
	for idx, c := range g.Children {
		childPos := position.Add(g.Offsets[idx])
		c.Pack(&childPos)
	}
}

// MaxOverhangY is the minimum over children, matching the Python source's
// grouped_item.get_max_overhang_y: a group can only overhang as much as its
// least tolerant child.
func (g *GroupedItem) MaxOverhangY(stabilityFactor float64) int {
	min := g.Children[0].MaxOverhangY(stabilityFactor)
	for _, c := range g.Children[1:] {
		if v := c.MaxOverhangY(stabilityFactor); v < min {
			min = v
		}
	}
	return min
}

// Flatten recursively collects the leaf SingleItems of every child.
func (g *GroupedItem) Flatten() []*SingleItem {
	var out []*SingleItem
	for _, c := range g.Children {
		out = append(out, c.Flatten()...)
	}
	return out
}

func (g *GroupedItem) Clone() Item {
	children := make([]Item, len(g.Children))
	for i, c := range g.Children {
		children[i] = c.Clone()
	}
	offsets := make([]geometry.Position, len(g.Offsets))
	copy(offsets, g.Offsets)
	clone, _ := NewGroupedItem(g.Mode, children, offsets)
	return clone
}
