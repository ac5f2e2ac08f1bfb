package models

import (
	"fmt"
	"math"

	"github.com/philipparndt/cratepack/internal/geometry"
)

// Item is the sum type at the heart of the packing domain: a leaf
// SingleItem or a composite GroupedItem. Both satisfy this interface; there
// is no inheritance, only dispatch by dynamic type.
type Item interface {
	Identifier() string
	Width() int
	Length() int
	Height() int
	Weight() float64
	Position() *geometry.Position
	Pack(position *geometry.Position)
	PlacementIndex() int
	SetPlacementIndex(index int)

	// Volume is width*length*height.
	Volume() int
	// Surface is width*length.
	Surface() int
	// IsPacked reports whether Position is non-nil.
	IsPacked() bool
	// Centerpoint returns the item's geometric center; ok is false when the
	// item isn't packed.
	Centerpoint() (center geometry.Position, ok bool)
	// MaxOverhangY returns the largest y-overhang this item may be given
	// while still counting as stable, per the bin's overhang-stability rule:
	// floor(length * (1 - stabilityFactor)) for a SingleItem, the minimum
	// over its children for a GroupedItem.
	MaxOverhangY(stabilityFactor float64) int
	// Flatten returns the leaf SingleItems that make up this item, in
	// depth-first order. For a SingleItem this is itself.
	Flatten() []*SingleItem
	// Clone returns a deep, unpacked copy suitable for scheduling into a new
	// bin or variant.
	Clone() Item
}

// SingleItem is a leaf, non-decomposable placeable cuboid.
type SingleItem struct {
	ID     string
	W, L, H int
	Wt      float64
	Pos     *geometry.Position
	Index   int
}

// NewSingleItemFromArticle builds the working items the packer schedules
// from an Article, one per unit of amount. instance disambiguates the
// identifier for diagnostics (e.g. unpacked-item reporting).
func NewSingleItemFromArticle(article Article, instance int) *SingleItem {
	return &SingleItem{
		ID: fmt.Sprintf("%s#%d", article.ID, instance),
		W:  article.Width,
		L:  article.Length,
		H:  article.Height,
		Wt: article.Weight,
	}
}

func (i *SingleItem) Identifier() string { return i.ID }
func (i *SingleItem) Width() int         { return i.W }
func (i *SingleItem) Length() int        { return i.L }
func (i *SingleItem) Height() int        { return i.H }
func (i *SingleItem) Weight() float64    { return i.Wt }
func (i *SingleItem) Position() *geometry.Position { return i.Pos }
func (i *SingleItem) PlacementIndex() int          { return i.Index }
func (i *SingleItem) SetPlacementIndex(index int)  { i.Index = index }

func (i *SingleItem) Pack(position *geometry.Position) {
	i.Pos = position
}

func (i *SingleItem) Volume() int  { return i.W * i.L * i.H }
func (i *SingleItem) Surface() int { return i.W * i.L }
func (i *SingleItem) IsPacked() bool { return i.Pos != nil }

func (i *SingleItem) Centerpoint() (geometry.Position, bool) {
	if i.Pos == nil {
		return geometry.Position{}, false
	}
	return geometry.Position{
		X:        i.Pos.X + i.W/2,
		Y:        i.Pos.Y + i.L/2,
		Z:        i.Pos.Z + i.H/2,
		Rotation: i.Pos.Rotation,
	}, true
}

func (i *SingleItem) MaxOverhangY(stabilityFactor float64) int {
	// The small epsilon keeps exact products such as 100*(1-0.9) from
	// flooring one below their value because of binary rounding.
	return int(math.Floor(float64(i.L)*(1-stabilityFactor) + 1e-9))
}

func (i *SingleItem) Flatten() []*SingleItem { return []*SingleItem{i} }

func (i *SingleItem) Clone() Item {
	return &SingleItem{ID: i.ID, W: i.W, L: i.L, H: i.H, Wt: i.Wt}
}

// hashKey summarizes an item as (x, y, z, volume), with -1 coordinates when
// it is unpacked. Structural equality goes through Equal, not this key.
func (i *SingleItem) hashKey() [4]int {
	x, y, z := -1, -1, -1
	if i.Pos != nil {
		x, y, z = i.Pos.X, i.Pos.Y, i.Pos.Z
	}
	return [4]int{x, y, z, i.Volume()}
}

// Equal reports structural equality: same dimensions, weight and position.
func (i *SingleItem) Equal(other *SingleItem) bool {
	if i == nil || other == nil {
		return i == other
	}
	if i.W != other.W || i.L != other.L || i.H != other.H || i.Wt != other.Wt {
		return false
	}
	switch {
	case i.Pos == nil && other.Pos == nil:
		return true
	case i.Pos == nil || other.Pos == nil:
		return false
	default:
		return *i.Pos == *other.Pos
	}
}
