package packing

import (
	"testing"

	"github.com/philipparndt/cratepack/internal/geometry"
	"github.com/philipparndt/cratepack/internal/models"
)

func TestBuildPackedOrder_WiresPositionsAndDimensions(t *testing.T) {
	it := item(2, 3, 4)
	it.ID = "a1"

	bin := NewBin(10, 10, 10, 1.0, nil)
	if err := bin.PackItem(it, geometry.Position{X: 1, Y: 2, Z: 0, Rotation: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}

	variant := &PackingVariant{}
	variant.AddBin(bin)

	articles := []models.Article{{ID: "a1", Width: 2, Length: 3, Height: 4, Amount: 1}}
	evaluated := []EvaluatedVariant{{Variant: variant, Score: 0.5}}

	out := BuildPackedOrder("order-1", articles, evaluated)

	if out.OrderID != "order-1" {
		t.Errorf("OrderID = %q, want order-1", out.OrderID)
	}
	if len(out.PackingVariants) != 1 {
		t.Fatalf("PackingVariants = %d, want 1", len(out.PackingVariants))
	}

	collis := out.PackingVariants[0]
	if len(collis) != 1 {
		t.Fatalf("collis = %d, want 1", len(collis))
	}

	colli := collis[0]
	if colli.Colli != 1 || colli.ColliTotal != 1 {
		t.Errorf("colli numbering = %d/%d, want 1/1", colli.Colli, colli.ColliTotal)
	}
	if colli.ColliDimension != (ColliDimension{Width: 10, Length: 10, Height: 10}) {
		t.Errorf("ColliDimension = %+v, want the bin's envelope", colli.ColliDimension)
	}

	if len(colli.Positions) != 1 {
		t.Fatalf("Positions = %d, want 1", len(colli.Positions))
	}
	pos := colli.Positions[0]
	if pos.ArticleID != "a1" {
		t.Errorf("ArticleID = %q, want a1", pos.ArticleID)
	}
	if pos.X != 1 || pos.Y != 2 || pos.Z != 0 {
		t.Errorf("position = (%d,%d,%d), want (1,2,0)", pos.X, pos.Y, pos.Z)
	}

	center, ok := it.Centerpoint()
	if !ok {
		t.Fatalf("Centerpoint() ok = false for a packed item")
	}
	if pos.CenterpointX != float64(center.X) || pos.CenterpointY != float64(center.Y) || pos.CenterpointZ != float64(center.Z) {
		t.Errorf("centerpoint = (%v,%v,%v), want (%v,%v,%v)", pos.CenterpointX, pos.CenterpointY, pos.CenterpointZ, center.X, center.Y, center.Z)
	}
}

func TestBuildPackedOrder_NoVariants(t *testing.T) {
	out := BuildPackedOrder("order-2", nil, nil)
	if out.OrderID != "order-2" {
		t.Errorf("OrderID = %q, want order-2", out.OrderID)
	}
	if len(out.PackingVariants) != 0 {
		t.Errorf("PackingVariants = %d, want 0", len(out.PackingVariants))
	}
}

func TestBuildVariantOutput_SkipsUnpositionedLeaves(t *testing.T) {
	bin := NewBin(10, 10, 10, 1.0, nil)
	it := item(2, 2, 2)
	if err := bin.PackItem(it, geometry.Position{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}
	unpositioned := item(2, 2, 2)
	if err := bin.PackItem(unpositioned, geometry.Position{X: 2, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}
	unpositioned.Pack(nil)

	positions := buildPositions(bin)
	if len(positions) != 1 {
		t.Fatalf("buildPositions() = %d, want 1 (the unpositioned leaf is skipped)", len(positions))
	}
}
