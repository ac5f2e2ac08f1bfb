package packing

import (
	"testing"

	"github.com/philipparndt/cratepack/internal/geometry"
)

func TestScoreBin_FullyUtilized(t *testing.T) {
	b := NewBin(4, 4, 4, 1.0, nil)
	if err := b.PackItem(item(4, 4, 4), geometry.Position{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}

	score := ScoreBin(b)
	if score <= 0 || score > 1 {
		t.Errorf("ScoreBin() = %v, want a value in (0,1]", score)
	}
}

func TestScoreBin_Empty(t *testing.T) {
	b := NewBin(4, 4, 4, 1.0, nil)
	if got := ScoreBin(b); got != 0.75 {
		t.Errorf("ScoreBin() on empty bin = %v, want 0.75 (three metrics default to 1, utilization is 0)", got)
	}
}

func TestEvaluate_DeduplicatesIdenticalVariants(t *testing.T) {
	build := func() *PackingVariant {
		v := &PackingVariant{}
		bin := NewBin(10, 10, 10, 1.0, nil)
		if err := bin.PackItem(item(2, 2, 2), geometry.Position{X: 0, Y: 0, Z: 0}); err != nil {
			t.Fatalf("PackItem() error = %v", err)
		}
		v.AddBin(bin)
		return v
	}

	evaluated := Evaluate([]*PackingVariant{build(), build()})
	if len(evaluated) != 1 {
		t.Errorf("Evaluate() returned %d variants, want 1 after dedup", len(evaluated))
	}
}

func TestEvaluate_KeepsDistinctVariants(t *testing.T) {
	first := &PackingVariant{}
	bin1 := NewBin(10, 10, 10, 1.0, nil)
	if err := bin1.PackItem(item(2, 2, 2), geometry.Position{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}
	first.AddBin(bin1)

	second := &PackingVariant{}
	bin2 := NewBin(10, 10, 10, 1.0, nil)
	if err := bin2.PackItem(item(5, 5, 5), geometry.Position{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}
	second.AddBin(bin2)

	evaluated := Evaluate([]*PackingVariant{first, second})
	if len(evaluated) != 2 {
		t.Errorf("Evaluate() returned %d variants, want 2 distinct", len(evaluated))
	}
}
