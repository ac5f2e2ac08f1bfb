package packing

import (
	"testing"

	"github.com/philipparndt/cratepack/internal/geometry"
)

func TestBin_Snappoints_EmptyBin(t *testing.T) {
	b := NewBin(10, 10, 10, 1.0, nil)

	sps := b.Snappoints(nil)
	want := []geometry.Snappoint{
		{X: 0, Z: 0, Direction: geometry.Right},
		{X: 10, Z: 0, Direction: geometry.Left},
	}
	if len(sps) != len(want) {
		t.Fatalf("Snappoints() = %+v, want %+v", sps, want)
	}
	for i := range want {
		if sps[i] != want[i] {
			t.Errorf("Snappoints()[%d] = %+v, want %+v", i, sps[i], want[i])
		}
	}
}

func TestBin_Snappoints_StepBetweenItems(t *testing.T) {
	b := NewBin(10, 10, 10, 1.0, nil)
	if err := b.PackItem(item(4, 4, 4), geometry.Position{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}

	sps := b.Snappoints(nil)

	found := false
	for _, sp := range sps {
		if sp.X == 4 && sp.Direction == geometry.Left && sp.Z == 4 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a LEFT snappoint at x=4,z=4 in %+v", sps)
	}
}

func TestBin_Snappoints_DedupesWithMinZClamp(t *testing.T) {
	b := NewBin(10, 10, 10, 1.0, nil)
	if err := b.PackItem(item(4, 4, 2), geometry.Position{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}
	if err := b.PackItem(item(6, 4, 4), geometry.Position{X: 4, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}

	minZ := 4
	sps := b.Snappoints(&minZ)

	seen := map[geometry.Snappoint]bool{}
	for _, sp := range sps {
		if seen[sp] {
			t.Errorf("duplicate snappoint %+v", sp)
		}
		seen[sp] = true
	}
}
