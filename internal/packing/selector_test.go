package packing

import (
	"testing"

	"github.com/philipparndt/cratepack/internal/geometry"
	"github.com/philipparndt/cratepack/internal/models"
)

func TestPositionForSnappoint(t *testing.T) {
	it := item(4, 4, 4)

	right := PositionForSnappoint(it, geometry.Snappoint{X: 6, Direction: geometry.Right})
	if right.X != 6 {
		t.Errorf("RIGHT anchor X = %d, want 6", right.X)
	}

	left := PositionForSnappoint(it, geometry.Snappoint{X: 6, Direction: geometry.Left})
	if left.X != 2 {
		t.Errorf("LEFT anchor X = %d, want 2", left.X)
	}
}

func TestIsNewLayer(t *testing.T) {
	b := NewBin(10, 10, 10, 1.0, nil)
	if !IsNewLayer(b, geometry.Snappoint{X: 0, Z: 0}) {
		t.Error("empty bin at z=0 should be a new layer")
	}

	if err := b.PackItem(item(4, 4, 4), geometry.Position{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("PackItem() error = %v", err)
	}
	if IsNewLayer(b, geometry.Snappoint{X: 0, Z: 0}) {
		t.Error("layer with an occupied column above z=0 should not be new")
	}
}

func TestSelectItem_ByStrategy(t *testing.T) {
	b := NewBin(10, 10, 10, 1.0, nil)
	sp := geometry.Snappoint{X: 0, Z: 0, Direction: geometry.Right}

	items := []models.Item{item(2, 2, 2), item(5, 5, 5)}
	cfg := models.DefaultPackerConfiguration()
	cfg.DefaultSelectStrategy = models.LargestVolume
	cfg.NewLayerSelectStrategy = models.LargestVolume

	picked := SelectItem(items, b, sp, 10, cfg, nil)
	if picked == nil || picked.Volume() != 125 {
		t.Errorf("SelectItem() picked volume %v, want 125 (the larger item)", picked)
	}
}

func TestSelectItem_NoneFit(t *testing.T) {
	b := NewBin(10, 10, 10, 1.0, nil)
	sp := geometry.Snappoint{X: 0, Z: 0, Direction: geometry.Right}

	items := []models.Item{item(20, 2, 2)}
	cfg := models.DefaultPackerConfiguration()

	if got := SelectItem(items, b, sp, 10, cfg, nil); got != nil {
		t.Errorf("SelectItem() = %v, want nil for an item that doesn't fit", got)
	}
}

func TestCountSameDimensions(t *testing.T) {
	items := []models.Item{item(2, 2, 2), item(2, 2, 2), item(3, 3, 3)}
	if got := CountSameDimensions(items, item(2, 2, 2)); got != 2 {
		t.Errorf("CountSameDimensions() = %d, want 2", got)
	}
}

func TestReserveLastMirrorPair_OnlyScopesNewLayerItemDimsClass(t *testing.T) {
	b := NewBin(10, 10, 10, 1.0, nil)
	sp := geometry.Snappoint{X: 8, Z: 0, Direction: geometry.Right}

	// Two instances of a 3-wide item (doubled=6, 8+6>10, would be reserved)
	// plus two instances of an unrelated 2-wide item that must survive
	// untouched regardless of its own doubled-width fit.
	items := []models.Item{item(3, 3, 3), item(3, 3, 3), item(2, 2, 2), item(2, 2, 2)}

	filtered := reserveLastMirrorPair(items, item(3, 3, 3), b, sp, 10)

	if len(filtered) != 2 {
		t.Fatalf("reserveLastMirrorPair() len = %d, want 2 (only the 3x3x3 pair reserved)", len(filtered))
	}
	for _, it := range filtered {
		if it.Width() != 2 {
			t.Errorf("surviving item width = %d, want 2 (the non-target dims-class)", it.Width())
		}
	}
}

func TestReserveLastMirrorPair_KeepsAllWhenDoubledFits(t *testing.T) {
	b := NewBin(10, 10, 10, 1.0, nil)
	sp := geometry.Snappoint{X: 0, Z: 0, Direction: geometry.Right}

	items := []models.Item{item(3, 3, 3), item(3, 3, 3)}

	filtered := reserveLastMirrorPair(items, item(3, 3, 3), b, sp, 10)
	if len(filtered) != 2 {
		t.Errorf("reserveLastMirrorPair() len = %d, want 2 (doubled width 6 fits in bin width 10)", len(filtered))
	}
}

func TestSelectByStrategy_AllVariants(t *testing.T) {
	items := []models.Item{item(2, 4, 6), item(6, 4, 2), item(4, 6, 2)}

	strategies := []models.ItemSelectStrategy{
		models.LargestVolume,
		models.LargestHWL,
		models.LargestWHL,
		models.LargestLHW,
		models.LargestLWH,
		models.LargestWToFill,
		models.LargestWHToFill,
	}

	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			got := selectByStrategy(items, s)
			if got == nil {
				t.Errorf("selectByStrategy(%v) = nil, want a pick", s)
			}
		})
	}
}
