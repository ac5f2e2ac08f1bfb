package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/cratepack/internal/models"
)

func validOrder() models.Order {
	return models.Order{
		OrderID: "o1",
		Articles: []models.Article{
			{ID: "a1", Width: 2, Length: 2, Height: 2, Amount: 1},
		},
		ColliDetails: models.ColliDetails{Width: 10, Length: 10, Height: 10, MaxCollis: 1},
	}
}

func TestLoader_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RunConfig
		wantErr bool
	}{
		{
			name:    "valid minimal config",
			cfg:     RunConfig{Order: validOrder(), NumBins: 1},
			wantErr: false,
		},
		{
			name:    "zero bins rejected",
			cfg:     RunConfig{Order: validOrder(), NumBins: 0},
			wantErr: true,
		},
		{
			name: "invalid order rejected",
			cfg: RunConfig{
				Order:   models.Order{OrderID: "o1"},
				NumBins: 1,
			},
			wantErr: true,
		},
	}

	l := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Validate(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := `
order:
  order_id: o1
  articles:
    - id: a1
      width: 2
      length: 2
      height: 2
      amount: 1
  colli_details:
    width: 10
    length: 10
    height: 10
    max_collis: 1
num_bins: 1
output_file: out.json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	l := NewLoader()
	cfg, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Order.OrderID != "o1" {
		t.Errorf("order_id = %q, want o1", cfg.Order.OrderID)
	}
	if !filepath.IsAbs(cfg.OutputFile) {
		t.Errorf("output_file should be resolved to an absolute path, got %q", cfg.OutputFile)
	}
}

func TestRunConfig_ReferenceBins(t *testing.T) {
	cfg := RunConfig{Order: validOrder(), NumBins: 3}
	bins := cfg.ReferenceBins()
	if len(bins) != 3 {
		t.Fatalf("ReferenceBins() returned %d bins, want 3", len(bins))
	}
	for _, b := range bins {
		if b.Width != 10 || b.Length != 10 || b.Height != 10 {
			t.Errorf("bin = %+v, want 10x10x10", b)
		}
	}
}

func TestRunConfig_EffectiveConfiguration(t *testing.T) {
	dist := 2
	cfg := RunConfig{
		Order: models.Order{
			ColliDetails: models.ColliDetails{
				Width: 10, Length: 10, Height: 10,
				SafetyDistanceSmallerArticles: &dist,
			},
		},
	}
	effective := cfg.EffectiveConfiguration()
	if effective.PaddingX != 2 {
		t.Errorf("PaddingX = %d, want 2", effective.PaddingX)
	}
}

func TestRunConfig_EffectiveConfiguration_TranslatesMinWidthAndLengthwise(t *testing.T) {
	dist := 2
	minWidth := 6
	lengthwise := 4
	cfg := RunConfig{
		Order: models.Order{
			ColliDetails: models.ColliDetails{
				Width: 10, Length: 10, Height: 10,
				SafetyDistanceSmallerArticles:   &dist,
				MinArticleWidthNoSafetyDistance: &minWidth,
				SafetyDistanceLengthwise:        &lengthwise,
			},
		},
	}
	effective := cfg.EffectiveConfiguration()
	if effective.PaddingXMinWidth == nil || *effective.PaddingXMinWidth != 6 {
		t.Errorf("PaddingXMinWidth = %v, want 6", effective.PaddingXMinWidth)
	}
	if effective.PaddingLength != 4 {
		t.Errorf("PaddingLength = %d, want 4", effective.PaddingLength)
	}
}
