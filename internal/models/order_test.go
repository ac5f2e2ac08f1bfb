package models

import "testing"

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		order   Order
		wantErr bool
	}{
		{
			name: "valid order",
			order: Order{
				OrderID:      "o1",
				Articles:     []Article{{ID: "a1", Width: 2, Length: 2, Height: 2, Amount: 1}},
				ColliDetails: ColliDetails{Width: 10, Length: 10, Height: 10},
			},
			wantErr: false,
		},
		{
			name:    "no articles rejected",
			order:   Order{OrderID: "o1", ColliDetails: ColliDetails{Width: 10, Length: 10, Height: 10}},
			wantErr: true,
		},
		{
			name: "article exceeding envelope rejected",
			order: Order{
				OrderID:      "o1",
				Articles:     []Article{{ID: "a1", Width: 20, Length: 2, Height: 2, Amount: 1}},
				ColliDetails: ColliDetails{Width: 10, Length: 10, Height: 10},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrder_Items(t *testing.T) {
	order := Order{
		Articles: []Article{
			{ID: "a1", Width: 1, Length: 1, Height: 1, Amount: 3},
		},
	}

	items := order.Items()
	if len(items) != 3 {
		t.Fatalf("Items() returned %d items, want 3", len(items))
	}
	seen := map[string]bool{}
	for _, item := range items {
		seen[item.Identifier()] = true
	}
	if len(seen) != 3 {
		t.Errorf("Items() should have 3 distinct identifiers, got %d", len(seen))
	}
}
