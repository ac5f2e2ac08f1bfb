package packing

import "github.com/philipparndt/cratepack/internal/models"

// PositionOutput is one placed article in the wire schema.
type PositionOutput struct {
	ArticleID    string  `json:"article_id"`
	X            int     `json:"x"`
	Y            int     `json:"y"`
	Z            int     `json:"z"`
	Rotation     int     `json:"rotation"`
	CenterpointX float64 `json:"centerpoint_x"`
	CenterpointY float64 `json:"centerpoint_y"`
	CenterpointZ float64 `json:"centerpoint_z"`
}

// ColliDimension is a bin's outer envelope in the wire schema.
type ColliDimension struct {
	Width  int `json:"width"`
	Length int `json:"length"`
	Height int `json:"height"`
}

// ColliOutput is one packed bin in the wire schema.
type ColliOutput struct {
	Colli          int              `json:"colli"`
	ColliTotal     int              `json:"colli_total"`
	ColliDimension ColliDimension   `json:"colli_dimension"`
	Positions      []PositionOutput `json:"positions"`
}

// PackedOrder is the top-level output record written for a packed order.
type PackedOrder struct {
	OrderID         string             `json:"order_id"`
	Articles        []models.Article   `json:"articles"`
	PackingVariants [][]ColliOutput    `json:"packing_variants"`
}

// BuildPackedOrder converts aggregated, scored variants into the wire
// format. Articles are the order's original (aggregated) descriptors.
func BuildPackedOrder(orderID string, articles []models.Article, evaluated []EvaluatedVariant) PackedOrder {
	out := PackedOrder{OrderID: orderID, Articles: articles}
	for _, ev := range evaluated {
		out.PackingVariants = append(out.PackingVariants, buildVariantOutput(ev.Variant))
	}
	return out
}

func buildVariantOutput(variant *PackingVariant) []ColliOutput {
	total := len(variant.Bins)
	collis := make([]ColliOutput, 0, total)
	for i, bin := range variant.Bins {
		collis = append(collis, ColliOutput{
			Colli:      i + 1,
			ColliTotal: total,
			ColliDimension: ColliDimension{
				Width:  bin.Width,
				Length: bin.Length,
				Height: bin.Height,
			},
			Positions: buildPositions(bin),
		})
	}
	return collis
}

func buildPositions(bin *Bin) []PositionOutput {
	var positions []PositionOutput
	for _, item := range bin.PackedItems() {
		for _, leaf := range item.Flatten() {
			pos := leaf.Position()
			if pos == nil {
				continue
			}
			center, _ := leaf.Centerpoint()
			positions = append(positions, PositionOutput{
				ArticleID:    leaf.Identifier(),
				X:            pos.X,
				Y:            pos.Y,
				Z:            pos.Z,
				Rotation:     pos.Rotation,
				CenterpointX: float64(center.X),
				CenterpointY: float64(center.Y),
				CenterpointZ: float64(center.Z),
			})
		}
	}
	return positions
}
