package models

import "fmt"

// ColliDetails describes the reference bin an Order is packed into, plus
// order-level packing knobs that the boundary layer translates into a
// PackerConfiguration before the engine ever sees them (see
// internal/config for that translation).
type ColliDetails struct {
	Width                           int      `json:"width" yaml:"width"`
	Length                          int      `json:"length" yaml:"length"`
	Height                          int      `json:"height" yaml:"height"`
	MaxCollis                       int      `json:"max_collis" yaml:"max_collis"`
	MaxLength                       *int     `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MaxWeight                       *float64 `json:"max_weight,omitempty" yaml:"max_weight,omitempty"`
	SafetyDistanceSmallerArticles   *int     `json:"safety_distance_smaller_articles,omitempty" yaml:"safety_distance_smaller_articles,omitempty"`
	MinArticleWidthNoSafetyDistance *int     `json:"min_article_width_no_safety_distance,omitempty" yaml:"min_article_width_no_safety_distance,omitempty"`
	SafetyDistanceLengthwise        *int     `json:"safety_distance_lengthwise,omitempty" yaml:"safety_distance_lengthwise,omitempty"`
}

// Order is a set of Articles to be packed together.
type Order struct {
	OrderID      string       `json:"order_id" yaml:"order_id"`
	Articles     []Article    `json:"articles" yaml:"articles"`
	Supplies     []Article    `json:"supplies,omitempty" yaml:"supplies,omitempty"`
	ColliDetails ColliDetails `json:"colli_details" yaml:"colli_details"`
}

// Validate rejects a statically invalid order: any invalid article, or any
// article whose dimensions exceed the bin envelope (width, max_length,
// height).
func (o Order) Validate() error {
	if len(o.Articles) == 0 {
		return fmt.Errorf("order %s: no articles", o.OrderID)
	}
	maxLength := o.ColliDetails.Length
	if o.ColliDetails.MaxLength != nil {
		maxLength = *o.ColliDetails.MaxLength
	}
	for _, a := range o.Articles {
		if err := a.Validate(); err != nil {
			return err
		}
		if !a.FitsEnvelope(o.ColliDetails.Width, maxLength, o.ColliDetails.Height) {
			return fmt.Errorf("article %s (%dx%dx%d) exceeds bin envelope (%dx%dx%d)",
				a.ID, a.Width, a.Length, a.Height,
				o.ColliDetails.Width, maxLength, o.ColliDetails.Height)
		}
	}
	return nil
}

// Items expands the order's articles into the working SingleItem list the
// packer schedules, one item per unit of amount.
func (o Order) Items() []Item {
	var items []Item
	for _, a := range o.Articles {
		for i := 1; i <= a.Amount; i++ {
			items = append(items, NewSingleItemFromArticle(a, i))
		}
	}
	return items
}
