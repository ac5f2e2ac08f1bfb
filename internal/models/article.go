package models

import "fmt"

// Article is an input descriptor: dimensions, weight and a requested count.
// It carries no placement state; SingleItem instances are derived from it.
type Article struct {
	ID     string  `json:"id" yaml:"id"`
	Width  int     `json:"width" yaml:"width"`
	Length int     `json:"length" yaml:"length"`
	Height int     `json:"height" yaml:"height"`
	Weight float64 `json:"weight" yaml:"weight"`
	Amount int     `json:"amount" yaml:"amount"`
}

// Validate rejects a statically invalid article: non-positive dimension or
// amount, or negative weight. The core engine assumes validated input; this
// check belongs to the boundary layer (internal/config).
func (a Article) Validate() error {
	if a.Width <= 0 || a.Length <= 0 || a.Height <= 0 {
		return fmt.Errorf("article %s: width, length and height must be > 0", a.ID)
	}
	if a.Amount <= 0 {
		return fmt.Errorf("article %s: amount must be >= 1", a.ID)
	}
	if a.Weight < 0 {
		return fmt.Errorf("article %s: weight must be >= 0", a.ID)
	}
	return nil
}

// FitsEnvelope reports whether the article's dimensions fit within a bin
// envelope of the given width/length/height, as required before an article
// is accepted into an order.
func (a Article) FitsEnvelope(width, length, height int) bool {
	return a.Width <= width && a.Length <= length && a.Height <= height
}
