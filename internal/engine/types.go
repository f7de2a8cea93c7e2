package engine

import "github.com/DoyleJ11/fracmatch/internal/fraction"

type ItemKind string

const (
	KindNumeric ItemKind = "numeric"
	KindVisual  ItemKind = "visual"
)

// Item is a draggable unit. Visual is nil for numeric items.
type Item struct {
	ID       string            `json:"id"`
	Kind     ItemKind          `json:"kind"`
	Fraction fraction.Fraction `json:"fraction"`
	Visual   *fraction.Visual  `json:"visual,omitempty"`
}

type Problem struct {
	ID      string `json:"id"`
	Numeric Item   `json:"numeric"`
	Visual  Item   `json:"visual"`
}

func (it Item) clone() Item {
	if it.Visual != nil {
		v := *it.Visual
		it.Visual = &v
	}
	return it
}
