package domain

import (
	"github.com/shopspring/decimal"
)

// --- Cart Entities ---

// VariantDetails is the denormalised color/size pair shown next to a cart line.
type VariantDetails struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

type CartLine struct {
	ID               int64           `json:"id,omitempty"`
	ProductID        int64           `json:"product_id"`
	ProductVariantID *int64          `json:"product_variant_id"`
	Name             string          `json:"name,omitempty"`
	Price            decimal.Decimal `json:"price"` // Unit price
	Quantity         int             `json:"quantity"`
	Image            string          `json:"image,omitempty"`
	Variant          *VariantDetails `json:"product_variant,omitempty"`
}

// LineTotal is price × quantity, unrounded.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Lines []CartLine `json:"items"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}
