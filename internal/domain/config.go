package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ShippingArea is a named delivery zone with a flat fee.
type ShippingArea struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
}

type ShippingRepository interface {
	ListShippingAreas(ctx context.Context, sess *Session) ([]ShippingArea, error)
}

// FindShippingArea returns the area with the given id, or nil.
func FindShippingArea(areas []ShippingArea, id int64) *ShippingArea {
	for i := range areas {
		if areas[i].ID == id {
			return &areas[i]
		}
	}
	return nil
}
