package usecase

import (
	"storefront-bff/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Subtotal is Σ(price × quantity) rounded half-up to 2 decimals.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum.Round(2)
}

func WithShipping(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping)
}

// FinalTotal is not clamped: a discount larger than subtotal + shipping yields a negative total.
func FinalTotal(subtotal, discount, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(shipping)
}

// ResolveDiscount turns a coupon rule into an amount against the given subtotal.
func ResolveDiscount(subtotal decimal.Decimal, res domain.CouponResolution) decimal.Decimal {
	if res.DiscountType == domain.DiscountTypePercentage {
		return subtotal.Mul(res.Discount).Div(hundred).Round(2)
	}
	return res.Discount
}

// FormatAmount renders an amount the way the backend expects it: fixed to 2 decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type PriceSummary struct {
	Subtotal             decimal.Decimal       `json:"subtotal"`
	ShippingCost         decimal.Decimal       `json:"shippingCost"`
	SubtotalWithShipping decimal.Decimal       `json:"subtotalWithShipping"`
	Discount             decimal.Decimal       `json:"discount"`
	Total                decimal.Decimal       `json:"total"`
	Coupon               *domain.AppliedCoupon `json:"appliedCoupon"`
	ShippingArea         *domain.ShippingArea  `json:"selectedShippingArea"`
}

// Summarize computes every figure from its inputs; nothing here is cached.
// A nil area means zero shipping, a nil coupon zero discount.
func Summarize(lines []domain.CartLine, area *domain.ShippingArea, coupon *domain.AppliedCoupon) PriceSummary {
	shipping := decimal.Zero
	if area != nil {
		shipping = area.ShippingCost
	}
	discount := decimal.Zero
	if coupon != nil {
		discount = coupon.DiscountAmount
	}

	subtotal := Subtotal(lines)
	return PriceSummary{
		Subtotal:             subtotal,
		ShippingCost:         shipping,
		SubtotalWithShipping: WithShipping(subtotal, shipping),
		Discount:             discount,
		Total:                FinalTotal(subtotal, discount, shipping),
		Coupon:               coupon,
		ShippingArea:         area,
	}
}

// BuildOrderDraft snapshots the cart into a fresh draft for one submission.
func BuildOrderDraft(email string, lines []domain.CartLine, total decimal.Decimal) domain.OrderDraft {
	items := make([]domain.OrderDraftItem, 0, len(lines))
	for _, l := range lines {
		item := domain.OrderDraftItem{
			ProductID:        l.ProductID,
			ProductVariantID: l.ProductVariantID,
			Quantity:         l.Quantity,
			Price:            l.Price,
			Image:            l.Image,
		}
		if l.Variant != nil {
			v := *l.Variant
			item.VariantDetails = &v
		}
		items = append(items, item)
	}

	return domain.OrderDraft{
		Email:      email,
		TotalPrice: FormatAmount(total),
		Items:      items,
	}
}
