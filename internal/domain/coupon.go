package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// CouponResolution is what the backend returns for a redeemable code: the rule, not the amount.
type CouponResolution struct {
	Discount     decimal.Decimal `json:"discount"`
	DiscountType DiscountType    `json:"discount_type"`
}

// AppliedCoupon is the persisted result of applying a coupon. DiscountAmount is already resolved
// against the subtotal at apply time.
type AppliedCoupon struct {
	CouponCode     string          `json:"couponCode"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	DiscountType   DiscountType    `json:"discount_type"`
}

type CouponRepository interface {
	ApplyCoupon(ctx context.Context, sess *Session, code string) (*CouponResolution, error)
}
