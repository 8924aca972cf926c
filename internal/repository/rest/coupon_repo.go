package rest

import (
	"context"
	"net/http"

	"storefront-bff/internal/domain"
)

type couponRepository struct {
	client *Client
}

func NewCouponRepository(c *Client) domain.CouponRepository {
	return &couponRepository{client: c}
}

type applyCouponReq struct {
	CouponCode string `json:"coupon_code"`
}

func (r *couponRepository) ApplyCoupon(ctx context.Context, sess *domain.Session, code string) (*domain.CouponResolution, error) {
	var res domain.CouponResolution
	err := r.client.do(ctx, http.MethodPost, []string{"api", "coupons", "apply"}, sess, applyCouponReq{CouponCode: code}, &res, requestOptions{})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
