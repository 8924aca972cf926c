package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"

	"github.com/shopspring/decimal"
)

// CouponUsecase resolves coupon codes against the backend and keeps the applied result in client state.
type CouponUsecase struct {
	couponRepo domain.CouponRepository
	state      *ClientState
}

func NewCouponUsecase(couponRepo domain.CouponRepository, state *ClientState) *CouponUsecase {
	return &CouponUsecase{
		couponRepo: couponRepo,
		state:      state,
	}
}

// Apply resolves code against the current cart subtotal and persists the resolved amount.
// Any failure clears a previously applied coupon; the backend's message is kept in the returned error.
func (u *CouponUsecase) Apply(ctx context.Context, sess *domain.Session, code string) (*domain.AppliedCoupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ValidationErrors{"coupon_code": "is required"}
	}

	cart, err := u.state.Cart(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	subtotal := Subtotal(cart.Lines)

	applied, err := u.resolve(ctx, sess, code, subtotal)
	if err != nil {
		if clearErr := u.state.ClearAppliedCoupon(ctx, sess.ID); clearErr != nil {
			logger.WithContext(ctx).Error().Err(clearErr).Msg("Failed to clear applied coupon")
		}
		return nil, err
	}

	if err := u.state.SaveAppliedCoupon(ctx, sess.ID, applied); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().
		Str("coupon_code", code).
		Str("discount", FormatAmount(applied.DiscountAmount)).
		Msg("Coupon applied")

	return applied, nil
}

// Revalidate re-resolves the stored coupon against the backend and the given subtotal.
// It returns nil when no coupon is applied. A rejected coupon is removed from state.
func (u *CouponUsecase) Revalidate(ctx context.Context, sess *domain.Session, subtotal decimal.Decimal) (*domain.AppliedCoupon, error) {
	stored, err := u.state.AppliedCoupon(ctx, sess.ID)
	if err != nil || stored == nil {
		return nil, err
	}

	fresh, err := u.resolve(ctx, sess, stored.CouponCode, subtotal)
	if err != nil {
		if errors.Is(err, ErrCouponRejected) {
			if clearErr := u.state.ClearAppliedCoupon(ctx, sess.ID); clearErr != nil {
				logger.WithContext(ctx).Error().Err(clearErr).Msg("Failed to clear rejected coupon")
			}
		}
		return nil, err
	}

	if !fresh.DiscountAmount.Equal(stored.DiscountAmount) || fresh.DiscountType != stored.DiscountType {
		logger.WithContext(ctx).Info().
			Str("coupon_code", fresh.CouponCode).
			Str("stored", FormatAmount(stored.DiscountAmount)).
			Str("fresh", FormatAmount(fresh.DiscountAmount)).
			Msg("Coupon discount changed since it was applied")
		if err := u.state.SaveAppliedCoupon(ctx, sess.ID, fresh); err != nil {
			return nil, err
		}
	}
	return fresh, nil
}

// resolve marks client-side backend rejections (4xx) with ErrCouponRejected; other failures pass through.
func (u *CouponUsecase) resolve(ctx context.Context, sess *domain.Session, code string, subtotal decimal.Decimal) (*domain.AppliedCoupon, error) {
	res, err := u.couponRepo.ApplyCoupon(ctx, sess, code)
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status < 500 {
			return nil, fmt.Errorf("%w: %w", ErrCouponRejected, err)
		}
		return nil, fmt.Errorf("apply coupon: %w", err)
	}

	return &domain.AppliedCoupon{
		CouponCode:     code,
		DiscountAmount: ResolveDiscount(subtotal, *res),
		DiscountType:   res.DiscountType,
	}, nil
}
