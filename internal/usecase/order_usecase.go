package usecase

import (
	"context"

	"storefront-bff/internal/domain"
)

// OrderUsecase reads the session's order history kept after each successful checkout.
type OrderUsecase struct {
	state *ClientState
}

func NewOrderUsecase(state *ClientState) *OrderUsecase {
	return &OrderUsecase{state: state}
}

// RecentOrder returns the raw record of the last order, or nil.
func (u *OrderUsecase) RecentOrder(ctx context.Context, sess *domain.Session) (domain.RawJSON, error) {
	return u.state.RecentOrder(ctx, sess.ID)
}

func (u *OrderUsecase) ListOrders(ctx context.Context, sess *domain.Session) ([]domain.RawJSON, error) {
	return u.state.Orders(ctx, sess.ID)
}
