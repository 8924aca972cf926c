package usecase

import (
	"context"
	"fmt"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"
)

// CartUsecase owns the session cart consumed read-only at checkout.
type CartUsecase struct {
	state       *ClientState
	maxQuantity int
}

func NewCartUsecase(state *ClientState, maxQuantity int) *CartUsecase {
	return &CartUsecase{state: state, maxQuantity: maxQuantity}
}

func (u *CartUsecase) GetCart(ctx context.Context, sess *domain.Session) (*domain.Cart, error) {
	return u.state.Cart(ctx, sess.ID)
}

// ReplaceCart stores the cart wholesale. Prices arrive as decimals, so a non-numeric price fails
// decoding before this point; the checks here cover the numeric ranges.
func (u *CartUsecase) ReplaceCart(ctx context.Context, sess *domain.Session, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		cart = &domain.Cart{}
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}

	verr := ValidationErrors{}
	for i, l := range cart.Lines {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case l.ProductID <= 0:
			verr[field+".product_id"] = "is required"
		case l.Quantity < 1:
			verr[field+".quantity"] = "must be at least 1"
		case u.maxQuantity > 0 && l.Quantity > u.maxQuantity:
			verr[field+".quantity"] = fmt.Sprintf("must be at most %d", u.maxQuantity)
		case l.Price.IsNegative():
			verr[field+".price"] = "must not be negative"
		}
	}
	if len(verr) > 0 {
		return nil, verr
	}

	if err := u.state.SaveCart(ctx, sess.ID, cart); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Debug().
		Str("session_id", sess.ID).
		Int("lines", len(cart.Lines)).
		Msg("Cart replaced")

	return cart, nil
}
