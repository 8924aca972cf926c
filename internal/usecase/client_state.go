package usecase

import (
	"context"
	"errors"
	"fmt"

	"storefront-bff/internal/domain"

	"github.com/goccy/go-json"
)

// ClientState is the typed view over the per-session state store.
type ClientState struct {
	repo domain.ClientStateRepository
}

func NewClientState(repo domain.ClientStateRepository) *ClientState {
	return &ClientState{repo: repo}
}

// load decodes the value under key into dst. It reports false when the key is absent.
func (s *ClientState) load(ctx context.Context, sessionID, key string, dst any) (bool, error) {
	raw, err := s.repo.Get(ctx, sessionID, key)
	if errors.Is(err, domain.ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *ClientState) store(ctx context.Context, sessionID, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.repo.Put(ctx, sessionID, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Cart never returns nil; an absent cart is an empty one.
func (s *ClientState) Cart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart := &domain.Cart{}
	if _, err := s.load(ctx, sessionID, domain.StateKeyCart, cart); err != nil {
		return nil, err
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	return cart, nil
}

func (s *ClientState) SaveCart(ctx context.Context, sessionID string, cart *domain.Cart) error {
	return s.store(ctx, sessionID, domain.StateKeyCart, cart)
}

// AppliedCoupon returns nil when no coupon is applied.
func (s *ClientState) AppliedCoupon(ctx context.Context, sessionID string) (*domain.AppliedCoupon, error) {
	var c domain.AppliedCoupon
	found, err := s.load(ctx, sessionID, domain.StateKeyAppliedCoupon, &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

func (s *ClientState) SaveAppliedCoupon(ctx context.Context, sessionID string, c *domain.AppliedCoupon) error {
	return s.store(ctx, sessionID, domain.StateKeyAppliedCoupon, c)
}

func (s *ClientState) ClearAppliedCoupon(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID, domain.StateKeyAppliedCoupon)
}

// ShippingArea returns the persisted selection, or nil.
func (s *ClientState) ShippingArea(ctx context.Context, sessionID string) (*domain.ShippingArea, error) {
	var a domain.ShippingArea
	found, err := s.load(ctx, sessionID, domain.StateKeyShippingArea, &a)
	if err != nil || !found {
		return nil, err
	}
	return &a, nil
}

func (s *ClientState) SaveShippingArea(ctx context.Context, sessionID string, a *domain.ShippingArea) error {
	return s.store(ctx, sessionID, domain.StateKeyShippingArea, a)
}

func (s *ClientState) ClearShippingArea(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID, domain.StateKeyShippingArea)
}

// RecentOrder is the raw backend record of the last placed order, or nil.
func (s *ClientState) RecentOrder(ctx context.Context, sessionID string) (domain.RawJSON, error) {
	var rec domain.RawJSON
	found, err := s.load(ctx, sessionID, domain.StateKeyRecentOrder, &rec)
	if err != nil || !found {
		return nil, err
	}
	return rec, nil
}

func (s *ClientState) Orders(ctx context.Context, sessionID string) ([]domain.RawJSON, error) {
	orders := []domain.RawJSON{}
	if _, err := s.load(ctx, sessionID, domain.StateKeyOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PendingPaymentIntent returns the confirmed card payment still waiting for its order, or nil.
func (s *ClientState) PendingPaymentIntent(ctx context.Context, sessionID string) (*domain.PendingPaymentIntent, error) {
	var p domain.PendingPaymentIntent
	found, err := s.load(ctx, sessionID, domain.StateKeyPendingPaymentIntent, &p)
	if err != nil || !found || p.ID == "" {
		return nil, err
	}
	return &p, nil
}

func (s *ClientState) SavePendingPaymentIntent(ctx context.Context, sessionID string, p *domain.PendingPaymentIntent) error {
	return s.store(ctx, sessionID, domain.StateKeyPendingPaymentIntent, p)
}

// FinalizeOrder applies every post-order change in one write: the order joins the order list,
// the cart empties, recentOrder is overwritten, coupon, shipping selection and any pending card
// payment are removed.
func (s *ClientState) FinalizeOrder(ctx context.Context, sessionID string, record domain.RawJSON) error {
	emptyCart, err := json.Marshal(&domain.Cart{Lines: []domain.CartLine{}})
	if err != nil {
		return err
	}

	m := domain.StateMutation{
		Puts: map[string][]byte{
			domain.StateKeyCart:        emptyCart,
			domain.StateKeyRecentOrder: []byte(record),
		},
		Appends: map[string][]byte{
			domain.StateKeyOrders: []byte(record),
		},
		Deletes: []string{
			domain.StateKeyAppliedCoupon,
			domain.StateKeyShippingArea,
			domain.StateKeyPendingPaymentIntent,
		},
	}
	if err := s.repo.Apply(ctx, sessionID, m); err != nil {
		return fmt.Errorf("finalize order state: %w", err)
	}
	return nil
}
