package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Submission is everything a payment strategy needs for one order attempt.
// It is rebuilt for every attempt.
type Submission struct {
	Session        *domain.Session
	Draft          domain.OrderDraft
	Billing        domain.BillingDetails
	Total          decimal.Decimal
	Discount       decimal.Decimal
	ShippingAreaID *int64
	// IdempotencyKey is the client's key, if it sent one.
	IdempotencyKey string

	// Card
	PaymentMethodID string
	// Wallet
	PayPalOrderID string
	PayPalDetails domain.JSONB
}

// PaymentStrategy turns a submission into a persisted backend order.
type PaymentStrategy interface {
	Submit(ctx context.Context, sub *Submission) (*domain.Order, error)
}

// CardConfirmer confirms a payment intent with the shopper's payment method.
// A provider decline is returned as *DeclineError.
type CardConfirmer interface {
	ConfirmCardPayment(ctx context.Context, intentID, paymentMethodID string) error
}

// CardConfirmerFactory builds a confirmer for the store's secret key, read from the Stripe settings.
type CardConfirmerFactory func(secretKey string) CardConfirmer

func newOrderRequest(sub *Submission, method, status string) *domain.OrderRequest {
	return &domain.OrderRequest{
		OrderDraft:     sub.Draft,
		BillingDetails: sub.Billing,
		PaymentMethod:  method,
		PaymentStatus:  status,
		Discount:       FormatAmount(sub.Discount),
		ShippingAreaID: sub.ShippingAreaID,
	}
}

// intentIDFromSecret recovers "pi_123" from a client secret of the form "pi_123_secret_abc".
func intentIDFromSecret(clientSecret string) string {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found {
		return ""
	}
	return id
}

// --- Card ---

type CardStrategy struct {
	state      *ClientState
	payments   domain.PaymentRepository
	orders     domain.OrderRepository
	settings   *SettingsUsecase
	confirmers CardConfirmerFactory
}

func NewCardStrategy(state *ClientState, payments domain.PaymentRepository, orders domain.OrderRepository, settings *SettingsUsecase, confirmers CardConfirmerFactory) *CardStrategy {
	return &CardStrategy{
		state:      state,
		payments:   payments,
		orders:     orders,
		settings:   settings,
		confirmers: confirmers,
	}
}

// Submit creates the intent, confirms it, then posts the order. The three calls are strictly
// sequential; a failed confirmation ends the attempt before any order is posted.
// When an earlier attempt was charged but its order post failed, the order is re-posted under
// that intent and no new charge is made.
func (s *CardStrategy) Submit(ctx context.Context, sub *Submission) (*domain.Order, error) {
	log := logger.WithContext(ctx)

	pending, err := s.state.PendingPaymentIntent(ctx, sub.Session.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		if pending.TotalPrice != sub.Draft.TotalPrice {
			log.Warn().
				Str("payment_intent", pending.ID).
				Str("charged", pending.TotalPrice).
				Str("total", sub.Draft.TotalPrice).
				Msg("Cart total changed since the card was charged")
		}
		return s.postOrder(ctx, sub, pending)
	}

	if strings.TrimSpace(sub.PaymentMethodID) == "" {
		return nil, ValidationErrors{"payment_method_id": "is required for card payments"}
	}
	if !sub.Total.IsPositive() {
		return nil, ErrInvalidTotal
	}

	stripeSettings, enabled := s.settings.Enabled(ctx, domain.ResourceStripe)
	if !enabled {
		return nil, ErrPaymentMethodUnavailable
	}
	secret := stripeSettings.String("api_secret")
	if secret == "" {
		return nil, ErrPaymentNotConfigured
	}

	intent, err := s.payments.CreatePaymentIntent(ctx, sub.Session, sub.Draft.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	intentID := intent.ID
	if intentID == "" {
		intentID = intentIDFromSecret(intent.ClientSecret)
	}
	if intentID == "" {
		return nil, errors.New("payment intent response carried no intent id")
	}

	if err := s.confirmers(secret).ConfirmCardPayment(ctx, intentID, sub.PaymentMethodID); err != nil {
		log.Warn().Err(err).Str("payment_intent", intentID).Msg("Card confirmation failed")
		return nil, err
	}

	charged := &domain.PendingPaymentIntent{ID: intentID, TotalPrice: sub.Draft.TotalPrice}
	order, err := s.postOrder(ctx, sub, charged)
	if err != nil {
		if serr := s.state.SavePendingPaymentIntent(ctx, sub.Session.ID, charged); serr != nil {
			log.Error().Err(serr).Str("payment_intent", intentID).Msg("Failed to keep pending card payment")
		}
		return nil, err
	}
	return order, nil
}

// postOrder records a paid card order keyed by its intent id, so a repeated post is
// deduplicated by the backend.
func (s *CardStrategy) postOrder(ctx context.Context, sub *Submission, intent *domain.PendingPaymentIntent) (*domain.Order, error) {
	req := newOrderRequest(sub, domain.PaymentLabelCard, domain.PaymentStatusPaid)
	req.PaymentIntentID = intent.ID
	req.IdempotencyKey = intent.ID

	order, err := s.orders.CreateOrder(ctx, sub.Session, req)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("payment_intent", intent.ID).Msg("Order creation failed after card confirmation")
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// --- Wallet ---

// WalletStrategy records an order the shopper already approved in the PayPal widget.
type WalletStrategy struct {
	orders domain.OrderRepository
}

func NewWalletStrategy(orders domain.OrderRepository) *WalletStrategy {
	return &WalletStrategy{orders: orders}
}

func (s *WalletStrategy) Submit(ctx context.Context, sub *Submission) (*domain.Order, error) {
	if strings.TrimSpace(sub.PayPalOrderID) == "" {
		return nil, ValidationErrors{"order_id": "is required"}
	}

	req := newOrderRequest(sub, domain.PaymentLabelPayPal, domain.PaymentStatusPaid)
	req.PayPalDetails = sub.PayPalDetails
	req.IdempotencyKey = "paypal-" + sub.PayPalOrderID

	order, err := s.orders.CreateOrder(ctx, sub.Session, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// --- Deferred ---

type DeferredStrategy struct {
	orders domain.OrderRepository
}

func NewDeferredStrategy(orders domain.OrderRepository) *DeferredStrategy {
	return &DeferredStrategy{orders: orders}
}

func (s *DeferredStrategy) Submit(ctx context.Context, sub *Submission) (*domain.Order, error) {
	req := newOrderRequest(sub, domain.PaymentLabelCOD, domain.PaymentStatusPending)
	req.IdempotencyKey = sub.IdempotencyKey
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	order, err := s.orders.CreateOrder(ctx, sub.Session, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}
