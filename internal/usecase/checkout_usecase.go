package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"

	"github.com/goccy/go-json"
)

const maxNameLength = 25

type CheckoutUsecase struct {
	state      *ClientState
	coupons    *CouponUsecase
	shipping   *ShippingUsecase
	settings   *SettingsUsecase
	strategies map[string]PaymentStrategy
	notifier   domain.OrderNotifier

	// session id -> struct{} while a card or cash submission runs
	inFlight sync.Map
}

func NewCheckoutUsecase(
	state *ClientState,
	coupons *CouponUsecase,
	shipping *ShippingUsecase,
	settings *SettingsUsecase,
	strategies map[string]PaymentStrategy,
	notifier domain.OrderNotifier,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		state:      state,
		coupons:    coupons,
		shipping:   shipping,
		settings:   settings,
		strategies: strategies,
		notifier:   notifier,
	}
}

type CheckoutInput struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	PaymentMethod   string `json:"payment_method"`
	PaymentMethodID string `json:"payment_method_id"` // Stripe payment method for card
	IdempotencyKey  string `json:"-"`
}

// PayPalApproval is the body of the wallet approval callback. Billing fields are read from it,
// not from any earlier submission.
type PayPalApproval struct {
	Name    string       `json:"name"`
	Phone   string       `json:"phone"`
	Address string       `json:"address"`
	OrderID string       `json:"order_id"`
	Details domain.JSONB `json:"details"`
}

type CheckoutResult struct {
	Order    *domain.Order `json:"order"`
	Redirect string        `json:"redirect"`
}

type CheckoutSummary struct {
	PriceSummary
	Cart  *domain.Cart      `json:"cart"`
	Draft domain.OrderDraft `json:"orderDraft"`
}

// Summary prices the session's current cart with the persisted coupon and shipping selection.
func (u *CheckoutUsecase) Summary(ctx context.Context, sess *domain.Session) (*CheckoutSummary, error) {
	cart, err := u.state.Cart(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	coupon, err := u.state.AppliedCoupon(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	area, err := u.state.ShippingArea(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(cart.Lines, area, coupon)
	return &CheckoutSummary{
		PriceSummary: summary,
		Cart:         cart,
		Draft:        BuildOrderDraft(sess.Email, cart.Lines, summary.Total),
	}, nil
}

// PlaceOrder runs a card or cash submission. Only one runs per session at a time; a second
// concurrent call fails fast with ErrCheckoutInProgress.
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, sess *domain.Session, in CheckoutInput) (*CheckoutResult, error) {
	if _, busy := u.inFlight.LoadOrStore(sess.ID, struct{}{}); busy {
		return nil, ErrCheckoutInProgress
	}
	defer u.inFlight.Delete(sess.ID)

	if in.PaymentMethod == domain.PaymentMethodPayPal {
		return nil, ValidationErrors{"payment_method": "PayPal orders are placed from the PayPal approval"}
	}

	billing, err := validateBilling(sess, in.Name, in.Phone, in.Address, in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	strategy, err := u.strategyFor(ctx, in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	sub, err := u.prepare(ctx, sess, billing)
	if err != nil {
		return nil, err
	}
	sub.PaymentMethodID = in.PaymentMethodID
	sub.IdempotencyKey = in.IdempotencyKey

	order, err := strategy.Submit(ctx, sub)
	if err != nil {
		return nil, err
	}
	return u.finalize(ctx, sess, in.PaymentMethod, order), nil
}

// ApprovePayPal records an order approved in the PayPal widget. It runs outside the busy flag.
func (u *CheckoutUsecase) ApprovePayPal(ctx context.Context, sess *domain.Session, in PayPalApproval) (*CheckoutResult, error) {
	billing, err := validateBilling(sess, in.Name, in.Phone, in.Address, domain.PaymentMethodPayPal)
	if err != nil {
		return nil, err
	}
	strategy, err := u.strategyFor(ctx, domain.PaymentMethodPayPal)
	if err != nil {
		return nil, err
	}

	sub, err := u.prepare(ctx, sess, billing)
	if err != nil {
		return nil, err
	}
	sub.PayPalOrderID = in.OrderID
	sub.PayPalDetails = in.Details

	order, err := strategy.Submit(ctx, sub)
	if err != nil {
		return nil, err
	}
	return u.finalize(ctx, sess, domain.PaymentMethodPayPal, order), nil
}

func validateBilling(sess *domain.Session, name, phone, address, method string) (domain.BillingDetails, error) {
	b := domain.BillingDetails{
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
	}

	verr := ValidationErrors{}
	if b.Name == "" {
		verr["name"] = "is required"
	} else if utf8.RuneCountInString(b.Name) > maxNameLength {
		verr["name"] = fmt.Sprintf("must be at most %d characters", maxNameLength)
	}
	if b.Phone == "" {
		verr["phone"] = "is required"
	}
	if b.Address == "" {
		verr["address"] = "is required"
	}
	if sess.Email == "" {
		verr["email"] = "is missing from the session"
	}
	if method == "" {
		verr["payment_method"] = "is required"
	}
	if len(verr) > 0 {
		return b, verr
	}
	return b, nil
}

func (u *CheckoutUsecase) strategyFor(ctx context.Context, method string) (PaymentStrategy, error) {
	strategy, ok := u.strategies[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPaymentMethodUnavailable, method)
	}
	enabled, err := u.settings.MethodEnabled(ctx, method)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, fmt.Errorf("%w: %q", ErrPaymentMethodUnavailable, method)
	}
	return strategy, nil
}

// prepare re-validates shipping and coupon against the backend and prices the cart afresh.
func (u *CheckoutUsecase) prepare(ctx context.Context, sess *domain.Session, billing domain.BillingDetails) (*Submission, error) {
	cart, err := u.state.Cart(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	area, err := u.shipping.Revalidate(ctx, sess)
	if err != nil {
		return nil, err
	}
	coupon, err := u.coupons.Revalidate(ctx, sess, Subtotal(cart.Lines))
	if err != nil {
		return nil, err
	}

	summary := Summarize(cart.Lines, area, coupon)
	sub := &Submission{
		Session:  sess,
		Draft:    BuildOrderDraft(sess.Email, cart.Lines, summary.Total),
		Billing:  billing,
		Total:    summary.Total,
		Discount: summary.Discount,
	}
	if area != nil {
		id := area.ID
		sub.ShippingAreaID = &id
	}
	return sub, nil
}

// finalize applies the shared post-order state change and builds the confirmation redirect.
// The order already exists at the backend, so a state write failure is logged, not returned.
func (u *CheckoutUsecase) finalize(ctx context.Context, sess *domain.Session, method string, order *domain.Order) *CheckoutResult {
	log := logger.WithContext(ctx)

	record := order.Record
	if len(record) == 0 {
		raw, err := json.Marshal(order)
		if err != nil {
			log.Error().Err(err).Int64("order_id", order.ID).Msg("Failed to encode order record")
		}
		record = domain.RawJSON(raw)
	}

	if err := u.state.FinalizeOrder(ctx, sess.ID, record); err != nil {
		log.Error().Err(err).Int64("order_id", order.ID).Msg("Failed to update session state after order")
	}

	if u.notifier != nil {
		u.notifier.NotifyOrderPlaced(ctx, order)
	}

	log.Info().
		Int64("order_id", order.ID).
		Str("payment_method", method).
		Str("payment_status", order.PaymentStatus).
		Msg("Order placed")

	return &CheckoutResult{
		Order:    order,
		Redirect: fmt.Sprintf(domain.ConfirmationPath, order.ID),
	}
}
