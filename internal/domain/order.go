package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// --- Order Draft ---

type OrderDraftItem struct {
	ProductID        int64           `json:"product_id"`
	ProductVariantID *int64          `json:"product_variant_id"`
	Quantity         int             `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	Image            string          `json:"image"`
	VariantDetails   *VariantDetails `json:"variant_details,omitempty"`
}

// OrderDraft is the not-yet-persisted order. It is rebuilt from the cart and pricing state on every
// submission.
type OrderDraft struct {
	Email      string           `json:"email"`
	TotalPrice string           `json:"total_price"` // Fixed to 2 decimals
	Items      []OrderDraftItem `json:"items"`
}

// BillingDetails are the shopper-entered fields merged into the draft at submission.
type BillingDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderRequest is the body of POST /api/orders.
type OrderRequest struct {
	OrderDraft
	BillingDetails
	PaymentMethod   string `json:"payment_method"`
	PaymentStatus   string `json:"payment_status"`
	Discount        string `json:"discount"`
	ShippingAreaID  *int64 `json:"shipping_area_id"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	PayPalDetails   JSONB  `json:"paypal_details,omitempty"`
	IdempotencyKey  string `json:"-"` // Sent as a header
}

// --- Order Entities ---

type Order struct {
	ID            int64           `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	Status        string          `json:"status"`
	CreatedAt     *time.Time      `json:"created_at"`
	// Record is the full order object as returned by the backend.
	Record RawJSON `json:"-"`
}

// PaymentIntent is the provider-side object created by the backend for a card charge.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// PendingPaymentIntent is a card charge that was confirmed but whose order was never recorded.
// The next card submission re-posts the order under the same intent instead of charging again.
type PendingPaymentIntent struct {
	ID         string `json:"id"`
	TotalPrice string `json:"totalPrice"`
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, sess *Session, req *OrderRequest) (*Order, error)
}

type PaymentRepository interface {
	CreatePaymentIntent(ctx context.Context, sess *Session, totalPrice string) (*PaymentIntent, error)
}

// OrderNotifier broadcasts a placed order to admin listeners. Implementations must not block.
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, order *Order)
}
