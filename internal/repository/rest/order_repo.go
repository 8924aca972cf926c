package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront-bff/internal/domain"

	"github.com/goccy/go-json"
)

type orderRepository struct {
	client *Client
}

func NewOrderRepository(c *Client) domain.OrderRepository {
	return &orderRepository{client: c}
}

type orderResp struct {
	Order json.RawMessage `json:"order"`
}

// CreateOrder keeps the backend's full order object in Order.Record alongside the parsed fields.
func (r *orderRepository) CreateOrder(ctx context.Context, sess *domain.Session, req *domain.OrderRequest) (*domain.Order, error) {
	var resp orderResp
	err := r.client.do(ctx, http.MethodPost, []string{"api", "orders"}, sess, req, &resp, requestOptions{
		idempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Order) == 0 || string(resp.Order) == "null" {
		return nil, errors.New("backend returned no order")
	}

	var order domain.Order
	if err := json.Unmarshal(resp.Order, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	order.Record = domain.RawJSON(resp.Order)
	return &order, nil
}

type paymentRepository struct {
	client *Client
}

func NewPaymentRepository(c *Client) domain.PaymentRepository {
	return &paymentRepository{client: c}
}

type paymentReq struct {
	TotalPrice string `json:"total_price"`
}

type paymentResp struct {
	PaymentIntent domain.PaymentIntent `json:"paymentIntent"`
}

func (r *paymentRepository) CreatePaymentIntent(ctx context.Context, sess *domain.Session, totalPrice string) (*domain.PaymentIntent, error) {
	var resp paymentResp
	err := r.client.do(ctx, http.MethodPost, []string{"api", "payment"}, sess, paymentReq{TotalPrice: totalPrice}, &resp, requestOptions{})
	if err != nil {
		return nil, err
	}
	if resp.PaymentIntent.ClientSecret == "" && resp.PaymentIntent.ID == "" {
		return nil, errors.New("backend returned no payment intent")
	}
	return &resp.PaymentIntent, nil
}
