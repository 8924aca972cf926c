package rest

import (
	"context"
	"net/http"

	"storefront-bff/internal/domain"
)

type shippingRepository struct {
	client *Client
}

func NewShippingRepository(c *Client) domain.ShippingRepository {
	return &shippingRepository{client: c}
}

func (r *shippingRepository) ListShippingAreas(ctx context.Context, sess *domain.Session) ([]domain.ShippingArea, error) {
	var areas []domain.ShippingArea
	if err := r.client.do(ctx, http.MethodGet, []string{"api", "admin", "shipping-areas"}, sess, nil, &areas, requestOptions{}); err != nil {
		return nil, err
	}
	return areas, nil
}
