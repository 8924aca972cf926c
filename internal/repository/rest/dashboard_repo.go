package rest

import (
	"context"
	"net/http"

	"storefront-bff/internal/domain"
)

type dashboardRepository struct {
	client *Client
}

func NewDashboardRepository(c *Client) domain.DashboardRepository {
	return &dashboardRepository{client: c}
}

func (r *dashboardRepository) GetDashboard(ctx context.Context, sess *domain.Session) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := r.client.do(ctx, http.MethodGet, []string{"api", "admin", "dashboard"}, sess, nil, &stats, requestOptions{}); err != nil {
		return nil, err
	}
	return &stats, nil
}

type contactRepository struct {
	client *Client
}

func NewContactRepository(c *Client) domain.ContactRepository {
	return &contactRepository{client: c}
}

func (r *contactRepository) SendContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	return r.client.do(ctx, http.MethodPost, []string{"api", "contact"}, nil, msg, nil, requestOptions{})
}
