package rest

import (
	"context"
	"net/http"

	"storefront-bff/internal/domain"
)

type settingsRepository struct {
	client *Client
}

func NewSettingsRepository(c *Client) domain.SettingsRepository {
	return &settingsRepository{client: c}
}

// GetSettings treats a 404 as a record that was never saved: empty and disabled.
func (r *settingsRepository) GetSettings(ctx context.Context, sess *domain.Session, resource string) (*domain.ProviderSettings, error) {
	settings := domain.NewProviderSettings(resource)
	err := r.client.do(ctx, http.MethodGet, []string{"api", "admin", "settings", resource}, sess, nil, settings, requestOptions{})
	if IsNotFound(err) {
		return domain.NewProviderSettings(resource), nil
	}
	if err != nil {
		return nil, err
	}
	settings.Resource = resource
	if settings.Values == nil {
		settings.Values = map[string]any{}
	}
	return settings, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, sess *domain.Session, settings *domain.ProviderSettings) error {
	return r.client.do(ctx, http.MethodPost, []string{"api", "admin", "settings", settings.Resource}, sess, settings, nil, requestOptions{})
}
