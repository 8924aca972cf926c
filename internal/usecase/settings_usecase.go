package usecase

import (
	"context"
	"fmt"
	"maps"
	"time"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/cache"
	"storefront-bff/pkg/logger"
)

// SettingsUsecase serves provider settings to the admin forms and to the public storefront.
// Reads go through the cache; a save invalidates the resource's entry.
type SettingsUsecase struct {
	repo  domain.SettingsRepository
	cache cache.CacheService
	ttl   time.Duration
}

func NewSettingsUsecase(repo domain.SettingsRepository, cache cache.CacheService, ttl time.Duration) *SettingsUsecase {
	return &SettingsUsecase{repo: repo, cache: cache, ttl: ttl}
}

func settingsCacheKey(resource string) string {
	return "settings:" + resource
}

func cloneSettings(s *domain.ProviderSettings) *domain.ProviderSettings {
	return &domain.ProviderSettings{
		Resource: s.Resource,
		Enabled:  s.Enabled,
		Values:   maps.Clone(s.Values),
	}
}

// GetSettings implements domain.SettingsRepository so forms can load through the cache.
func (uc *SettingsUsecase) GetSettings(ctx context.Context, sess *domain.Session, resource string) (*domain.ProviderSettings, error) {
	key := settingsCacheKey(resource)
	if val, found := uc.cache.Get(key); found {
		return cloneSettings(val.(*domain.ProviderSettings)), nil
	}

	settings, err := uc.repo.GetSettings(ctx, sess, resource)
	if err != nil {
		return nil, err
	}
	settings.Resource = resource

	uc.cache.Set(key, cloneSettings(settings), uc.ttl)
	return settings, nil
}

func (uc *SettingsUsecase) SaveSettings(ctx context.Context, sess *domain.Session, settings *domain.ProviderSettings) error {
	defer uc.cache.Delete(settingsCacheKey(settings.Resource))
	return uc.repo.SaveSettings(ctx, sess, settings)
}

// Refresh drops every cached resource so the next read goes to the backend.
func (uc *SettingsUsecase) Refresh(ctx context.Context) {
	uc.cache.DeletePrefix(settingsCacheKey(""))
	logger.WithContext(ctx).Info().Msg("Settings cache flushed")
}

// Enabled reports whether an integration is switched on. A fetch failure counts as disabled.
func (uc *SettingsUsecase) Enabled(ctx context.Context, resource string) (*domain.ProviderSettings, bool) {
	settings, err := uc.GetSettings(ctx, nil, resource)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("resource", resource).Msg("Settings unavailable, treating as disabled")
		return nil, false
	}
	return settings, settings.IsEnabled()
}

// LoadForm fetches a resource into a ready form.
func (uc *SettingsUsecase) LoadForm(ctx context.Context, sess *domain.Session, resource string) (*Form, error) {
	schema, err := SchemaFor(resource)
	if err != nil {
		return nil, err
	}
	form := NewForm(schema, uc)
	if err := form.Load(ctx, sess); err != nil {
		return form, err
	}
	return form, nil
}

type SubmitSettingsReq struct {
	Enabled *bool          `json:"is_enabled"`
	Values  map[string]any `json:"-"`
}

// SubmitForm loads the stored record, binds the submitted values over it and sends the whole record.
// The returned view carries the outcome message for both success and failure.
func (uc *SettingsUsecase) SubmitForm(ctx context.Context, sess *domain.Session, resource string, req SubmitSettingsReq) (*FormView, error) {
	form, err := uc.LoadForm(ctx, sess, resource)
	if form == nil {
		return nil, err
	}
	if err != nil {
		view := form.View()
		return &view, err
	}

	if err := form.Bind(req.Values, req.Enabled); err != nil {
		view := form.View()
		return &view, err
	}

	err = form.Submit(ctx, sess)
	view := form.View()
	if err != nil {
		return &view, err
	}

	logger.WithContext(ctx).Info().
		Str("resource", resource).
		Bool("is_enabled", form.Enabled()).
		Msg("Settings updated")

	return &view, nil
}

type PaymentOptions struct {
	Methods []string      `json:"methods"`
	Stripe  *StripeOption `json:"stripe,omitempty"`
	PayPal  *PayPalOption `json:"paypal,omitempty"`
}

// StripeOption exposes only the publishable key.
type StripeOption struct {
	PublishableKey string `json:"api_key"`
}

type PayPalOption struct {
	ClientID string `json:"client_id"`
	Mode     string `json:"mode"`
}

// PaymentOptions lists the methods a shopper may choose: card and PayPal only when their
// integration is enabled, cash always. Secrets never leave this service.
func (uc *SettingsUsecase) PaymentOptions(ctx context.Context) *PaymentOptions {
	opts := &PaymentOptions{Methods: []string{}}

	if stripe, ok := uc.Enabled(ctx, domain.ResourceStripe); ok {
		opts.Methods = append(opts.Methods, domain.PaymentMethodCard)
		opts.Stripe = &StripeOption{PublishableKey: stripe.String("api_key")}
	}
	if paypal, ok := uc.Enabled(ctx, domain.ResourcePayPal); ok {
		mode := paypal.String("mode")
		if mode == "" {
			mode = "sandbox"
		}
		opts.Methods = append(opts.Methods, domain.PaymentMethodPayPal)
		opts.PayPal = &PayPalOption{ClientID: paypal.String("client_id"), Mode: mode}
	}
	opts.Methods = append(opts.Methods, domain.PaymentMethodCOD)

	return opts
}

// MethodEnabled reports whether the shopper may pay with method right now.
func (uc *SettingsUsecase) MethodEnabled(ctx context.Context, method string) (bool, error) {
	switch method {
	case domain.PaymentMethodCOD:
		return true, nil
	case domain.PaymentMethodCard:
		_, ok := uc.Enabled(ctx, domain.ResourceStripe)
		return ok, nil
	case domain.PaymentMethodPayPal:
		_, ok := uc.Enabled(ctx, domain.ResourcePayPal)
		return ok, nil
	}
	return false, fmt.Errorf("%w: %q", ErrPaymentMethodUnavailable, method)
}
