package pusher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"

	pusherapi "github.com/pusher/pusher-http-go/v5"
)

const (
	OrdersChannel    = "orders"
	OrderPlacedEvent = "order-placed"

	maxAttempts = 3
)

// OrderPlaced is the payload admin listeners receive.
type OrderPlaced struct {
	OrderID       int64  `json:"order_id"`
	Email         string `json:"email"`
	Total         string `json:"total_price"`
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
}

// Notifier publishes order events through Pusher Channels using the credentials stored in the
// pusher settings resource. Nothing is sent while that resource is disabled.
type Notifier struct {
	settings   domain.SettingsRepository
	transport  http.RoundTripper
	timeout    time.Duration
	host       string
	secure     bool
	retryDelay time.Duration
}

func NewNotifier(settings domain.SettingsRepository) *Notifier {
	return &Notifier{
		settings:   settings,
		transport:  http.DefaultTransport,
		timeout:    10 * time.Second,
		secure:     true,
		retryDelay: time.Second,
	}
}

// WithHost points the notifier at a fixed plain-HTTP host ("127.0.0.1:8080"), ignoring the
// configured cluster.
func (n *Notifier) WithHost(host string) *Notifier {
	n.host = host
	n.secure = false
	return n
}

// client builds a Pusher client from the stored settings. It reports false when Pusher is
// disabled or incompletely configured.
func (n *Notifier) client(ctx context.Context, rt http.RoundTripper) (*pusherapi.Client, bool) {
	s, err := n.settings.GetSettings(ctx, nil, domain.ResourcePusher)
	if err != nil || !s.IsEnabled() {
		return nil, false
	}
	c := &pusherapi.Client{
		AppID:      s.String("app_id"),
		Key:        s.String("app_key"),
		Secret:     s.String("app_secret"),
		Cluster:    s.String("app_cluster"),
		Host:       n.host,
		Secure:     n.secure,
		HTTPClient: &http.Client{Transport: rt, Timeout: n.timeout},
	}
	if c.AppID == "" || c.Key == "" || c.Secret == "" || c.Cluster == "" {
		return nil, false
	}
	return c, true
}

// NotifyOrderPlaced sends the event in the background; the order flow never waits on Pusher.
func (n *Notifier) NotifyOrderPlaced(ctx context.Context, order *domain.Order) {
	payload := OrderPlaced{
		OrderID:       order.ID,
		Email:         order.Email,
		Total:         order.TotalPrice.StringFixed(2),
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
	}
	bgCtx := context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(bgCtx, 30*time.Second)
		defer cancel()
		if err := n.Trigger(ctx, OrdersChannel, OrderPlacedEvent, payload); err != nil {
			logger.WithContext(ctx).Warn().Err(err).Int64("order_id", payload.OrderID).Msg("Pusher order event not delivered")
		}
	}()
}

// Trigger publishes one event. It returns nil without sending when Pusher is disabled.
// Transport failures, 429 and 5xx are retried; other 4xx are not.
func (n *Notifier) Trigger(ctx context.Context, channel, name string, data any) error {
	rt := &recordingTransport{ctx: ctx, base: n.transport}
	client, ok := n.client(ctx, rt)
	if !ok {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rt.status = 0
		err := client.Trigger(channel, name, data)
		if err == nil {
			logger.WithContext(ctx).Debug().Str("channel", channel).Str("event", name).Msg("Pusher event sent")
			return nil
		}
		lastErr = fmt.Errorf("pusher trigger: %w", err)
		if rt.permanent() || attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Join(lastErr, ctx.Err())
		case <-time.After(time.Duration(attempt) * n.retryDelay):
		}
	}
	return lastErr
}

// recordingTransport binds each request to the trigger's context and keeps the last status code.
// The Pusher client takes no context of its own.
type recordingTransport struct {
	ctx    context.Context
	base   http.RoundTripper
	status int
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req.WithContext(t.ctx))
	if err == nil {
		t.status = resp.StatusCode
	}
	return resp, err
}

func (t *recordingTransport) permanent() bool {
	return t.status >= 400 && t.status < 500 && t.status != http.StatusTooManyRequests
}
