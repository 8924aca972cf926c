package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"storefront-bff/internal/domain"
	"storefront-bff/internal/infrastructure/cache"
	memoryrepo "storefront-bff/internal/repository/memory"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestState(t *testing.T) *ClientState {
	t.Helper()
	return NewClientState(memoryrepo.NewStateRepository(cache.NewMemoryCache(time.Hour, time.Hour), time.Hour))
}

func testSession() *domain.Session {
	return &domain.Session{ID: "sess-1", UserID: "u-1", Email: "shopper@example.com", Token: "tok"}
}

// --- coupons ---

type fakeCouponRepo struct {
	mu    sync.Mutex
	res   *domain.CouponResolution
	err   error
	codes []string
}

func (f *fakeCouponRepo) ApplyCoupon(_ context.Context, _ *domain.Session, code string) (*domain.CouponResolution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, f.err
	}
	res := *f.res
	return &res, nil
}

// --- shipping ---

type fakeShippingRepo struct {
	areas []domain.ShippingArea
	err   error
	calls int
}

func (f *fakeShippingRepo) ListShippingAreas(_ context.Context, _ *domain.Session) ([]domain.ShippingArea, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.ShippingArea(nil), f.areas...), nil
}

// --- settings ---

type fakeSettingsRepo struct {
	mu      sync.Mutex
	stored  map[string]*domain.ProviderSettings
	getErr  error
	saveErr error
	gets    int
	saved   []*domain.ProviderSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{stored: map[string]*domain.ProviderSettings{}}
}

func (f *fakeSettingsRepo) put(resource string, enabled bool, values map[string]any) {
	s := domain.NewProviderSettings(resource)
	s.Enabled = enabled
	for k, v := range values {
		s.Values[k] = v
	}
	f.stored[resource] = s
}

func (f *fakeSettingsRepo) GetSettings(_ context.Context, _ *domain.Session, resource string) (*domain.ProviderSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.stored[resource]
	if !ok {
		return domain.NewProviderSettings(resource), nil
	}
	cp := domain.NewProviderSettings(resource)
	cp.Enabled = s.Enabled
	for k, v := range s.Values {
		cp.Values[k] = v
	}
	return cp, nil
}

func (f *fakeSettingsRepo) SaveSettings(_ context.Context, _ *domain.Session, s *domain.ProviderSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	f.stored[s.Resource] = s
	return nil
}

func newTestSettings(repo domain.SettingsRepository) *SettingsUsecase {
	return NewSettingsUsecase(repo, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
}

// --- orders & payments ---

type fakeOrderRepo struct {
	mu       sync.Mutex
	requests []*domain.OrderRequest
	err      error
	nextID   int64
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, _ *domain.Session, req *domain.OrderRequest) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	order := &domain.Order{
		ID:            f.nextID,
		Email:         req.Email,
		TotalPrice:    decimal.RequireFromString(req.TotalPrice),
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
	}
	order.Record = domain.RawJSON(fmt.Sprintf(`{"id":%d,"payment_method":%q}`, order.ID, req.PaymentMethod))
	return order, nil
}

func (f *fakeOrderRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakePaymentRepo struct {
	intent *domain.PaymentIntent
	err    error
	totals []string
}

func (f *fakePaymentRepo) CreatePaymentIntent(_ context.Context, _ *domain.Session, total string) (*domain.PaymentIntent, error) {
	f.totals = append(f.totals, total)
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

type fakeConfirmer struct {
	err       error
	secret    string
	intentID  string
	methodID  string
	confirmed int
}

func (f *fakeConfirmer) factory() CardConfirmerFactory {
	return func(secret string) CardConfirmer {
		f.secret = secret
		return f
	}
}

func (f *fakeConfirmer) ConfirmCardPayment(_ context.Context, intentID, paymentMethodID string) error {
	f.confirmed++
	f.intentID = intentID
	f.methodID = paymentMethodID
	return f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	orders []*domain.Order
}

func (f *fakeNotifier) NotifyOrderPlaced(_ context.Context, order *domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
