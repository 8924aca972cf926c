package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-bff/internal/domain"
	"storefront-bff/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactRepo struct {
	sent []*domain.ContactMessage
	err  error
}

func (f *fakeContactRepo) SendContactMessage(_ context.Context, msg *domain.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeDashboardRepo struct {
	stats *domain.DashboardStats
	calls int
}

func (f *fakeDashboardRepo) GetDashboard(_ context.Context, _ *domain.Session) (*domain.DashboardStats, error) {
	f.calls++
	stats := *f.stats
	return &stats, nil
}

func TestFooter_HiddenWhenContactInfoDisabled(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.put(domain.ResourceContactInfo, false, map[string]any{"address": "Dhaka"})
	uc := NewStorefrontUsecase(newTestSettings(repo), &fakeContactRepo{})

	assert.Nil(t, uc.Footer(context.Background()))
}

func TestFooter_SocialLinksOnlyWhenSet(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.put(domain.ResourceContactInfo, true, map[string]any{"address": "Dhaka", "phone": "017", "email": "hi@acme.test"})
	repo.put(domain.ResourceSocialMedia, true, map[string]any{"facebook": "https://facebook.com/acme", "twitter": nil, "instagram": "  "})
	repo.put(domain.ResourceGeneral, true, map[string]any{"brand_name": "Acme", "logo_url": "https://cdn.acme.test/logo.webp"})
	uc := NewStorefrontUsecase(newTestSettings(repo), &fakeContactRepo{})

	footer := uc.Footer(context.Background())

	require.NotNil(t, footer)
	assert.Equal(t, "Dhaka", footer.Address)
	assert.Equal(t, "hi@acme.test", footer.Email)
	assert.Equal(t, []domain.SocialLink{{Network: "facebook", URL: "https://facebook.com/acme"}}, footer.SocialLinks)
	assert.Equal(t, "Acme", footer.BrandName)
}

func TestFooter_SocialDisabled(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.put(domain.ResourceContactInfo, true, map[string]any{"address": "Dhaka"})
	repo.put(domain.ResourceSocialMedia, false, map[string]any{"facebook": "https://facebook.com/acme"})
	uc := NewStorefrontUsecase(newTestSettings(repo), &fakeContactRepo{})

	footer := uc.Footer(context.Background())

	require.NotNil(t, footer)
	assert.NotNil(t, footer.SocialLinks)
	assert.Empty(t, footer.SocialLinks)
}

func TestContactInfo_ShownWhileDisabled(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.put(domain.ResourceContactInfo, false, map[string]any{"phone": "017"})
	uc := NewStorefrontUsecase(newTestSettings(repo), &fakeContactRepo{})

	info, err := uc.ContactInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "017", info.Phone)
}

func TestSendContactMessage(t *testing.T) {
	contacts := &fakeContactRepo{}
	uc := NewStorefrontUsecase(newTestSettings(newFakeSettingsRepo()), contacts)

	err := uc.SendContactMessage(context.Background(), &domain.ContactMessage{Name: " Rahim ", Email: "r@acme.test", Message: "Hello"})
	require.NoError(t, err)
	require.Len(t, contacts.sent, 1)
	assert.Equal(t, "Rahim", contacts.sent[0].Name)

	err = uc.SendContactMessage(context.Background(), &domain.ContactMessage{Name: "Rahim"})
	var verr ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "email")
	assert.Contains(t, verr, "message")
	assert.Len(t, contacts.sent, 1)

	contacts.err = errors.New("backend down")
	assert.Error(t, uc.SendContactMessage(context.Background(), &domain.ContactMessage{Name: "a", Email: "b", Message: "c"}))
}

func TestNormaliseMonths(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0}, normaliseMonths([]int64{1, 2, 3}))
	assert.Len(t, normaliseMonths(nil), domain.MonthsPerYear)

	long := make([]int64, 14)
	for i := range long {
		long[i] = int64(i + 1)
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, normaliseMonths(long))
}

func TestStatsUsecase_CachesDashboard(t *testing.T) {
	repo := &fakeDashboardRepo{stats: &domain.DashboardStats{TotalOrders: 7, OrdersOverTime: []int64{4, 3}}}
	uc := NewStatsUsecase(repo, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	ctx := context.Background()

	first, err := uc.GetDashboard(ctx, testSession())
	require.NoError(t, err)
	second, err := uc.GetDashboard(ctx, testSession())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, int64(7), second.TotalOrders)
	assert.Len(t, first.OrdersOverTime, domain.MonthsPerYear)
}
