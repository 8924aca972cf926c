package usecase

import (
	"context"
	"time"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/cache"
)

const dashboardCacheKey = "stats:dashboard"

type StatsUsecase struct {
	repo  domain.DashboardRepository
	cache cache.CacheService
	ttl   time.Duration
}

func NewStatsUsecase(repo domain.DashboardRepository, cache cache.CacheService, ttl time.Duration) *StatsUsecase {
	return &StatsUsecase{repo: repo, cache: cache, ttl: ttl}
}

// GetDashboard returns the admin totals with ordersOverTime normalised to exactly twelve months.
func (uc *StatsUsecase) GetDashboard(ctx context.Context, sess *domain.Session) (*domain.DashboardStats, error) {
	if val, found := uc.cache.Get(dashboardCacheKey); found {
		stats := *val.(*domain.DashboardStats)
		return &stats, nil
	}

	stats, err := uc.repo.GetDashboard(ctx, sess)
	if err != nil {
		return nil, err
	}
	stats.OrdersOverTime = normaliseMonths(stats.OrdersOverTime)

	uc.cache.Set(dashboardCacheKey, stats, uc.ttl)
	return stats, nil
}

// normaliseMonths pads a short series with zeros and drops anything past December.
func normaliseMonths(series []int64) []int64 {
	out := make([]int64, domain.MonthsPerYear)
	copy(out, series)
	return out
}
