package domain

import "context"

// MonthsPerYear is the fixed length of the orders-over-time series.
const MonthsPerYear = 12

type DashboardStats struct {
	TotalOrders          int64   `json:"totalOrders"`
	TotalProducts        int64   `json:"totalProducts"`
	TotalCategories      int64   `json:"totalCategories"`
	TotalSubscribers     int64   `json:"totalSubscribers"`
	TotalReviews         int64   `json:"totalReviews"`
	TotalContactMessages int64   `json:"totalContactMessages"`
	OrdersOverTime       []int64 `json:"ordersOverTime"` // January first
}

type DashboardRepository interface {
	GetDashboard(ctx context.Context, sess *Session) (*DashboardStats, error)
}
