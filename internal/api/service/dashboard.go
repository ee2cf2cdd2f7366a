package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/shared/redis"
)

const dashboardCacheKey = "dashboard:stats"

// DashboardStore is the read-only aggregation surface of the job table.
type DashboardStore interface {
	CountJobsByStatus(ctx context.Context) (map[domain.JobStatus]int, error)
	ApprovedRevenueBetween(ctx context.Context, from, to time.Time) (float64, error)
	AverageResolutionHours(ctx context.Context) (float64, error)
}

// Cache is a TTL key-value store fronting the dashboard aggregates.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// DashboardStats is the dashboard read model.
type DashboardStats struct {
	StatusCounts       map[domain.JobStatus]int `json:"status_counts"`
	RevenueThisMonth   float64                  `json:"revenue_this_month"`
	RevenuePrevMonth   float64                  `json:"revenue_prev_month"`
	AvgResolutionHours float64                  `json:"avg_resolution_hours"`
	GeneratedAt        time.Time                `json:"generated_at"`
}

// Dashboard computes job aggregates. It is read-only and sits apart from
// the lifecycle engine; it only shares the job table.
type Dashboard struct {
	store    DashboardStore
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewDashboard creates the dashboard read model. cache may be nil, in
// which case every request recomputes from the database.
func NewDashboard(store DashboardStore, cache Cache, cacheTTL time.Duration, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Stats returns the dashboard aggregates, served from cache when fresh.
// Cache failures fall through to the database and are logged only.
func (d *Dashboard) Stats(ctx context.Context) (*DashboardStats, error) {
	if d.cache != nil {
		cached, err := d.cache.Get(ctx, dashboardCacheKey)
		switch {
		case err == nil:
			var stats DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err != nil {
				d.logger.Warn("Discarding malformed dashboard cache entry", slog.Any("error", err))
			} else {
				return &stats, nil
			}
		case !redis.IsMiss(err):
			d.logger.Warn("Dashboard cache read failed", slog.Any("error", err))
		}
	}

	stats, err := d.compute(ctx)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		payload, err := json.Marshal(stats)
		if err == nil {
			if err := d.cache.Set(ctx, dashboardCacheKey, string(payload), d.cacheTTL); err != nil {
				d.logger.Warn("Failed to cache dashboard stats", slog.Any("error", err))
			}
		}
	}
	return stats, nil
}

func (d *Dashboard) compute(ctx context.Context) (*DashboardStats, error) {
	counts, err := d.store.CountJobsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	now := d.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	current, err := d.store.ApprovedRevenueBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	previous, err := d.store.ApprovedRevenueBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}

	avgHours, err := d.store.AverageResolutionHours(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		StatusCounts:       counts,
		RevenueThisMonth:   current,
		RevenuePrevMonth:   previous,
		AvgResolutionHours: avgHours,
		GeneratedAt:        now,
	}, nil
}
