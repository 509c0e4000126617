// Package analytics summarizes inquiry activity from the history table.
package analytics

import (
	"context"
	"fmt"
	"time"

	"realassist/internal/cache"
	"realassist/internal/database"
	"realassist/internal/models"
)

// Service handles inquiry analytics queries with short-lived caching.
type Service struct {
	store    *database.InquiryStore
	cache    *cache.Cache
	cacheTTL time.Duration
}

// NewService creates a new analytics service
func NewService(store *database.InquiryStore, c *cache.Cache, cacheTTL time.Duration) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("inquiry store is required for analytics service")
	}
	if c == nil {
		c = cache.New()
	}
	return &Service{store: store, cache: c, cacheTTL: cacheTTL}, nil
}

// Summary computes inquiry analytics over the trailing window of days.
func (s *Service) Summary(ctx context.Context, days int) (*models.AnalyticsResponse, error) {
	if days <= 0 {
		days = 30
	}

	cacheKey := fmt.Sprintf("analytics_summary_%d", days)
	if cached, found := s.cache.Get(cacheKey); found {
		if summary, ok := cached.(*models.AnalyticsResponse); ok {
			return summary, nil
		}
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	db := s.store.DB()

	var total int
	if err := db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM inquiry_history WHERE created_at >= $1", since); err != nil {
		return nil, fmt.Errorf("failed to count inquiries: %w", err)
	}

	var categoryRows []struct {
		Category string `db:"category"`
		Count    int    `db:"count"`
	}
	if err := db.SelectContext(ctx, &categoryRows, `
		SELECT category, COUNT(*) AS count
		FROM inquiry_history
		WHERE created_at >= $1
		GROUP BY category`, since); err != nil {
		return nil, fmt.Errorf("failed to fetch category distribution: %w", err)
	}

	var dailyRows []struct {
		Day   time.Time `db:"day"`
		Count int       `db:"count"`
	}
	if err := db.SelectContext(ctx, &dailyRows, `
		SELECT DATE(created_at) AS day, COUNT(*) AS count
		FROM inquiry_history
		WHERE created_at >= $1
		GROUP BY DATE(created_at)
		ORDER BY day`, since); err != nil {
		return nil, fmt.Errorf("failed to fetch daily counts: %w", err)
	}

	var topInquirers []models.InquirerStat
	if err := db.SelectContext(ctx, &topInquirers, `
		SELECT email, COUNT(*) AS count
		FROM inquiry_history
		WHERE created_at >= $1
		GROUP BY email
		ORDER BY count DESC
		LIMIT 10`, since); err != nil {
		return nil, fmt.Errorf("failed to fetch top inquirers: %w", err)
	}

	summary := &models.AnalyticsResponse{
		TotalInquiries:       total,
		DateRangeDays:        days,
		CategoryDistribution: make(map[string]int, len(categoryRows)),
		DailyCounts:          make(map[string]int, len(dailyRows)),
		TopInquirers:         topInquirers,
	}
	for _, row := range categoryRows {
		summary.CategoryDistribution[row.Category] = row.Count
	}
	for _, row := range dailyRows {
		summary.DailyCounts[row.Day.Format("2006-01-02")] = row.Count
	}

	s.cache.Set(cacheKey, summary, s.cacheTTL)
	return summary, nil
}
