// Package cache holds the small read-side cache in front of the report
// aggregates. The dashboards poll the summary endpoint aggressively; a short
// TTL keeps them cheap without giving up freshness that matters.
package cache

import (
	"context"
	"time"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
)

type SummaryCache interface {
	Get(ctx context.Context, key string) (*dto.SummaryResponse, bool, error)
	Set(ctx context.Context, key string, value *dto.SummaryResponse, ttl time.Duration) error
	// Invalidate drops a key after a write that changes the aggregates.
	Invalidate(ctx context.Context, key string) error
}

// NoopSummaryCache is used when no redis is configured: every read misses.
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(_ context.Context, _ string) (*dto.SummaryResponse, bool, error) {
	return nil, false, nil
}

func (NoopSummaryCache) Set(_ context.Context, _ string, _ *dto.SummaryResponse, _ time.Duration) error {
	return nil
}

func (NoopSummaryCache) Invalidate(_ context.Context, _ string) error { return nil }
