package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

const cacheKeyStats = "dashboard:stats"

// Stats is the dashboard payload.
type Stats struct {
	TotalProducts      int64                   `json:"total_products"`
	TotalMappings      int64                   `json:"total_mappings"`
	TotalCombos        int64                   `json:"total_combos"`
	LowStockCount      int64                   `json:"low_stock_count"`
	NegativeStockCount int64                   `json:"negative_stock_count"`
	StockDistribution  []inventory.StockBucket `json:"stock_distribution"`
	GeneratedAt        time.Time               `json:"generated_at"`
}

// cache is the read-through cache surface, satisfied by pkg/redis.Client.
type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Service computes dashboard statistics with a short-lived Redis cache in
// front of the counting queries.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	catalogSvc catalog.Service
	repo       inventory.Repository
	cache      cache
	ttl        time.Duration
	logg       *logger.Logger
}

// NewService wires the dashboard service. The cache may be nil, in which
// case every request recomputes.
func NewService(catalogSvc catalog.Service, repo inventory.Repository, cache cache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &service{
		catalogSvc: catalogSvc,
		repo:       repo,
		cache:      cache,
		ttl:        ttl,
		logg:       logg,
	}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *service) compute(ctx context.Context) (*Stats, error) {
	stats := &Stats{GeneratedAt: time.Now().UTC()}

	var err error
	if stats.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, fmt.Errorf("counting products: %w", err)
	}
	if stats.TotalMappings, stats.TotalCombos, err = s.catalogSvc.Counts(ctx); err != nil {
		return nil, fmt.Errorf("counting catalog entries: %w", err)
	}
	if stats.LowStockCount, err = s.repo.CountLow(ctx); err != nil {
		return nil, fmt.Errorf("counting low stock: %w", err)
	}
	if stats.NegativeStockCount, err = s.repo.CountNegative(ctx); err != nil {
		return nil, fmt.Errorf("counting negative stock: %w", err)
	}
	if stats.StockDistribution, err = s.repo.StockDistribution(ctx); err != nil {
		return nil, fmt.Errorf("computing stock distribution: %w", err)
	}
	return stats, nil
}

func (s *service) fromCache(ctx context.Context) *Stats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey(cacheKeyStats))
	if err != nil || raw == "" {
		return nil
	}
	var stats Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "discarding unreadable dashboard cache entry")
		}
		return nil
	}
	return &stats
}

func (s *service) toCache(ctx context.Context, stats *Stats) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey(cacheKeyStats), string(data), s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to cache dashboard stats")
	}
}
