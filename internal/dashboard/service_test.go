package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/pkg/db/models"
)

type countingRepository struct {
	products, low, negative int64
	distribution            []inventory.StockBucket
	countCalls              int
}

func (c *countingRepository) WithTx(tx *gorm.DB) inventory.Repository { return c }
func (c *countingRepository) FindByMSKU(ctx context.Context, msku string) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (c *countingRepository) UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error {
	return nil
}
func (c *countingRepository) CreateMovement(ctx context.Context, m *models.InventoryMovement) error {
	return nil
}
func (c *countingRepository) List(ctx context.Context, params inventory.ListParams) ([]models.Product, error) {
	return nil, nil
}
func (c *countingRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}
func (c *countingRepository) ListMovements(ctx context.Context, msku string, limit int) ([]models.InventoryMovement, error) {
	return nil, nil
}
func (c *countingRepository) CountProducts(ctx context.Context) (int64, error) {
	c.countCalls++
	return c.products, nil
}
func (c *countingRepository) CountNegative(ctx context.Context) (int64, error) {
	return c.negative, nil
}
func (c *countingRepository) CountLow(ctx context.Context) (int64, error) { return c.low, nil }
func (c *countingRepository) StockDistribution(ctx context.Context) ([]inventory.StockBucket, error) {
	return c.distribution, nil
}
func (c *countingRepository) UpsertProducts(ctx context.Context, products []models.Product) error {
	return nil
}

type fakeCatalogService struct {
	mappings, combos int64
}

func (f *fakeCatalogService) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return catalog.NewSnapshot(nil, nil), nil
}
func (f *fakeCatalogService) ComboAnalysis(ctx context.Context) ([]catalog.ComboSummary, error) {
	return nil, nil
}
func (f *fakeCatalogService) Counts(ctx context.Context) (int64, int64, error) {
	return f.mappings, f.combos, nil
}

type memoryCache struct {
	values map[string]string
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}
func (m *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	return nil
}
func (m *memoryCache) CacheKey(parts ...string) string {
	key := "wms:cache"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func TestStatsComputesAndCaches(t *testing.T) {
	repo := &countingRepository{
		products: 12,
		low:      3,
		negative: 1,
		distribution: []inventory.StockBucket{
			{Label: "Negative", Count: 1},
			{Label: "1-9", Count: 3},
		},
	}
	catalogSvc := &fakeCatalogService{mappings: 40, combos: 5}
	cache := &memoryCache{values: map[string]string{}}

	svc, err := NewService(catalogSvc, repo, cache, time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalProducts != 12 || stats.TotalMappings != 40 || stats.TotalCombos != 5 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.LowStockCount != 3 || stats.NegativeStockCount != 1 {
		t.Fatalf("unexpected stock counts: %+v", stats)
	}
	if len(stats.StockDistribution) != 2 {
		t.Fatalf("unexpected distribution: %+v", stats.StockDistribution)
	}

	// Second call is served from cache without re-counting.
	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("cached Stats error: %v", err)
	}
	if repo.countCalls != 1 {
		t.Fatalf("expected 1 compute pass, got %d", repo.countCalls)
	}
}

func TestStatsWorksWithoutCache(t *testing.T) {
	repo := &countingRepository{products: 2}
	svc, err := NewService(&fakeCatalogService{}, repo, nil, time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if repo.countCalls != 2 {
		t.Fatalf("expected recompute without cache, got %d calls", repo.countCalls)
	}
}
