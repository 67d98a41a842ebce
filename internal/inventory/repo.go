package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/pagination"
)

// StockBucket is one bar of the dashboard stock distribution.
type StockBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ListParams filters the paginated product listing.
type ListParams struct {
	Search string
	Cursor *pagination.Cursor
	Limit  int
}

// Repository manages persistence for products and stock movements.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByMSKU(ctx context.Context, msku string) (*models.Product, error)
	UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error
	CreateMovement(ctx context.Context, movement *models.InventoryMovement) error
	List(ctx context.Context, params ListParams) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	ListMovements(ctx context.Context, msku string, limit int) ([]models.InventoryMovement, error)
	CountProducts(ctx context.Context) (int64, error)
	CountNegative(ctx context.Context) (int64, error)
	CountLow(ctx context.Context) (int64, error)
	StockDistribution(ctx context.Context) ([]StockBucket, error)
	UpsertProducts(ctx context.Context, products []models.Product) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByMSKU(ctx context.Context, msku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("msku = ?", strings.TrimSpace(msku)).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("current_stock", newStock).Error
}

func (r *repository) CreateMovement(ctx context.Context, movement *models.InventoryMovement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *repository) List(ctx context.Context, params ListParams) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(msku) LIKE ? OR LOWER(product_name) LIKE ?", pattern, pattern)
	}
	if params.Cursor != nil {
		query = query.Where("(msku, id) > (?, ?)", params.Cursor.Key, params.Cursor.ID)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	var products []models.Product
	if err := query.Order("msku ASC, id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Order("msku ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListMovements(ctx context.Context, msku string, limit int) ([]models.InventoryMovement, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryMovement{})
	if msku = strings.TrimSpace(msku); msku != "" {
		query = query.Where("msku = ?", msku)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var movements []models.InventoryMovement
	if err := query.Order("created_at DESC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *repository) CountNegative(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("current_stock < 0").
		Count(&count).Error
	return count, err
}

func (r *repository) CountLow(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("current_stock >= 0 AND current_stock < buffer_stock").
		Count(&count).Error
	return count, err
}

func (r *repository) StockDistribution(ctx context.Context) ([]StockBucket, error) {
	buckets := []struct {
		label string
		where string
	}{
		{"Negative", "current_stock < 0"},
		{"1-9", "current_stock >= 1 AND current_stock <= 9"},
		{"10-99", "current_stock >= 10 AND current_stock <= 99"},
		{"100+", "current_stock >= 100"},
	}

	out := make([]StockBucket, 0, len(buckets))
	for _, b := range buckets {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Product{}).
			Where(b.where).
			Count(&count).Error; err != nil {
			return nil, err
		}
		out = append(out, StockBucket{Label: b.label, Count: count})
	}
	return out, nil
}

func (r *repository) UpsertProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	for i := range products {
		if products[i].ID == uuid.Nil {
			products[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "msku"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_name", "opening_stock", "current_stock", "buffer_stock",
			}),
		}).
		CreateInBatches(products, 500).Error
}
