package runs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockpilot/wms-backend/pkg/db/models"
)

// Repository manages persistence for processing runs and expanded sales rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateRun(ctx context.Context, run *models.ProcessingRun) error
	ListRecentRuns(ctx context.Context, limit int) ([]models.ProcessingRun, error)
	FindRunByBatchID(ctx context.Context, batchID string) (*models.ProcessingRun, error)
	CreateSalesRecords(ctx context.Context, records []models.SalesRecord) error
	ListSalesRecords(ctx context.Context, batchID string, limit int) ([]models.SalesRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a runs repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateRun(ctx context.Context, run *models.ProcessingRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) ListRecentRuns(ctx context.Context, limit int) ([]models.ProcessingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []models.ProcessingRun
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *repository) FindRunByBatchID(ctx context.Context, batchID string) (*models.ProcessingRun, error) {
	var run models.ProcessingRun
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) CreateSalesRecords(ctx context.Context, records []models.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).CreateInBatches(records, 500).Error
}

func (r *repository) ListSalesRecords(ctx context.Context, batchID string, limit int) ([]models.SalesRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.SalesRecord{})
	if batchID != "" {
		query = query.Where("batch_id = ?", batchID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.SalesRecord
	if err := query.Order("processed_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
