package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockpilot/wms-backend/pkg/db/models"
)

// Repository manages persistence for mappings and combo definitions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListMappings(ctx context.Context) ([]models.SKUMapping, error)
	ListCombos(ctx context.Context) ([]models.ComboProduct, error)
	CountMappings(ctx context.Context) (int64, error)
	CountCombos(ctx context.Context) (int64, error)
	UpsertMappings(ctx context.Context, mappings []models.SKUMapping) error
	UpsertCombo(ctx context.Context, combo *models.ComboProduct) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListMappings(ctx context.Context) ([]models.SKUMapping, error) {
	var mappings []models.SKUMapping
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *repository) ListCombos(ctx context.Context) ([]models.ComboProduct, error) {
	var combos []models.ComboProduct
	if err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("combo_sku ASC").
		Find(&combos).Error; err != nil {
		return nil, err
	}
	return combos, nil
}

func (r *repository) CountMappings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SKUMapping{}).Count(&count).Error
	return count, err
}

func (r *repository) CountCombos(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ComboProduct{}).Count(&count).Error
	return count, err
}

func (r *repository) UpsertMappings(ctx context.Context, mappings []models.SKUMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	for i := range mappings {
		if mappings[i].ID == uuid.Nil {
			mappings[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku"}, {Name: "msku"}, {Name: "platform"}},
			DoNothing: true,
		}).
		CreateInBatches(mappings, 500).Error
}

func (r *repository) UpsertCombo(ctx context.Context, combo *models.ComboProduct) error {
	if combo.ID == uuid.Nil {
		combo.ID = uuid.New()
	}
	for i := range combo.Components {
		if combo.Components[i].ID == uuid.Nil {
			combo.Components[i].ID = uuid.New()
		}
		combo.Components[i].ComboID = combo.ID
	}

	// Replace the definition wholesale so a reseeded workbook wins.
	existing := models.ComboProduct{}
	err := r.db.WithContext(ctx).
		Where("combo_sku = ?", combo.ComboSKU).
		First(&existing).Error
	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).
			Where("combo_id = ?", existing.ID).
			Delete(&models.ComboComponent{}).Error; err != nil {
			return err
		}
		if err := r.db.WithContext(ctx).
			Delete(&models.ComboProduct{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	return r.db.WithContext(ctx).Create(combo).Error
}
