package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog entry, identified by its MSKU.
// Stock is a plain integer and may go negative; that is a reportable
// condition handled downstream, not a constraint violation.
type Product struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	MSKU         string          `gorm:"column:msku;uniqueIndex;not null"`
	ProductName  string          `gorm:"column:product_name;not null"`
	OpeningStock int             `gorm:"column:opening_stock;not null;default:0"`
	CurrentStock int             `gorm:"column:current_stock;not null;default:0"`
	BufferStock  int             `gorm:"column:buffer_stock;not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
