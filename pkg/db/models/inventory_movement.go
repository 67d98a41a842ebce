package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot/wms-backend/pkg/enums"
)

// InventoryMovement is the audit trail for every stock change.
type InventoryMovement struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	MSKU           string             `gorm:"column:msku;index;not null"`
	MovementType   enums.MovementType `gorm:"column:movement_type;not null"`
	QuantityChange int                `gorm:"column:quantity_change;not null"`
	StockBefore    int                `gorm:"column:stock_before;not null"`
	StockAfter     int                `gorm:"column:stock_after;not null"`
	ReferenceID    string             `gorm:"column:reference_id;index"`
	Notes          string             `gorm:"column:notes"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
}
