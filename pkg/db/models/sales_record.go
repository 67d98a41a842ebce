package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot/wms-backend/pkg/enums"
)

// SalesRecord is one expanded sales line persisted as part of a
// processing run. Combo rows fan out into one record per component.
type SalesRecord struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	BatchID     string          `gorm:"column:batch_id;index;not null"`
	OrderID     string          `gorm:"column:order_id;index"`
	Platform    enums.Platform  `gorm:"column:platform;not null"`
	OriginalSKU string          `gorm:"column:original_sku;not null"`
	MSKU        string          `gorm:"column:msku;index;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	SaleDate    time.Time       `gorm:"column:sale_date"`
	LineClass   enums.LineClass `gorm:"column:line_class;not null"`

	// Columns carried through from the platform export where present.
	CustomerState     *string `gorm:"column:customer_state"`
	FulfillmentCenter *string `gorm:"column:fulfillment_center"`
	EventType         *string `gorm:"column:event_type"`
	Disposition       *string `gorm:"column:disposition"`

	ProcessedAt time.Time `gorm:"column:processed_at;autoCreateTime"`
}
