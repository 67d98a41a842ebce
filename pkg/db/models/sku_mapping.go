package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot/wms-backend/pkg/enums"
)

// SKUMapping maps one marketplace SKU to a canonical MSKU. The same MSKU
// may carry several marketplace SKUs; the pair (sku, platform) is not
// unique either, and resolution takes the first match.
type SKUMapping struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	SKU       string         `gorm:"column:sku;index;not null"`
	MSKU      string         `gorm:"column:msku;index;not null"`
	Platform  enums.Platform `gorm:"column:platform;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}
