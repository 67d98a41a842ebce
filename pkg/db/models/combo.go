package models

import (
	"time"

	"github.com/google/uuid"
)

// ComboProduct is a sellable bundle SKU. It is never itself a Product;
// it only exists to expand into its components.
type ComboProduct struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	ComboSKU   string           `gorm:"column:combo_sku;uniqueIndex;not null"`
	ComboName  string           `gorm:"column:combo_name;not null"`
	Components []ComboComponent `gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
}

// ComboComponent is one constituent MSKU of a combo. Position preserves
// the column order of the source workbook (SKU1..SKU14).
type ComboComponent struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ComboID     uuid.UUID `gorm:"column:combo_id;type:uuid;index;not null"`
	Position    int       `gorm:"column:position;not null"`
	ProductMSKU string    `gorm:"column:product_msku;not null"`
	Quantity    int       `gorm:"column:quantity;not null;default:1"`
}
