package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot/wms-backend/pkg/enums"
)

// ProcessingRun records the outcome of one sales-file run: row counters,
// duration and the resulting status. A run always completes with a
// best-effort report, so there is exactly one row per processed file.
type ProcessingRun struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	BatchID           string          `gorm:"column:batch_id;uniqueIndex;not null"`
	FileName          string          `gorm:"column:file_name;not null"`
	Platform          enums.Platform  `gorm:"column:platform;not null"`
	TotalRows         int             `gorm:"column:total_rows;not null;default:0"`
	SuccessfulRows    int             `gorm:"column:successful_rows;not null;default:0"`
	FailedRows        int             `gorm:"column:failed_rows;not null;default:0"`
	SkippedRows       int             `gorm:"column:skipped_rows;not null;default:0"`
	ProcessingSeconds float64         `gorm:"column:processing_seconds"`
	Status            enums.RunStatus `gorm:"column:status;not null"`
	ErrorMessage      string          `gorm:"column:error_message"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
}
