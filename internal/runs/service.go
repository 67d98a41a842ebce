package runs

import (
	"context"
	"fmt"
	"time"

	"github.com/stockpilot/wms-backend/internal/ingest"
	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
)

// RecordRunInput captures everything one finished file run needs to persist.
type RecordRunInput struct {
	BatchID           string
	FileName          string
	Platform          enums.Platform
	TotalRows         int
	SuccessfulRows    int
	FailedRows        int
	SkippedRows       int
	ProcessingSeconds float64
	ErrorMessage      string
	Lines             []ingest.Line
}

// Service records processing runs and serves the run history.
type Service interface {
	RecordRun(ctx context.Context, input RecordRunInput) (*models.ProcessingRun, error)
	RecentRuns(ctx context.Context, limit int) ([]models.ProcessingRun, error)
	RunDetail(ctx context.Context, batchID string) (*models.ProcessingRun, []models.SalesRecord, error)
}

// maxDetailRecords caps the sale lines returned with one run.
const maxDetailRecords = 1000

type service struct {
	repo Repository
}

// NewService wires a runs service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("runs repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) RecordRun(ctx context.Context, input RecordRunInput) (*models.ProcessingRun, error) {
	if input.BatchID == "" {
		return nil, fmt.Errorf("batch id is required")
	}
	if input.FileName == "" {
		return nil, fmt.Errorf("file name is required")
	}

	status := enums.RunStatusFor(input.SuccessfulRows, input.FailedRows)
	if input.ErrorMessage != "" && input.SuccessfulRows == 0 {
		status = enums.RunStatusFailed
	}

	run := &models.ProcessingRun{
		BatchID:           input.BatchID,
		FileName:          input.FileName,
		Platform:          input.Platform,
		TotalRows:         input.TotalRows,
		SuccessfulRows:    input.SuccessfulRows,
		FailedRows:        input.FailedRows,
		SkippedRows:       input.SkippedRows,
		ProcessingSeconds: input.ProcessingSeconds,
		Status:            status,
		ErrorMessage:      input.ErrorMessage,
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("creating processing run: %w", err)
	}

	records := buildSalesRecords(input)
	if err := s.repo.CreateSalesRecords(ctx, records); err != nil {
		return nil, fmt.Errorf("persisting sales records: %w", err)
	}

	return run, nil
}

func (s *service) RecentRuns(ctx context.Context, limit int) ([]models.ProcessingRun, error) {
	return s.repo.ListRecentRuns(ctx, limit)
}

func (s *service) RunDetail(ctx context.Context, batchID string) (*models.ProcessingRun, []models.SalesRecord, error) {
	run, err := s.repo.FindRunByBatchID(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.repo.ListSalesRecords(ctx, batchID, maxDetailRecords)
	if err != nil {
		return nil, nil, err
	}
	return run, records, nil
}

func buildSalesRecords(input RecordRunInput) []models.SalesRecord {
	now := time.Now().UTC()
	records := make([]models.SalesRecord, 0, len(input.Lines))
	for _, line := range input.Lines {
		record := models.SalesRecord{
			BatchID:     input.BatchID,
			OrderID:     line.OrderID,
			Platform:    input.Platform,
			OriginalSKU: line.OriginalSKU,
			MSKU:        line.MSKU,
			Quantity:    line.Quantity,
			LineClass:   line.Class,
			ProcessedAt: now,
		}
		if line.SaleDate != nil {
			record.SaleDate = *line.SaleDate
		}
		if line.CustomerState != "" {
			v := line.CustomerState
			record.CustomerState = &v
		}
		if line.FulfillmentCenter != "" {
			v := line.FulfillmentCenter
			record.FulfillmentCenter = &v
		}
		if line.EventType != "" {
			v := line.EventType
			record.EventType = &v
		}
		if line.Disposition != "" {
			v := line.Disposition
			record.Disposition = &v
		}
		records = append(records, record)
	}
	return records
}
