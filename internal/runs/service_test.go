package runs

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/stockpilot/wms-backend/internal/ingest"
	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
)

type fakeRepository struct {
	runs    []*models.ProcessingRun
	records []models.SalesRecord
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) CreateRun(ctx context.Context, run *models.ProcessingRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRepository) ListRecentRuns(ctx context.Context, limit int) ([]models.ProcessingRun, error) {
	out := make([]models.ProcessingRun, 0, len(f.runs))
	for _, r := range f.runs {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepository) FindRunByBatchID(ctx context.Context, batchID string) (*models.ProcessingRun, error) {
	for _, r := range f.runs {
		if r.BatchID == batchID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateSalesRecords(ctx context.Context, records []models.SalesRecord) error {
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeRepository) ListSalesRecords(ctx context.Context, batchID string, limit int) ([]models.SalesRecord, error) {
	return f.records, nil
}

func TestService_RecordRun(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	saleDate := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	state := "Karnataka"
	input := RecordRunInput{
		BatchID:           "batch-1",
		FileName:          "meesho_aug.csv",
		Platform:          enums.PlatformMeesho,
		TotalRows:         10,
		SuccessfulRows:    8,
		FailedRows:        0,
		SkippedRows:       2,
		ProcessingSeconds: 1.25,
		Lines: []ingest.Line{
			{
				OriginalSKU:   "SKU_A",
				MSKU:          "MSKU_A",
				Quantity:      2,
				Class:         enums.LineClassSingle,
				OrderID:       "SO1",
				SaleDate:      &saleDate,
				CustomerState: state,
			},
		},
	}

	run, err := svc.RecordRun(context.Background(), input)
	if err != nil {
		t.Fatalf("RecordRun error: %v", err)
	}

	if run.Status != enums.RunStatusSuccess {
		t.Fatalf("status = %s, want Success", run.Status)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 sales record, got %d", len(repo.records))
	}
	record := repo.records[0]
	if record.BatchID != "batch-1" || record.MSKU != "MSKU_A" || record.Quantity != 2 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if !record.SaleDate.Equal(saleDate) {
		t.Fatalf("sale date = %v", record.SaleDate)
	}
	if record.CustomerState == nil || *record.CustomerState != state {
		t.Fatalf("customer state = %v", record.CustomerState)
	}
	if record.EventType != nil {
		t.Fatal("empty optional columns should stay nil")
	}
}

func TestService_RecordRunStatuses(t *testing.T) {
	repo := &fakeRepository{}
	svc, _ := NewService(repo)

	tests := []struct {
		name   string
		input  RecordRunInput
		status enums.RunStatus
	}{
		{
			name:   "partial when some rows fail",
			input:  RecordRunInput{BatchID: "b1", FileName: "f.csv", SuccessfulRows: 3, FailedRows: 2},
			status: enums.RunStatusPartial,
		},
		{
			name:   "failed when nothing succeeds",
			input:  RecordRunInput{BatchID: "b2", FileName: "f.csv", SuccessfulRows: 0, FailedRows: 4},
			status: enums.RunStatusFailed,
		},
		{
			name:   "failed on structural error",
			input:  RecordRunInput{BatchID: "b3", FileName: "f.csv", ErrorMessage: "no SKU column"},
			status: enums.RunStatusFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			run, err := svc.RecordRun(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("RecordRun error: %v", err)
			}
			if run.Status != tc.status {
				t.Fatalf("status = %s, want %s", run.Status, tc.status)
			}
		})
	}
}

func TestService_RecordRunValidation(t *testing.T) {
	repo := &fakeRepository{}
	svc, _ := NewService(repo)

	if _, err := svc.RecordRun(context.Background(), RecordRunInput{FileName: "f.csv"}); err == nil {
		t.Fatal("expected error for missing batch id")
	}
	if _, err := svc.RecordRun(context.Background(), RecordRunInput{BatchID: "b"}); err == nil {
		t.Fatal("expected error for missing file name")
	}
}
