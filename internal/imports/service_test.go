package imports

import (
	"context"
	"strings"
	"testing"

	"github.com/stockpilot/wms-backend/internal/alerts"
	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/internal/runs"
	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
	apperrors "github.com/stockpilot/wms-backend/pkg/errors"
)

type fakeCatalog struct {
	snapshot *catalog.Snapshot
	err      error
}

func (f *fakeCatalog) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeCatalog) ComboAnalysis(ctx context.Context) ([]catalog.ComboSummary, error) {
	return nil, nil
}

func (f *fakeCatalog) Counts(ctx context.Context) (int64, int64, error) {
	return 0, 0, nil
}

type fakeReconciler struct {
	deltas  map[string]int
	batchID string
	report  *inventory.Report
	err     error
}

func (f *fakeReconciler) Apply(ctx context.Context, deltas map[string]int, batchID string) (*inventory.Report, error) {
	f.deltas = deltas
	f.batchID = batchID
	if f.err != nil {
		return nil, f.err
	}
	if f.report == nil {
		f.report = &inventory.Report{BatchID: batchID}
	}
	return f.report, nil
}

type fakeRuns struct {
	inputs []runs.RecordRunInput
	err    error
}

func (f *fakeRuns) RecordRun(ctx context.Context, input runs.RecordRunInput) (*models.ProcessingRun, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	status := enums.RunStatusFor(input.SuccessfulRows, input.FailedRows)
	if input.ErrorMessage != "" && input.SuccessfulRows == 0 {
		status = enums.RunStatusFailed
	}
	return &models.ProcessingRun{BatchID: input.BatchID, Status: status}, nil
}

func (f *fakeRuns) RecentRuns(ctx context.Context, limit int) ([]models.ProcessingRun, error) {
	return nil, nil
}

func (f *fakeRuns) RunDetail(ctx context.Context, batchID string) (*models.ProcessingRun, []models.SalesRecord, error) {
	return nil, nil, nil
}

type fakeAlerts struct {
	batchIDs []string
	warnings [][]inventory.Warning
}

func (f *fakeAlerts) PublishWarnings(ctx context.Context, batchID string, warnings []inventory.Warning) {
	f.batchIDs = append(f.batchIDs, batchID)
	f.warnings = append(f.warnings, warnings)
}

func testSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot(
		[]models.SKUMapping{
			{SKU: "FK-TEE-RED", MSKU: "MSKU001", Platform: enums.PlatformFlipkart},
		},
		nil,
	)
}

func newTestService(t *testing.T, cat *fakeCatalog, rec *fakeReconciler, rn *fakeRuns, al *fakeAlerts) Service {
	t.Helper()
	var alertSvc alerts.Service
	if al != nil {
		alertSvc = al
	}
	svc, err := NewService(cat, rec, rn, alertSvc, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

const flipkartCSV = "Order Item ID,FSN,SKU,Quantity\nOD1,FSN1,FK-TEE-RED,2\nOD2,FSN2,FK-TEE-RED,1\n"

func TestProcessFileHappyPath(t *testing.T) {
	cat := &fakeCatalog{snapshot: testSnapshot()}
	rec := &fakeReconciler{}
	rn := &fakeRuns{}
	al := &fakeAlerts{}
	svc := newTestService(t, cat, rec, rn, al)

	report, err := svc.ProcessFile(context.Background(), "flipkart_orders.csv", strings.NewReader(flipkartCSV))
	if err != nil {
		t.Fatalf("ProcessFile error: %v", err)
	}

	if report.Platform != enums.PlatformFlipkart {
		t.Fatalf("platform = %s", report.Platform)
	}
	if report.Status != enums.RunStatusSuccess {
		t.Fatalf("status = %s", report.Status)
	}
	if report.TotalRows != 2 || report.SuccessfulRows != 2 {
		t.Fatalf("rows = %d/%d", report.TotalRows, report.SuccessfulRows)
	}
	if report.BatchID == "" {
		t.Fatal("expected batch id")
	}
	if got := rec.deltas["MSKU001"]; got != -3 {
		t.Fatalf("delta = %d, want -3", got)
	}
	if rec.batchID != report.BatchID {
		t.Fatalf("reconciler batch %s != report batch %s", rec.batchID, report.BatchID)
	}
	if len(rn.inputs) != 1 || rn.inputs[0].BatchID != report.BatchID {
		t.Fatalf("run inputs = %+v", rn.inputs)
	}
	if len(rn.inputs[0].Lines) != 2 {
		t.Fatalf("expected 2 sale lines, got %d", len(rn.inputs[0].Lines))
	}
}

func TestProcessFileUnsupportedExtension(t *testing.T) {
	cat := &fakeCatalog{snapshot: testSnapshot()}
	rec := &fakeReconciler{}
	rn := &fakeRuns{}
	svc := newTestService(t, cat, rec, rn, nil)

	report, err := svc.ProcessFile(context.Background(), "orders.pdf", strings.NewReader("junk"))
	if err != nil {
		t.Fatalf("a rejected file must not be a service error: %v", err)
	}

	if report.Status != enums.RunStatusFailed {
		t.Fatalf("status = %s", report.Status)
	}
	if report.Error == "" {
		t.Fatal("expected rejection reason")
	}
	if rec.deltas != nil {
		t.Fatal("reconciler must not run for a rejected file")
	}
	if len(rn.inputs) != 1 || rn.inputs[0].ErrorMessage == "" {
		t.Fatalf("expected a failed run to be recorded, got %+v", rn.inputs)
	}
}

func TestProcessFileMissingSKUColumn(t *testing.T) {
	cat := &fakeCatalog{snapshot: testSnapshot()}
	rn := &fakeRuns{}
	svc := newTestService(t, cat, &fakeReconciler{}, rn, nil)

	report, err := svc.ProcessFile(context.Background(), "orders.csv",
		strings.NewReader("Order Item ID,FSN,Quantity\nOD1,FSN1,2\n"))
	if err != nil {
		t.Fatalf("ProcessFile error: %v", err)
	}
	if report.Status != enums.RunStatusFailed || report.Error == "" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestProcessFileLockedBatchPropagates(t *testing.T) {
	cat := &fakeCatalog{snapshot: testSnapshot()}
	rec := &fakeReconciler{err: apperrors.New(apperrors.CodeLocked, "another batch is being reconciled")}
	rn := &fakeRuns{}
	svc := newTestService(t, cat, rec, rn, nil)

	_, err := svc.ProcessFile(context.Background(), "flipkart_orders.csv", strings.NewReader(flipkartCSV))
	if err == nil {
		t.Fatal("expected lock contention to propagate")
	}
	typed := apperrors.As(err)
	if typed == nil || typed.Code() != apperrors.CodeLocked {
		t.Fatalf("error = %v", err)
	}
	if len(rn.inputs) != 0 {
		t.Fatal("no run should be recorded when the batch is locked")
	}
}

func TestProcessFilePublishesWarnings(t *testing.T) {
	cat := &fakeCatalog{snapshot: testSnapshot()}
	rec := &fakeReconciler{report: &inventory.Report{
		Warnings: []inventory.Warning{{MSKU: "MSKU001", Severity: enums.StockSeverityNegative, Stock: -3}},
	}}
	al := &fakeAlerts{}
	svc := newTestService(t, cat, rec, &fakeRuns{}, al)

	report, err := svc.ProcessFile(context.Background(), "flipkart_orders.csv", strings.NewReader(flipkartCSV))
	if err != nil {
		t.Fatalf("ProcessFile error: %v", err)
	}
	if len(al.batchIDs) != 1 || al.batchIDs[0] != report.BatchID {
		t.Fatalf("alerts = %+v", al.batchIDs)
	}
	if len(al.warnings[0]) != 1 {
		t.Fatalf("warnings = %+v", al.warnings)
	}
}
