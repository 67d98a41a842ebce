package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/internal/dashboard"
	"github.com/stockpilot/wms-backend/internal/imports"
	"github.com/stockpilot/wms-backend/internal/insights"
	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/internal/runs"
	"github.com/stockpilot/wms-backend/pkg/config"
	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
	"github.com/stockpilot/wms-backend/pkg/logger"
	"github.com/stockpilot/wms-backend/pkg/pagination"
	"github.com/stockpilot/wms-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubImports struct{}

func (stubImports) ProcessFile(ctx context.Context, fileName string, r io.Reader) (*imports.FileReport, error) {
	return &imports.FileReport{FileName: fileName, Status: enums.RunStatusSuccess}, nil
}

type stubDashboard struct{}

func (stubDashboard) Stats(ctx context.Context) (*dashboard.Stats, error) {
	return &dashboard.Stats{TotalProducts: 3}, nil
}

type stubInventory struct{}

func (stubInventory) ListProducts(ctx context.Context, params pagination.Params, search string) (*inventory.ProductPage, error) {
	return &inventory.ProductPage{}, nil
}

func (stubInventory) ExportCSV(ctx context.Context, w io.Writer) error {
	_, err := w.Write([]byte("MSKU,Product Name\n"))
	return err
}

func (stubInventory) Movements(ctx context.Context, msku string, limit int) ([]models.InventoryMovement, error) {
	return nil, nil
}

type stubCatalog struct{}

func (stubCatalog) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return catalog.NewSnapshot(nil, nil), nil
}

func (stubCatalog) ComboAnalysis(ctx context.Context) ([]catalog.ComboSummary, error) {
	return []catalog.ComboSummary{}, nil
}

func (stubCatalog) Counts(ctx context.Context) (int64, int64, error) { return 0, 0, nil }

type stubRuns struct{}

func (stubRuns) RecordRun(ctx context.Context, input runs.RecordRunInput) (*models.ProcessingRun, error) {
	return &models.ProcessingRun{BatchID: input.BatchID}, nil
}

func (stubRuns) RecentRuns(ctx context.Context, limit int) ([]models.ProcessingRun, error) {
	return []models.ProcessingRun{}, nil
}

func (stubRuns) RunDetail(ctx context.Context, batchID string) (*models.ProcessingRun, []models.SalesRecord, error) {
	return nil, nil, gorm.ErrRecordNotFound
}

type stubInsights struct{}

func (stubInsights) Query(ctx context.Context, question string) (*insights.QueryResult, error) {
	return &insights.QueryResult{Success: true, Query: question}, nil
}

func (stubInsights) Insights(ctx context.Context) ([]insights.Insight, error) {
	return []insights.Insight{}, nil
}

func (stubInsights) SampleQueries() []string {
	return []string{"Which products have low stock levels?"}
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: "test", Port: "0"},
		Ingest: config.IngestConfig{MaxUploadMB: 5},
	}
}

func newTestRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		stubPinger{},
		stubPinger{},
		Services{
			Imports:   stubImports{},
			Dashboard: stubDashboard{},
			Inventory: stubInventory{},
			Catalog:   stubCatalog{},
			Runs:      stubRuns{},
			Insights:  stubInsights{},
		},
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-WMS-Env") != "test" {
		t.Fatalf("missing env header")
	}
}

func TestHealthReadyPingsDependencies(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestImportRejectsNonMultipart(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", strings.NewReader("plain"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestImportAcceptsMultipartUpload(t *testing.T) {
	router := newTestRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", "flipkart_orders.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("Order Item ID,SKU,Quantity\nOD1,SKU1,1\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	payload := body.Data.(map[string]any)
	if payload["count"].(float64) != 1 {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestInventoryExportIsCSV(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/export", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type = %s", ct)
	}
	if !strings.HasPrefix(resp.Body.String(), "MSKU,") {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestRunDetailNotFound(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/missing-batch", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestInsightsQueryValidatesBody(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights/query", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/insights/query", strings.NewReader(`{"query":"top selling products"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
