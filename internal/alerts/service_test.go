package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/pkg/enums"
)

type fakeSender struct {
	sent    [][]byte
	attrs   []map[string]string
	sendErr error
}

func (f *fakeSender) send(ctx context.Context, data []byte, attrs map[string]string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, data)
	f.attrs = append(f.attrs, attrs)
	return nil
}

func TestPublishWarnings(t *testing.T) {
	fake := &fakeSender{}
	svc := &service{sender: fake}

	warnings := []inventory.Warning{
		{MSKU: "MSKU001", Severity: enums.StockSeverityNegative, Stock: -3, Message: "MSKU001: Negative stock (-3)"},
		{MSKU: "MSKU002", Severity: enums.StockSeverityLow, Stock: 4, Message: "MSKU002: Low stock (4)"},
	}

	svc.PublishWarnings(context.Background(), "batch-1", warnings)

	if len(fake.sent) != 2 {
		t.Fatalf("expected 2 events, got %d", len(fake.sent))
	}

	var event StockAlertEvent
	if err := json.Unmarshal(fake.sent[0], &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if event.MSKU != "MSKU001" || event.Severity != "Negative" || event.Stock != -3 {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.BatchID != "batch-1" {
		t.Fatalf("batch id = %q", event.BatchID)
	}
	if fake.attrs[0]["severity"] != "Negative" {
		t.Fatalf("unexpected attributes: %v", fake.attrs[0])
	}
}

func TestPublishWarningsFailuresDoNotPanic(t *testing.T) {
	fake := &fakeSender{sendErr: errors.New("topic unavailable")}
	svc := &service{sender: fake}

	// Best-effort: a publish failure must not propagate.
	svc.PublishWarnings(context.Background(), "batch-2", []inventory.Warning{
		{MSKU: "MSKU001", Severity: enums.StockSeverityLow, Stock: 2},
	})
}
