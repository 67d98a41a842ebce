package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/stockpilot/wms-backend/pkg/errors"
)

func TestParseQueryIntDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/inventory", nil)
	got, err := ParseQueryInt(r, "limit", 25, 1, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected default 25 got %d", got)
	}
}

func TestParseQueryIntRejectsNonNumeric(t *testing.T) {
	r := httptest.NewRequest("GET", "/inventory?limit=abc", nil)
	_, err := ParseQueryInt(r, "limit", 25, 1, 200)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestParseQueryIntRejectsOutOfRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/inventory?limit=9999", nil)
	_, err := ParseQueryInt(r, "limit", 25, 1, 200)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestParseQueryIntAcceptsValue(t *testing.T) {
	r := httptest.NewRequest("GET", "/inventory?limit=50", nil)
	got, err := ParseQueryInt(r, "limit", 25, 1, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50 {
		t.Fatalf("expected 50 got %d", got)
	}
}
