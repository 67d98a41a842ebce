package ingest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stockpilot/wms-backend/pkg/enums"
	apperrors "github.com/stockpilot/wms-backend/pkg/errors"
)

// Line is one expanded output row. A combo input row fans out into one
// Line per component; a single or unresolved row maps to exactly one Line.
type Line struct {
	OriginalSKU       string
	MSKU              string
	Quantity          int
	Class             enums.LineClass
	OrderID           string
	SaleDate          *time.Time
	CustomerState     string
	FulfillmentCenter string
	EventType         string
	Disposition       string
}

// RowFailure describes one data row the expander could not process.
type RowFailure struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
}

// ExpandResult carries the expanded lines plus the signed per-MSKU stock
// deltas (negative for sales) and the per-row bookkeeping.
type ExpandResult struct {
	Lines          []Line
	Deltas         map[string]int
	TotalRows      int
	ProcessedRows  int
	SkippedRows    int
	FailedRows     int
	UnresolvedRows int
	Failures       []RowFailure
}

// Expander turns parsed sales rows into expanded lines and stock deltas.
type Expander struct {
	resolver *Resolver
}

// NewExpander wires an expander over the given resolver.
func NewExpander(resolver *Resolver) (*Expander, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver required")
	}
	return &Expander{resolver: resolver}, nil
}

// Expand processes every data row of the file. A missing SKU column for
// the detected platform rejects the whole file; per-row problems are
// recorded and processing continues.
func (e *Expander) Expand(file *File, platform enums.Platform) (*ExpandResult, error) {
	if file == nil {
		return nil, apperrors.New(apperrors.CodeFileRejected, "no file content")
	}

	skuCol, ok := SKUColumn(file.Headers, platform)
	if !ok {
		return nil, apperrors.New(apperrors.CodeFileRejected,
			fmt.Sprintf("no SKU column found for platform %s", platform))
	}

	hasQuantityCol := hasHeader(file.Headers, "Quantity")

	result := &ExpandResult{
		Deltas:    map[string]int{},
		TotalRows: len(file.Rows),
	}

	for _, row := range file.Rows {
		sku := row.Get(skuCol)
		if sku == "" {
			result.SkippedRows++
			continue
		}

		qty, err := rowQuantity(row, hasQuantityCol)
		if err != nil {
			result.FailedRows++
			result.Failures = append(result.Failures, RowFailure{
				RowIndex: row.Index,
				Reason:   err.Error(),
			})
			continue
		}
		if qty <= 0 {
			result.SkippedRows++
			continue
		}

		// Amazon exports mix event types; only sellable shipments count.
		if platform == enums.PlatformAmazon {
			if row.Get("Event Type") != "Shipments" || row.Get("Disposition") != "SELLABLE" {
				result.SkippedRows++
				continue
			}
		}

		base := Line{
			OriginalSKU:       sku,
			Quantity:          qty,
			OrderID:           firstValue(row, "Order ID", "Order Item ID", "Sub Order No", "Amazon Order Id", "Reference ID"),
			SaleDate:          rowSaleDate(row),
			CustomerState:     firstValue(row, "Customer State", "State"),
			FulfillmentCenter: row.Get("Fulfillment Center"),
			EventType:         row.Get("Event Type"),
			Disposition:       row.Get("Disposition"),
		}

		outcome := e.resolver.Resolve(sku, platform)
		switch outcome.Kind {
		case ResolutionCombo:
			// Every component consumes the full original quantity times
			// its per-unit quantity.
			for _, comp := range outcome.Combo.Components {
				line := base
				line.MSKU = comp.MSKU
				line.Quantity = qty * comp.Quantity
				line.Class = enums.LineClassComboComponent
				result.Lines = append(result.Lines, line)
				result.Deltas[comp.MSKU] -= qty * comp.Quantity
			}
			result.ProcessedRows++

		case ResolutionSingle:
			line := base
			line.MSKU = outcome.MSKU
			line.Class = enums.LineClassSingle
			result.Lines = append(result.Lines, line)
			result.Deltas[outcome.MSKU] -= qty
			result.ProcessedRows++

		default:
			line := base
			line.MSKU = outcome.MSKU
			line.Class = enums.LineClassUnknown
			result.Lines = append(result.Lines, line)
			result.ProcessedRows++
			result.UnresolvedRows++
		}
	}

	return result, nil
}

func rowQuantity(row Row, hasQuantityCol bool) (int, error) {
	if !hasQuantityCol {
		return 1, nil
	}
	raw := row.Get("Quantity")
	if raw == "" {
		return 1, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	if fv, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(fv), nil
	}
	return 0, fmt.Errorf("invalid quantity %q", raw)
}

var saleDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-01-2006",
	"01/02/2006",
}

func rowSaleDate(row Row) *time.Time {
	raw := firstValue(row, "Date", "Order Date", "Ordered On", "Purchase Date")
	if raw == "" {
		return nil
	}
	for _, format := range saleDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return &t
		}
	}
	return nil
}

func firstValue(row Row, headers ...string) string {
	for _, h := range headers {
		if v := row.Get(h); v != "" {
			return v
		}
	}
	return ""
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if normalizeHeader(h) == normalizeHeader(name) {
			return true
		}
	}
	return false
}
