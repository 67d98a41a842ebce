package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
	apperrors "github.com/stockpilot/wms-backend/pkg/errors"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

// Warning flags an MSKU whose stock landed below its buffer or below zero.
type Warning struct {
	MSKU     string              `json:"msku"`
	Severity enums.StockSeverity `json:"severity"`
	Stock    int                 `json:"stock"`
	Message  string              `json:"message"`
}

// EntryResult is the outcome of one per-MSKU delta application.
type EntryResult struct {
	MSKU        string              `json:"msku"`
	Delta       int                 `json:"delta"`
	StockBefore int                 `json:"stock_before"`
	StockAfter  int                 `json:"stock_after"`
	Severity    enums.StockSeverity `json:"severity"`
	Applied     bool                `json:"applied"`
	Reason      string              `json:"reason,omitempty"`
}

// Report summarizes one reconciliation batch.
type Report struct {
	BatchID  string        `json:"batch_id"`
	Applied  int           `json:"applied"`
	Missing  int           `json:"missing"`
	Results  []EntryResult `json:"results"`
	Warnings []Warning     `json:"warnings"`
}

// Reconciler applies signed stock deltas to products, one MSKU at a time.
// Entries are intentionally independent: one missing product or failed
// write never blocks the rest of the batch.
type Reconciler interface {
	Apply(ctx context.Context, deltas map[string]int, batchID string) (*Report, error)
}

type reconciler struct {
	repo Repository
	lock Lock
	logg *logger.Logger
}

// NewReconciler wires a reconciler with its repository and batch lock.
// The lock may be nil when single-writer deployments don't need one.
func NewReconciler(repo Repository, lock Lock, logg *logger.Logger) (Reconciler, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &reconciler{repo: repo, lock: lock, logg: logg}, nil
}

func (r *reconciler) Apply(ctx context.Context, deltas map[string]int, batchID string) (*Report, error) {
	if batchID == "" {
		return nil, fmt.Errorf("batch id is required")
	}

	if r.lock != nil {
		ok, err := r.lock.Acquire(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeDependency, err, "acquiring reconcile lock")
		}
		if !ok {
			return nil, apperrors.New(apperrors.CodeLocked, "another batch is being reconciled")
		}
		defer func() {
			if err := r.lock.Release(ctx); err != nil && r.logg != nil {
				r.logg.Error(ctx, "releasing reconcile lock", err)
			}
		}()
	}

	report := &Report{BatchID: batchID}
	if len(deltas) == 0 {
		return report, nil
	}

	// Deterministic order keeps reports and logs stable.
	mskus := make([]string, 0, len(deltas))
	for msku := range deltas {
		mskus = append(mskus, msku)
	}
	sort.Strings(mskus)

	var errs error
	for _, msku := range mskus {
		result, err := r.applyEntry(ctx, msku, deltas[msku], batchID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", msku, err))
			report.Results = append(report.Results, EntryResult{
				MSKU:   msku,
				Delta:  deltas[msku],
				Reason: err.Error(),
			})
			continue
		}

		report.Results = append(report.Results, *result)
		if !result.Applied {
			report.Missing++
			report.Warnings = append(report.Warnings, Warning{
				MSKU:    msku,
				Stock:   0,
				Message: fmt.Sprintf("MSKU not found: %s", msku),
			})
			continue
		}

		report.Applied++
		switch result.Severity {
		case enums.StockSeverityNegative:
			report.Warnings = append(report.Warnings, Warning{
				MSKU:     msku,
				Severity: result.Severity,
				Stock:    result.StockAfter,
				Message:  fmt.Sprintf("%s: Negative stock (%d)", msku, result.StockAfter),
			})
		case enums.StockSeverityLow:
			report.Warnings = append(report.Warnings, Warning{
				MSKU:     msku,
				Severity: result.Severity,
				Stock:    result.StockAfter,
				Message:  fmt.Sprintf("%s: Low stock (%d)", msku, result.StockAfter),
			})
		}
	}

	if errs != nil && r.logg != nil {
		r.logg.Error(ctx, "reconciliation finished with entry errors", errs)
	}
	return report, errs
}

func (r *reconciler) applyEntry(ctx context.Context, msku string, delta int, batchID string) (*EntryResult, error) {
	product, err := r.repo.FindByMSKU(ctx, msku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &EntryResult{MSKU: msku, Delta: delta, Applied: false, Reason: "MSKU not found"}, nil
		}
		return nil, err
	}

	before := product.CurrentStock
	after := before + delta

	if err := r.repo.UpdateStock(ctx, product.ID, after); err != nil {
		return nil, err
	}

	movement := &models.InventoryMovement{
		MSKU:           msku,
		MovementType:   enums.MovementTypeSale,
		QuantityChange: delta,
		StockBefore:    before,
		StockAfter:     after,
		ReferenceID:    batchID,
	}
	if err := r.repo.CreateMovement(ctx, movement); err != nil {
		return nil, err
	}

	return &EntryResult{
		MSKU:        msku,
		Delta:       delta,
		StockBefore: before,
		StockAfter:  after,
		Severity:    enums.ClassifyStock(after, product.BufferStock),
		Applied:     true,
	}, nil
}
