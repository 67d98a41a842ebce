package imports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot/wms-backend/internal/alerts"
	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/internal/ingest"
	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/internal/runs"
	"github.com/stockpilot/wms-backend/pkg/enums"
	apperrors "github.com/stockpilot/wms-backend/pkg/errors"
	"github.com/stockpilot/wms-backend/pkg/logger"
	"github.com/stockpilot/wms-backend/pkg/metrics"
)

// FileReport is the per-file outcome returned to the uploader. A
// structurally broken file still produces a report with status Failed.
type FileReport struct {
	BatchID           string              `json:"batch_id"`
	FileName          string              `json:"file_name"`
	Platform          enums.Platform      `json:"platform"`
	Status            enums.RunStatus     `json:"status"`
	TotalRows         int                 `json:"total_rows"`
	SuccessfulRows    int                 `json:"successful_rows"`
	FailedRows        int                 `json:"failed_rows"`
	SkippedRows       int                 `json:"skipped_rows"`
	UnresolvedRows    int                 `json:"unresolved_rows"`
	ProcessingSeconds float64             `json:"processing_seconds"`
	Failures          []ingest.RowFailure `json:"failures,omitempty"`
	Reconciliation    *inventory.Report   `json:"reconciliation,omitempty"`
	Error             string              `json:"error,omitempty"`
}

// Service runs the full pipeline for one uploaded sales file: detect,
// expand, reconcile, persist, report.
type Service interface {
	ProcessFile(ctx context.Context, fileName string, r io.Reader) (*FileReport, error)
}

type service struct {
	catalogSvc catalog.Service
	reconciler inventory.Reconciler
	runsSvc    runs.Service
	alertSvc   alerts.Service
	metrics    *metrics.IngestMetrics
	logg       *logger.Logger
}

// NewService wires the import pipeline. The alert service and metrics may
// be nil; both degrade to no-ops.
func NewService(
	catalogSvc catalog.Service,
	reconciler inventory.Reconciler,
	runsSvc runs.Service,
	alertSvc alerts.Service,
	ingestMetrics *metrics.IngestMetrics,
	logg *logger.Logger,
) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if reconciler == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	if runsSvc == nil {
		return nil, fmt.Errorf("runs service required")
	}
	return &service{
		catalogSvc: catalogSvc,
		reconciler: reconciler,
		runsSvc:    runsSvc,
		alertSvc:   alertSvc,
		metrics:    ingestMetrics,
		logg:       logg,
	}, nil
}

func (s *service) ProcessFile(ctx context.Context, fileName string, r io.Reader) (*FileReport, error) {
	start := time.Now()
	batchID := uuid.NewString()

	if s.logg != nil {
		ctx = s.logg.WithBatchID(ctx, batchID)
		ctx = s.logg.WithFile(ctx, fileName)
	}

	report := &FileReport{
		BatchID:  batchID,
		FileName: fileName,
		Platform: enums.PlatformUnknown,
	}

	file, err := ingest.ParseFile(fileName, r)
	if err != nil {
		return s.finishRejected(ctx, report, start, err)
	}

	report.Platform = ingest.DetectPlatform(file.Headers)
	if s.logg != nil {
		ctx = s.logg.WithPlatform(ctx, report.Platform.String())
	}

	snapshot, err := s.catalogSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog snapshot: %w", err)
	}
	resolver, err := ingest.NewResolver(snapshot)
	if err != nil {
		return nil, err
	}
	expander, err := ingest.NewExpander(resolver)
	if err != nil {
		return nil, err
	}

	expanded, err := expander.Expand(file, report.Platform)
	if err != nil {
		return s.finishRejected(ctx, report, start, err)
	}

	report.TotalRows = expanded.TotalRows
	report.SuccessfulRows = expanded.ProcessedRows
	report.FailedRows = expanded.FailedRows
	report.SkippedRows = expanded.SkippedRows
	report.UnresolvedRows = expanded.UnresolvedRows
	report.Failures = expanded.Failures

	reconciliation, err := s.reconciler.Apply(ctx, expanded.Deltas, batchID)
	if err != nil {
		if typed := apperrors.As(err); typed != nil && typed.Code() == apperrors.CodeLocked {
			return nil, err
		}
		// Entry-level errors: the report is still usable.
		if s.logg != nil {
			s.logg.Error(ctx, "reconciliation completed with errors", err)
		}
	}
	report.Reconciliation = reconciliation

	report.ProcessingSeconds = time.Since(start).Seconds()

	run, err := s.runsSvc.RecordRun(ctx, runs.RecordRunInput{
		BatchID:           batchID,
		FileName:          fileName,
		Platform:          report.Platform,
		TotalRows:         report.TotalRows,
		SuccessfulRows:    report.SuccessfulRows,
		FailedRows:        report.FailedRows,
		SkippedRows:       report.SkippedRows,
		ProcessingSeconds: report.ProcessingSeconds,
		Lines:             expanded.Lines,
	})
	if err != nil {
		return nil, fmt.Errorf("recording processing run: %w", err)
	}
	report.Status = run.Status

	s.observe(report)

	if s.alertSvc != nil && reconciliation != nil && len(reconciliation.Warnings) > 0 {
		s.alertSvc.PublishWarnings(ctx, batchID, reconciliation.Warnings)
	}

	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("processed %d rows (%d ok, %d failed, %d skipped)",
			report.TotalRows, report.SuccessfulRows, report.FailedRows, report.SkippedRows))
	}
	return report, nil
}

// finishRejected records a Failed run for a structurally broken file and
// returns the report without an error: a bad file is a per-file outcome,
// not a server fault.
func (s *service) finishRejected(ctx context.Context, report *FileReport, start time.Time, cause error) (*FileReport, error) {
	report.Status = enums.RunStatusFailed
	report.ProcessingSeconds = time.Since(start).Seconds()
	if typed := apperrors.As(cause); typed != nil {
		report.Error = typed.Message()
	} else {
		report.Error = cause.Error()
	}

	if s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("file rejected: %s", report.Error))
	}

	if _, err := s.runsSvc.RecordRun(ctx, runs.RecordRunInput{
		BatchID:           report.BatchID,
		FileName:          report.FileName,
		Platform:          report.Platform,
		ProcessingSeconds: report.ProcessingSeconds,
		ErrorMessage:      report.Error,
	}); err != nil && s.logg != nil {
		s.logg.Error(ctx, "recording rejected run", err)
	}

	s.observe(report)
	return report, nil
}

func (s *service) observe(report *FileReport) {
	if s.metrics == nil {
		return
	}
	platform := report.Platform.String()
	s.metrics.ObserveDuration(platform, time.Duration(report.ProcessingSeconds*float64(time.Second)))
	s.metrics.AddRows(platform, "successful", report.SuccessfulRows)
	s.metrics.AddRows(platform, "failed", report.FailedRows)
	s.metrics.AddRows(platform, "skipped", report.SkippedRows)
	s.metrics.IncRun(platform, report.Status.String())
}
