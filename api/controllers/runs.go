package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/stockpilot/wms-backend/api/responses"
	"github.com/stockpilot/wms-backend/api/validators"
	"github.com/stockpilot/wms-backend/internal/runs"
	pkgerrors "github.com/stockpilot/wms-backend/pkg/errors"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

// RunList serves the most recent processing runs, newest first.
func RunList(svc runs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "runs service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recent, err := svc.RecentRuns(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"runs":  recent,
			"count": len(recent),
		})
	}
}

// RunDetail serves one processing run with its persisted sale lines.
func RunDetail(svc runs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "runs service unavailable"))
			return
		}

		batchID := strings.TrimSpace(chi.URLParam(r, "batchId"))
		if batchID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "batch id is required"))
			return
		}

		run, records, err := svc.RunDetail(r.Context(), batchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "processing run not found")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"run":     run,
			"records": records,
		})
	}
}
