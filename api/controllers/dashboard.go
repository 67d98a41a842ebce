package controllers

import (
	"net/http"

	"github.com/stockpilot/wms-backend/api/responses"
	"github.com/stockpilot/wms-backend/internal/dashboard"
	pkgerrors "github.com/stockpilot/wms-backend/pkg/errors"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

// DashboardStats serves the cached dashboard aggregate.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
