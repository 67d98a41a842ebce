package controllers

import (
	"net/http"

	"github.com/stockpilot/wms-backend/api/responses"
	"github.com/stockpilot/wms-backend/internal/catalog"
	pkgerrors "github.com/stockpilot/wms-backend/pkg/errors"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

// ComboList serves the combo breakdown used by the mapping screen.
func ComboList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		combos, err := svc.ComboAnalysis(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"combos": combos,
			"count":  len(combos),
		})
	}
}
