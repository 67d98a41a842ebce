package controllers

import (
	"net/http"

	"github.com/stockpilot/wms-backend/api/responses"
	"github.com/stockpilot/wms-backend/api/validators"
	"github.com/stockpilot/wms-backend/internal/insights"
	pkgerrors "github.com/stockpilot/wms-backend/pkg/errors"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

type insightsQueryRequest struct {
	Query string `json:"query" validate:"required,min=2,max=500"`
}

// InsightsQuery answers one natural-language reporting question.
func InsightsQuery(svc insights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insights service unavailable"))
			return
		}

		var payload insightsQueryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Query(r.Context(), payload.Query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// InsightsFeed serves the automated insights summary.
func InsightsFeed(svc insights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insights service unavailable"))
			return
		}

		feed, err := svc.Insights(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"insights": feed,
			"count":    len(feed),
		})
	}
}

// InsightsSamples lists question phrasings the matcher understands.
func InsightsSamples(svc insights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insights service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"samples": svc.SampleQueries()})
	}
}
