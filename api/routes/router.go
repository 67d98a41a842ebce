package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockpilot/wms-backend/api/controllers"
	"github.com/stockpilot/wms-backend/api/middleware"
	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/internal/dashboard"
	"github.com/stockpilot/wms-backend/internal/imports"
	"github.com/stockpilot/wms-backend/internal/insights"
	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/internal/runs"
	"github.com/stockpilot/wms-backend/pkg/config"
	"github.com/stockpilot/wms-backend/pkg/db"
	"github.com/stockpilot/wms-backend/pkg/logger"
	"github.com/stockpilot/wms-backend/pkg/redis"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Imports   imports.Service
	Dashboard dashboard.Service
	Inventory inventory.Service
	Catalog   catalog.Service
	Runs      runs.Service
	Insights  insights.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/imports", controllers.ImportSalesFiles(svcs.Imports, cfg, logg))

		r.Get("/dashboard", controllers.DashboardStats(svcs.Dashboard, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(svcs.Inventory, logg))
			r.Get("/export", controllers.InventoryExport(svcs.Inventory, logg))
			r.Get("/{msku}/movements", controllers.InventoryMovements(svcs.Inventory, logg))
		})

		r.Get("/combos", controllers.ComboList(svcs.Catalog, logg))

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", controllers.RunList(svcs.Runs, logg))
			r.Get("/{batchId}", controllers.RunDetail(svcs.Runs, logg))
		})

		r.Route("/insights", func(r chi.Router) {
			r.Get("/", controllers.InsightsFeed(svcs.Insights, logg))
			r.Post("/query", controllers.InsightsQuery(svcs.Insights, logg))
			r.Get("/samples", controllers.InsightsSamples(svcs.Insights, logg))
		})
	})

	return r
}
