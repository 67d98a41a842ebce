package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stockpilot/wms-backend/api/routes"
	"github.com/stockpilot/wms-backend/internal/alerts"
	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/internal/dashboard"
	"github.com/stockpilot/wms-backend/internal/imports"
	"github.com/stockpilot/wms-backend/internal/insights"
	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/internal/runs"
	"github.com/stockpilot/wms-backend/pkg/config"
	"github.com/stockpilot/wms-backend/pkg/db"
	"github.com/stockpilot/wms-backend/pkg/logger"
	"github.com/stockpilot/wms-backend/pkg/metrics"
	"github.com/stockpilot/wms-backend/pkg/migrate"
	"github.com/stockpilot/wms-backend/pkg/pubsub"
	"github.com/stockpilot/wms-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var alertSvc alerts.Service
	if cfg.FeatureFlags.StockAlerts && cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer pubsubClient.Close()

		alertSvc, err = alerts.NewService(pubsubClient.StockAlertsPublisher(), logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create alerts service", err)
			os.Exit(1)
		}
	}

	gormDB := dbClient.DB()

	catalogSvc, err := catalog.NewService(catalog.NewRepository(gormDB))
	if err != nil {
		fatal(logg, "failed to create catalog service", err)
	}

	inventoryRepo := inventory.NewRepository(gormDB)
	inventorySvc, err := inventory.NewService(inventoryRepo)
	if err != nil {
		fatal(logg, "failed to create inventory service", err)
	}

	lock, err := inventory.NewRedisLock(redisClient, redisClient.LockKey("reconcile"), cfg.Reconcile.LockTTL)
	if err != nil {
		fatal(logg, "failed to create reconcile lock", err)
	}
	reconciler, err := inventory.NewReconciler(inventoryRepo, lock, logg)
	if err != nil {
		fatal(logg, "failed to create reconciler", err)
	}

	runsSvc, err := runs.NewService(runs.NewRepository(gormDB))
	if err != nil {
		fatal(logg, "failed to create runs service", err)
	}

	ingestMetrics := metrics.NewIngestMetrics(prometheus.DefaultRegisterer)

	importsSvc, err := imports.NewService(catalogSvc, reconciler, runsSvc, alertSvc, ingestMetrics, logg)
	if err != nil {
		fatal(logg, "failed to create import service", err)
	}

	dashboardSvc, err := dashboard.NewService(catalogSvc, inventoryRepo, redisClient, cfg.Dashboard.CacheTTL, logg)
	if err != nil {
		fatal(logg, "failed to create dashboard service", err)
	}

	insightsSvc, err := insights.NewService(insights.NewGormExecutor(gormDB), logg)
	if err != nil {
		fatal(logg, "failed to create insights service", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Imports:   importsSvc,
			Dashboard: dashboardSvc,
			Inventory: inventorySvc,
			Catalog:   catalogSvc,
			Runs:      runsSvc,
			Insights:  insightsSvc,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func fatal(logg *logger.Logger, msg string, err error) {
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
