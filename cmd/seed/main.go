package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/pkg/config"
	"github.com/stockpilot/wms-backend/pkg/db"
	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

// seed loads the master workbook into the catalog and product tables.
// Re-running it is safe: mappings and products upsert, combos are
// replaced wholesale.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	workbook := flag.String("workbook", "", "path to the master workbook (defaults to the configured one)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	path := *workbook
	if path == "" {
		path = cfg.Catalog.WorkbookPath
	}
	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"workbook": path,
	})

	data, err := catalog.LoadWorkbook(path, cfg.Catalog)
	requireResource(ctx, logg, "workbook", err)

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	catalogRepo := catalog.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())

	if err := catalogRepo.UpsertMappings(ctx, data.Mappings); err != nil {
		fail(ctx, logg, "seeding sku mappings", err)
	}
	for i := range data.Combos {
		if err := catalogRepo.UpsertCombo(ctx, &data.Combos[i]); err != nil {
			fail(logg.WithField(ctx, "combo_sku", data.Combos[i].ComboSKU), logg, "seeding combo", err)
		}
	}

	products := make([]models.Product, 0, len(data.Inventory))
	for _, item := range data.Inventory {
		products = append(products, models.Product{
			MSKU:         item.MSKU,
			ProductName:  item.ProductName,
			OpeningStock: item.OpeningStock,
			CurrentStock: item.OpeningStock,
			BufferStock:  item.BufferStock,
		})
	}
	if err := inventoryRepo.UpsertProducts(ctx, products); err != nil {
		fail(ctx, logg, "seeding products", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"mappings": len(data.Mappings),
		"combos":   len(data.Combos),
		"products": len(products),
	})
	logg.Info(ctx, "seed complete")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

func fail(ctx context.Context, logg *logger.Logger, msg string, err error) {
	logg.Error(ctx, msg, err)
	os.Exit(1)
}
