//go:build db
// +build db

package inventory

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
	"github.com/stockpilot/wms-backend/pkg/pagination"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("WMS_DB_DSN")
	if dsn == "" {
		t.Skip("WMS_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func seedProduct(t *testing.T, tx *gorm.DB, msku string, stock, buffer int) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:           uuid.New(),
		MSKU:         msku,
		ProductName:  "Product " + msku,
		OpeningStock: stock,
		CurrentStock: stock,
		BufferStock:  buffer,
	}
	if err := tx.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func TestRepositoryStockFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	msku := fmt.Sprintf("WMS_TEST_%s", uuid.NewString()[:8])
	p := seedProduct(t, tx, msku, 85, 10)

	found, err := repo.FindByMSKU(ctx, msku)
	if err != nil {
		t.Fatalf("find by msku: %v", err)
	}
	if found.CurrentStock != 85 {
		t.Fatalf("current stock = %d", found.CurrentStock)
	}

	if err := repo.UpdateStock(ctx, p.ID, 82); err != nil {
		t.Fatalf("update stock: %v", err)
	}
	if err := repo.CreateMovement(ctx, &models.InventoryMovement{
		ID:             uuid.New(),
		MSKU:           msku,
		MovementType:   enums.MovementTypeSale,
		QuantityChange: -3,
		StockBefore:    85,
		StockAfter:     82,
		ReferenceID:    "batch-test",
	}); err != nil {
		t.Fatalf("create movement: %v", err)
	}

	moves, err := repo.ListMovements(ctx, msku, 10)
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	if len(moves) != 1 || moves[0].StockAfter != 82 {
		t.Fatalf("movements = %+v", moves)
	}
}

func TestRepositoryListPagination(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	prefix := fmt.Sprintf("WMS_PAGE_%s", uuid.NewString()[:8])
	for i := 0; i < 3; i++ {
		seedProduct(t, tx, fmt.Sprintf("%s_%d", prefix, i), 10+i, 5)
	}

	first, err := repo.List(ctx, ListParams{Search: prefix, Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 rows got %d", len(first))
	}

	rest, err := repo.List(ctx, ListParams{
		Search: prefix,
		Limit:  3,
		Cursor: &pagination.Cursor{Key: first[1].MSKU, ID: first[1].ID},
	})
	if err != nil {
		t.Fatalf("list after cursor: %v", err)
	}
	if len(rest) != 1 || rest[0].MSKU != first[2].MSKU {
		t.Fatalf("cursor page = %+v", rest)
	}
}
