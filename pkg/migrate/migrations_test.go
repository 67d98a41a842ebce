package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stockpilot/wms-backend/pkg/migrate"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestCatalogMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_catalog_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS sku_mappings",
		"CREATE TABLE IF NOT EXISTS combo_products",
		"CREATE TABLE IF NOT EXISTS combo_components",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_combo_products_combo_sku",
		"ON DELETE CASCADE",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSalesMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_sales_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS sales_records",
		"CREATE TABLE IF NOT EXISTS processing_runs",
		"CREATE INDEX IF NOT EXISTS idx_sales_records_batch_id",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_processing_runs_batch_id",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
