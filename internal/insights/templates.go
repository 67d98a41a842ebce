package insights

import (
	"time"

	"github.com/stockpilot/wms-backend/pkg/enums"
)

// TemplateKey names one canned report.
type TemplateKey string

const (
	TemplateTopSelling        TemplateKey = "top_selling"
	TemplateLowStock          TemplateKey = "low_stock"
	TemplatePlatformSales     TemplateKey = "platform_sales"
	TemplateNegativeStock     TemplateKey = "negative_stock"
	TemplateInventoryMovement TemplateKey = "inventory_movement"
	TemplateProductCount      TemplateKey = "product_count"
)

// Matched is a resolved query: the SQL to run plus its presentation.
type Matched struct {
	Key   TemplateKey
	SQL   string
	Args  []any
	Chart enums.ChartKind
	Title string
}

const (
	sqlTopSelling = `
		SELECT p.product_name, p.msku, SUM(s.quantity) AS total_sold
		FROM products p
		JOIN sales_records s ON p.msku = s.msku
		WHERE s.sale_date >= ?
		GROUP BY p.msku, p.product_name
		ORDER BY total_sold DESC
		LIMIT ?`

	sqlLowStock = `
		SELECT product_name, msku, current_stock, buffer_stock,
		       (current_stock - buffer_stock) AS stock_difference
		FROM products
		WHERE current_stock < buffer_stock
		ORDER BY stock_difference ASC`

	sqlPlatformSales = `
		SELECT platform, COUNT(*) AS order_count, SUM(quantity) AS total_quantity
		FROM sales_records
		WHERE sale_date >= ?
		GROUP BY platform
		ORDER BY total_quantity DESC`

	sqlNegativeStock = `
		SELECT product_name, msku, current_stock, opening_stock
		FROM products
		WHERE current_stock < 0
		ORDER BY current_stock ASC`

	sqlInventoryMovement = `
		SELECT p.product_name, im.movement_type,
		       SUM(im.quantity_change) AS total_movement,
		       COUNT(*) AS movement_count
		FROM inventory_movements im
		JOIN products p ON im.msku = p.msku
		WHERE im.created_at >= ?
		GROUP BY p.msku, p.product_name, im.movement_type
		ORDER BY total_movement DESC`

	sqlProductCount = `SELECT COUNT(*) AS total_products FROM products`
)

func topSelling(days, limit int) Matched {
	return Matched{
		Key:   TemplateTopSelling,
		SQL:   sqlTopSelling,
		Args:  []any{daysAgo(days), limit},
		Chart: enums.ChartKindBar,
		Title: "Top Selling Products (Last 30 Days)",
	}
}

func lowStock() Matched {
	return Matched{
		Key:   TemplateLowStock,
		SQL:   sqlLowStock,
		Chart: enums.ChartKindTable,
		Title: "Low Stock Products",
	}
}

func platformSales(days int) Matched {
	return Matched{
		Key:   TemplatePlatformSales,
		SQL:   sqlPlatformSales,
		Args:  []any{daysAgo(days)},
		Chart: enums.ChartKindPie,
		Title: "Sales by Platform (Last 30 Days)",
	}
}

func negativeStock() Matched {
	return Matched{
		Key:   TemplateNegativeStock,
		SQL:   sqlNegativeStock,
		Chart: enums.ChartKindTable,
		Title: "Products with Negative Stock",
	}
}

func inventoryMovement(days int) Matched {
	return Matched{
		Key:   TemplateInventoryMovement,
		SQL:   sqlInventoryMovement,
		Args:  []any{daysAgo(days)},
		Chart: enums.ChartKindStackedBar,
		Title: "Inventory Movements (Last 7 Days)",
	}
}

func productCount() Matched {
	return Matched{
		Key:   TemplateProductCount,
		SQL:   sqlProductCount,
		Chart: enums.ChartKindMetric,
		Title: "Total Products",
	}
}

func daysAgo(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}
