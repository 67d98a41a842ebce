package insights

import (
	"github.com/shopspring/decimal"
)

// addCalculatedFields appends derived columns when their source columns are
// present, mirroring what analysts expect next to the raw numbers. It
// returns the names of the fields it added.
func addCalculatedFields(rows []map[string]any) []string {
	if len(rows) == 0 {
		return nil
	}

	added := map[string]bool{}
	for _, row := range rows {
		if totalSold, ok1 := numericValue(row["total_sold"]); ok1 {
			if unitPrice, ok2 := numericValue(row["unit_price"]); ok2 {
				row["revenue"] = totalSold.Mul(unitPrice).Round(2).InexactFloat64()
				added["revenue"] = true
			}
		}

		if current, ok1 := numericValue(row["current_stock"]); ok1 {
			if buffer, ok2 := numericValue(row["buffer_stock"]); ok2 {
				row["stock_status"] = stockStatus(current, buffer)
				added["stock_status"] = true
			}
		}

		if cost, ok1 := numericValue(row["unit_cost"]); ok1 {
			if price, ok2 := numericValue(row["selling_price"]); ok2 && !price.IsZero() {
				margin := price.Sub(cost).Div(price).Mul(decimal.NewFromInt(100))
				row["profit_margin"] = margin.Round(2).InexactFloat64()
				added["profit_margin"] = true
			}
		}

		if opening, ok1 := numericValue(row["opening_stock"]); ok1 {
			if current, ok2 := numericValue(row["current_stock"]); ok2 {
				change := current.Sub(opening)
				row["stock_change"] = change.IntPart()
				added["stock_change"] = true
				if !opening.IsZero() {
					pct := change.Div(opening).Mul(decimal.NewFromInt(100))
					row["stock_change_pct"] = pct.Round(2).InexactFloat64()
					added["stock_change_pct"] = true
				}
			}
		}
	}

	names := make([]string, 0, len(added))
	for _, name := range []string{"revenue", "stock_status", "profit_margin", "stock_change", "stock_change_pct"} {
		if added[name] {
			names = append(names, name)
		}
	}
	return names
}

func stockStatus(current, buffer decimal.Decimal) string {
	switch {
	case current.LessThan(buffer):
		return "Critical"
	case current.LessThan(buffer.Mul(decimal.NewFromInt(2))):
		return "Low"
	default:
		return "Normal"
	}
}

func numericValue(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case nil:
		return decimal.Zero, false
	case int:
		return decimal.NewFromInt(int64(value)), true
	case int32:
		return decimal.NewFromInt(int64(value)), true
	case int64:
		return decimal.NewFromInt(value), true
	case float32:
		return decimal.NewFromFloat32(value), true
	case float64:
		return decimal.NewFromFloat(value), true
	case string:
		d, err := decimal.NewFromString(value)
		return d, err == nil
	case []byte:
		d, err := decimal.NewFromString(string(value))
		return d, err == nil
	case decimal.Decimal:
		return value, true
	default:
		return decimal.Zero, false
	}
}
