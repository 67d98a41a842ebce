package insights

import "strings"

// Match maps a free-text question onto one of the canned report templates.
// This is deliberately rule-based: a fixed keyword table, no language model.
func Match(query string) Matched {
	q := strings.ToLower(query)

	switch {
	case containsAny(q, "top", "best", "highest", "most"):
		if containsAny(q, "selling", "sold", "sales") {
			return topSelling(30, 10)
		}
		return productCount()

	case containsAny(q, "low stock", "stock level", "inventory"):
		return lowStock()

	case containsAny(q, "platform", "amazon", "flipkart", "meesho"):
		return platformSales(30)

	case containsAny(q, "negative", "shortage"):
		return negativeStock()

	case containsAny(q, "movement", "flow"):
		return inventoryMovement(7)

	default:
		return productCount()
	}
}

// SampleQueries lists phrasings the matcher understands, surfaced to users.
func SampleQueries() []string {
	return []string{
		"Show me top 10 selling products this month",
		"Which products have low stock levels?",
		"What are the sales trends for Amazon platform?",
		"Show inventory movement for combo products",
		"Which MSKUs have negative stock?",
		"Compare sales performance across platforms",
		"Show products with highest profit margins",
		"What's the inventory turnover rate?",
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
