package enums

// StockSeverity classifies a product's stock level after reconciliation.
type StockSeverity string

const (
	StockSeverityNegative StockSeverity = "Negative"
	StockSeverityLow      StockSeverity = "Low"
	StockSeverityNormal   StockSeverity = "Normal"
)

// String implements fmt.Stringer.
func (s StockSeverity) String() string {
	return string(s)
}

// ClassifyStock buckets a stock level against the product's buffer threshold.
// Below zero is Negative, below buffer is Low, anything else Normal.
func ClassifyStock(stock, buffer int) StockSeverity {
	switch {
	case stock < 0:
		return StockSeverityNegative
	case stock < buffer:
		return StockSeverityLow
	default:
		return StockSeverityNormal
	}
}
