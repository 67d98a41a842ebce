package enums

// ChartKind tells the dashboard how to render an insight result set.
type ChartKind string

const (
	ChartKindBar        ChartKind = "bar"
	ChartKindPie        ChartKind = "pie"
	ChartKindTable      ChartKind = "table"
	ChartKindStackedBar ChartKind = "stacked_bar"
	ChartKindMetric     ChartKind = "metric"
)

// String implements fmt.Stringer.
func (k ChartKind) String() string {
	return string(k)
}
