package insights

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stockpilot/wms-backend/pkg/enums"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

// Executor runs a canned SQL statement and returns generic row maps.
type Executor interface {
	Query(ctx context.Context, sql string, args ...any) ([]map[string]any, error)
}

// QueryResult is the response to one natural-language question.
type QueryResult struct {
	Success          bool             `json:"success"`
	Query            string           `json:"query"`
	Title            string           `json:"title"`
	Chart            enums.ChartKind  `json:"chart_type"`
	Data             []map[string]any `json:"data,omitempty"`
	RowCount         int              `json:"row_count"`
	CalculatedFields []string         `json:"calculated_fields,omitempty"`
	Message          string           `json:"message,omitempty"`
}

// Insight is one entry of the automated insights feed.
type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Service answers canned natural-language reporting questions.
type Service interface {
	Query(ctx context.Context, question string) (*QueryResult, error)
	Insights(ctx context.Context) ([]Insight, error)
	SampleQueries() []string
}

type service struct {
	exec Executor
	logg *logger.Logger
}

// NewService wires an insights service over a SQL executor.
func NewService(exec Executor, logg *logger.Logger) (Service, error) {
	if exec == nil {
		return nil, fmt.Errorf("sql executor required")
	}
	return &service{exec: exec, logg: logg}, nil
}

func (s *service) Query(ctx context.Context, question string) (*QueryResult, error) {
	matched := Match(question)

	rows, err := s.exec.Query(ctx, matched.SQL, matched.Args...)
	if err != nil {
		return nil, fmt.Errorf("executing %s report: %w", matched.Key, err)
	}

	result := &QueryResult{
		Query: question,
		Title: matched.Title,
		Chart: matched.Chart,
	}
	if len(rows) == 0 {
		result.Message = "No data found for your query"
		return result, nil
	}

	result.Success = true
	result.CalculatedFields = addCalculatedFields(rows)
	result.Data = rows
	result.RowCount = len(rows)
	return result, nil
}

func (s *service) Insights(ctx context.Context) ([]Insight, error) {
	insights := []Insight{}

	top := topSelling(7, 5)
	if rows, err := s.exec.Query(ctx, top.SQL, top.Args...); err == nil && len(rows) > 0 {
		name := stringValue(rows[0]["product_name"])
		sold := intValue(rows[0]["total_sold"])
		insights = append(insights, Insight{
			Type:    "success",
			Title:   "Top Performer",
			Message: fmt.Sprintf("%s is your best seller with %d units sold this week", name, sold),
		})
	} else if err != nil && s.logg != nil {
		s.logg.Warn(ctx, "top performer insight unavailable")
	}

	low := lowStock()
	if rows, err := s.exec.Query(ctx, low.SQL, low.Args...); err == nil && len(rows) > 0 {
		critical := 0
		for _, row := range rows {
			if intValue(row["stock_difference"]) < -5 {
				critical++
			}
		}
		if critical > 0 {
			insights = append(insights, Insight{
				Type:    "warning",
				Title:   "Stock Alert",
				Message: fmt.Sprintf("%d products have critically low stock levels", critical),
			})
		}
	} else if err != nil && s.logg != nil {
		s.logg.Warn(ctx, "stock alert insight unavailable")
	}

	platforms := platformSales(7)
	if rows, err := s.exec.Query(ctx, platforms.SQL, platforms.Args...); err == nil && len(rows) > 0 {
		insights = append(insights, Insight{
			Type:    "info",
			Title:   "Platform Performance",
			Message: fmt.Sprintf("%s is your top platform with %d units sold", stringValue(rows[0]["platform"]), intValue(rows[0]["total_quantity"])),
		})
	} else if err != nil && s.logg != nil {
		s.logg.Warn(ctx, "platform insight unavailable")
	}

	return insights, nil
}

func (s *service) SampleQueries() []string {
	return SampleQueries()
}

// GormExecutor adapts a GORM connection to the Executor interface.
type GormExecutor struct {
	db *gorm.DB
}

// NewGormExecutor wraps the provided GORM connection.
func NewGormExecutor(db *gorm.DB) *GormExecutor {
	return &GormExecutor{db: db}
}

func (e *GormExecutor) Query(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	var rows []map[string]any
	if err := e.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func stringValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func intValue(v any) int {
	d, ok := numericValue(v)
	if !ok {
		return 0
	}
	return int(d.IntPart())
}
