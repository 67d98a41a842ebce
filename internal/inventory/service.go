package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
	"github.com/stockpilot/wms-backend/pkg/pagination"
)

// ProductView is one row of the inventory listing with its derived severity.
type ProductView struct {
	models.Product
	Severity enums.StockSeverity `json:"severity"`
}

// ProductPage is one page of the inventory listing.
type ProductPage struct {
	Items      []ProductView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// Service exposes inventory reads for the API.
type Service interface {
	ListProducts(ctx context.Context, params pagination.Params, search string) (*ProductPage, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	Movements(ctx context.Context, msku string, limit int) ([]models.InventoryMovement, error)
}

type service struct {
	repo Repository
}

// NewService wires an inventory service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, params pagination.Params, search string) (*ProductPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	products, err := s.repo.List(ctx, ListParams{
		Search: search,
		Cursor: cursor,
		Limit:  pagination.LimitWithBuffer(params.Limit),
	})
	if err != nil {
		return nil, err
	}

	page := &ProductPage{}
	hasMore := len(products) > limit
	if hasMore {
		products = products[:limit]
	}

	for _, p := range products {
		page.Items = append(page.Items, ProductView{
			Product:  p,
			Severity: enums.ClassifyStock(p.CurrentStock, p.BufferStock),
		})
	}

	if hasMore && len(products) > 0 {
		last := products[len(products)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			Key: last.MSKU,
			ID:  last.ID,
		})
	}
	return page, nil
}

func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"MSKU", "Product Name", "Opening Stock", "Current Stock",
		"Buffer Stock", "Unit Cost", "Selling Price", "Severity",
	}); err != nil {
		return err
	}

	for _, p := range products {
		record := []string{
			p.MSKU,
			p.ProductName,
			strconv.Itoa(p.OpeningStock),
			strconv.Itoa(p.CurrentStock),
			strconv.Itoa(p.BufferStock),
			p.UnitCost.StringFixed(2),
			p.SellingPrice.StringFixed(2),
			enums.ClassifyStock(p.CurrentStock, p.BufferStock).String(),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (s *service) Movements(ctx context.Context, msku string, limit int) ([]models.InventoryMovement, error) {
	if limit <= 0 || limit > pagination.MaxLimit {
		limit = pagination.DefaultLimit
	}
	return s.repo.ListMovements(ctx, msku, limit)
}
