package catalog

import (
	"context"
	"fmt"
)

// ComboSummary is one row of the combo analysis listing.
type ComboSummary struct {
	ComboSKU       string      `json:"combo_sku"`
	ComboName      string      `json:"combo_name"`
	Components     []Component `json:"components"`
	ComponentCount int         `json:"component_count"`
}

// Service exposes catalog reads for the resolver and the API.
type Service interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	ComboAnalysis(ctx context.Context) ([]ComboSummary, error)
	Counts(ctx context.Context) (mappings int64, combos int64, err error)
}

type service struct {
	repo Repository
}

// NewService wires a catalog service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	mappings, err := s.repo.ListMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading mappings: %w", err)
	}
	combos, err := s.repo.ListCombos(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading combos: %w", err)
	}
	return NewSnapshot(mappings, combos), nil
}

func (s *service) ComboAnalysis(ctx context.Context) ([]ComboSummary, error) {
	combos, err := s.repo.ListCombos(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ComboSummary, 0, len(combos))
	for _, combo := range combos {
		summary := ComboSummary{
			ComboSKU:  combo.ComboSKU,
			ComboName: combo.ComboName,
		}
		for _, comp := range combo.Components {
			qty := comp.Quantity
			if qty <= 0 {
				qty = 1
			}
			summary.Components = append(summary.Components, Component{
				MSKU:     comp.ProductMSKU,
				Quantity: qty,
			})
		}
		summary.ComponentCount = len(summary.Components)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *service) Counts(ctx context.Context) (int64, int64, error) {
	mappings, err := s.repo.CountMappings(ctx)
	if err != nil {
		return 0, 0, err
	}
	combos, err := s.repo.CountCombos(ctx)
	if err != nil {
		return 0, 0, err
	}
	return mappings, combos, nil
}
