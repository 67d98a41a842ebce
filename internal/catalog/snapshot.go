package catalog

import (
	"strings"

	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
)

// MappingNotFound is the sentinel MSKU recorded for rows whose SKU has no
// mapping and no combo definition. It flows through to the processed output
// so operators can spot unmapped listings.
const MappingNotFound = "Mapping Not Found"

// Component is one product inside a combo definition.
type Component struct {
	MSKU     string
	Quantity int
}

// Combo is a resolved combo definition.
type Combo struct {
	SKU        string
	Name       string
	Components []Component
}

type mappingEntry struct {
	msku     string
	platform enums.Platform
}

// Snapshot is an immutable lookup over the mapping and combo tables, built
// once per processing run and handed to the resolver. Combos always take
// precedence over plain mappings.
type Snapshot struct {
	mappings map[string][]mappingEntry
	combos   map[string]Combo
}

// NewSnapshot indexes the given mapping and combo rows. Mapping entries keep
// their load order so that the first entry for a SKU wins when no
// platform-specific entry exists.
func NewSnapshot(mappings []models.SKUMapping, combos []models.ComboProduct) *Snapshot {
	s := &Snapshot{
		mappings: make(map[string][]mappingEntry, len(mappings)),
		combos:   make(map[string]Combo, len(combos)),
	}

	for _, m := range mappings {
		sku := strings.TrimSpace(m.SKU)
		if sku == "" {
			continue
		}
		s.mappings[sku] = append(s.mappings[sku], mappingEntry{
			msku:     strings.TrimSpace(m.MSKU),
			platform: m.Platform,
		})
	}

	for _, c := range combos {
		sku := strings.TrimSpace(c.ComboSKU)
		if sku == "" || len(c.Components) == 0 {
			continue
		}
		combo := Combo{SKU: sku, Name: c.ComboName}
		for _, comp := range c.Components {
			msku := strings.TrimSpace(comp.ProductMSKU)
			if msku == "" {
				continue
			}
			qty := comp.Quantity
			if qty <= 0 {
				qty = 1
			}
			combo.Components = append(combo.Components, Component{MSKU: msku, Quantity: qty})
		}
		if len(combo.Components) > 0 {
			s.combos[sku] = combo
		}
	}

	return s
}

// Combo returns the combo definition for sku, if one exists.
func (s *Snapshot) Combo(sku string) (Combo, bool) {
	c, ok := s.combos[strings.TrimSpace(sku)]
	return c, ok
}

// ResolveMSKU returns the canonical MSKU for a marketplace SKU. An entry
// recorded for the given platform wins over generic ones; otherwise the
// first loaded entry wins.
func (s *Snapshot) ResolveMSKU(sku string, platform enums.Platform) (string, bool) {
	entries, ok := s.mappings[strings.TrimSpace(sku)]
	if !ok || len(entries) == 0 {
		return "", false
	}
	for _, e := range entries {
		if e.platform == platform {
			return e.msku, true
		}
	}
	return entries[0].msku, true
}

// MappingCount returns the number of distinct SKUs with at least one mapping.
func (s *Snapshot) MappingCount() int {
	return len(s.mappings)
}

// ComboCount returns the number of combo definitions.
func (s *Snapshot) ComboCount() int {
	return len(s.combos)
}
