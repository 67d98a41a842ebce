package ingest

import (
	"fmt"

	"github.com/stockpilot/wms-backend/internal/catalog"
	"github.com/stockpilot/wms-backend/pkg/enums"
)

// ResolutionKind classifies what a SKU resolved to.
type ResolutionKind string

const (
	ResolutionCombo      ResolutionKind = "combo"
	ResolutionSingle     ResolutionKind = "single"
	ResolutionUnresolved ResolutionKind = "unresolved"
)

// Outcome is the result of resolving one marketplace SKU. Unresolved is a
// normal outcome, not an error.
type Outcome struct {
	Kind  ResolutionKind
	MSKU  string
	Combo catalog.Combo
}

// Resolver maps marketplace SKUs against a fixed catalog snapshot. Combos
// are always checked before plain mappings.
type Resolver struct {
	snap *catalog.Snapshot
}

// NewResolver wires a resolver over the given snapshot.
func NewResolver(snap *catalog.Snapshot) (*Resolver, error) {
	if snap == nil {
		return nil, fmt.Errorf("catalog snapshot required")
	}
	return &Resolver{snap: snap}, nil
}

// Resolve classifies a SKU for the given platform.
func (r *Resolver) Resolve(sku string, platform enums.Platform) Outcome {
	if combo, ok := r.snap.Combo(sku); ok {
		return Outcome{Kind: ResolutionCombo, Combo: combo}
	}
	if msku, ok := r.snap.ResolveMSKU(sku, platform); ok {
		return Outcome{Kind: ResolutionSingle, MSKU: msku}
	}
	return Outcome{Kind: ResolutionUnresolved, MSKU: catalog.MappingNotFound}
}
