// Package pricing - unit price resolution
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

// Resolver resolves the single active unit price for a
// (table, classification) pair. A pair with zero active rows or more
// than one active row is a configuration fault and always an error;
// defaulting to zero would silently under-bill a client.
type Resolver struct {
	snapshot *Snapshot
}

// NewResolver builds a resolver over a snapshot
func NewResolver(snapshot *Snapshot) *Resolver {
	return &Resolver{snapshot: snapshot}
}

// Resolve returns the active unit price for the pair.
// Returns PRICE_NOT_CONFIGURED when no active row exists and
// AMBIGUOUS_PRICE when more than one does.
func (r *Resolver) Resolve(tableID int64, classification types.Classification) (decimal.Decimal, error) {
	var (
		price  decimal.Decimal
		active int
	)
	for _, row := range r.snapshot.Rows(tableID, classification) {
		if !row.Active {
			continue
		}
		active++
		price = row.Value
	}

	switch {
	case active == 0:
		return decimal.Zero, errors.PriceNotConfigured(tableID, classification.String())
	case active > 1:
		return decimal.Zero, errors.AmbiguousPrice(tableID, classification.String(), active)
	}
	return price, nil
}
