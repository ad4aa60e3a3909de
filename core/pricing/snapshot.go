// Package pricing resolves unit prices from an immutable catalog snapshot.
// The snapshot is materialized by the record store before rating begins;
// nothing here performs I/O.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
)

// PriceRow is one row of a price table
type PriceRow struct {
	// TableID is the owning price table
	TableID int64 `json:"table_id"`

	// Classification is the calltype or service kind the row prices
	Classification types.Classification `json:"classification"`

	// Value is the unit price: per minute for calltypes, per unit-period
	// for service kinds
	Value decimal.Decimal `json:"value"`

	// Active marks the row currently in force. At most one active row
	// may exist per (table, classification) pair.
	Active bool `json:"active"`
}

type pairKey struct {
	tableID        int64
	classification string
}

// Snapshot is an immutable in-memory view of the relevant price tables
// for one report run. It is safe for concurrent readers.
type Snapshot struct {
	rows map[pairKey][]PriceRow
}

// NewSnapshot copies the given rows into a fresh snapshot. The input
// slice is not retained.
func NewSnapshot(rows []PriceRow) *Snapshot {
	s := &Snapshot{rows: make(map[pairKey][]PriceRow, len(rows))}
	for _, row := range rows {
		key := pairKey{tableID: row.TableID, classification: row.Classification.String()}
		s.rows[key] = append(s.rows[key], row)
	}
	return s
}

// Rows returns every row for a (table, classification) pair, active or not
func (s *Snapshot) Rows(tableID int64, classification types.Classification) []PriceRow {
	key := pairKey{tableID: tableID, classification: classification.String()}
	rows := s.rows[key]
	out := make([]PriceRow, len(rows))
	copy(out, rows)
	return out
}

// Len returns the number of distinct (table, classification) pairs
func (s *Snapshot) Len() int {
	return len(s.rows)
}
