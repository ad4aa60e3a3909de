// Package types - rated lines and accumulation buckets
package types

import "github.com/shopspring/decimal"

// RatedLine is the output of rating a single record: one unit of volume
// with its computed cost, keyed by the post-folding classification.
type RatedLine struct {
	// Classification is where the line's volume lands after folding
	Classification Classification `json:"classification"`

	// Count is always 1 for a call, or the unit count for equipment
	Count int64 `json:"count"`

	// DurationSeconds is the call duration; zero for basic services
	DurationSeconds int64 `json:"duration_seconds"`

	// UnitPrice is the resolved per-minute or per-unit price
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Cost is the computed charge for the line
	Cost decimal.Decimal `json:"cost"`

	// CompanyID is the sub-client scope of the line
	CompanyID int64 `json:"company_id"`

	// OrganizationID is the organization scope of the line
	OrganizationID int64 `json:"organization_id"`
}

// Bucket is a running accumulator of volume and cost. Buckets form a
// monoid under Merge: combining is associative and commutative and the
// zero bucket is the identity, which is what makes the multi-level
// rollup independent of processing order.
type Bucket struct {
	// Count is the number of records accumulated
	Count int64 `json:"count"`

	// DurationSeconds is the total duration accumulated
	DurationSeconds int64 `json:"duration_seconds"`

	// Cost is the total charge in local currency
	Cost decimal.Decimal `json:"cost"`

	// CostUst is the reference-unit twin of Cost, derived by the UST
	// converter and zero until then
	CostUst decimal.Decimal `json:"cost_ust"`

	// UnitPrice is the resolved unit price for single-classification
	// buckets; zero for totals that mix classifications
	UnitPrice decimal.Decimal `json:"unit_price"`

	// UnitPriceUst is the reference-unit twin of UnitPrice
	UnitPriceUst decimal.Decimal `json:"unit_price_ust"`
}

// NewBucket allocates a fresh zero bucket. Callers must never share one
// bucket value across map entries; every slot gets its own allocation.
func NewBucket() *Bucket {
	return &Bucket{}
}

// AddLine accumulates a rated line into the bucket
func (b *Bucket) AddLine(line RatedLine) {
	b.Count += line.Count
	b.DurationSeconds += line.DurationSeconds
	b.Cost = b.Cost.Add(line.Cost)
	if !line.UnitPrice.IsZero() {
		b.UnitPrice = line.UnitPrice
	}
}

// Merge folds another bucket into this one. Volume and cost fields are
// summed; the unit-price pair carries over first-nonzero, so merging
// buckets with conflicting prices only stays meaningful when callers
// zero prices first (as the fold does for mixed-classification buckets).
func (b *Bucket) Merge(other *Bucket) {
	if other == nil {
		return
	}
	b.Count += other.Count
	b.DurationSeconds += other.DurationSeconds
	b.Cost = b.Cost.Add(other.Cost)
	b.CostUst = b.CostUst.Add(other.CostUst)
	if b.UnitPrice.IsZero() {
		b.UnitPrice = other.UnitPrice
	}
	if b.UnitPriceUst.IsZero() {
		b.UnitPriceUst = other.UnitPriceUst
	}
}

// Combine returns the sum of two buckets without mutating either,
// with the same first-nonzero rule for the unit-price pair as Merge
func Combine(a, b Bucket) Bucket {
	out := Bucket{
		Count:           a.Count + b.Count,
		DurationSeconds: a.DurationSeconds + b.DurationSeconds,
		Cost:            a.Cost.Add(b.Cost),
		CostUst:         a.CostUst.Add(b.CostUst),
		UnitPrice:       a.UnitPrice,
		UnitPriceUst:    a.UnitPriceUst,
	}
	if out.UnitPrice.IsZero() {
		out.UnitPrice = b.UnitPrice
	}
	if out.UnitPriceUst.IsZero() {
		out.UnitPriceUst = b.UnitPriceUst
	}
	return out
}

// IsZero reports whether the bucket holds no volume and no cost
func (b *Bucket) IsZero() bool {
	return b.Count == 0 && b.DurationSeconds == 0 && b.Cost.IsZero()
}

// Clone returns an independent copy of the bucket
func (b *Bucket) Clone() *Bucket {
	if b == nil {
		return NewBucket()
	}
	c := *b
	return &c
}
