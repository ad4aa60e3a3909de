// Package rating - call rater tests
package rating

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/classify"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/pricing"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

func priceRow(tableID int64, classification types.Classification, value string) pricing.PriceRow {
	return pricing.PriceRow{
		TableID:        tableID,
		Classification: classification,
		Value:          decimal.RequireFromString(value),
		Active:         true,
	}
}

func newCallRater(policy types.RatingPolicy, rows ...pricing.PriceRow) *CallRater {
	return NewCallRater(classify.New(policy), pricing.NewResolver(pricing.NewSnapshot(rows)))
}

func TestRateLocalCall(t *testing.T) {
	rater := newCallRater(types.RatingPolicy{},
		priceRow(7, types.CallClassification(types.CalltypeLocal), "0.08"),
	)

	line, err := rater.Rate(types.CallRecord{
		Calltype:        types.CalltypeLocal,
		DurationSeconds: 120,
		CompanyID:       10,
		OrganizationID:  1,
		PriceTableID:    7,
	}, types.ContractOld)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if line.Count != 1 {
		t.Errorf("count = %d, want 1", line.Count)
	}
	if want := decimal.RequireFromString("0.16"); !line.Cost.Equal(want) {
		t.Errorf("cost = %s, want %s", line.Cost, want)
	}
	if line.Classification.Calltype != types.CalltypeLocal {
		t.Errorf("classification = %s", line.Classification)
	}
}

func TestRateSubMinuteCallIsNotTruncated(t *testing.T) {
	rater := newCallRater(types.RatingPolicy{},
		priceRow(7, types.CallClassification(types.CalltypeLocal), "0.60"),
	)

	line, err := rater.Rate(types.CallRecord{
		Calltype:        types.CalltypeLocal,
		DurationSeconds: 30,
		PriceTableID:    7,
	}, types.ContractOld)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 30s at 0.60/min is 0.30, not zero
	if want := decimal.RequireFromString("0.30"); !line.Cost.Equal(want) {
		t.Errorf("cost = %s, want %s", line.Cost, want)
	}
}

func TestRateFoldedCallUsesVC1Price(t *testing.T) {
	// VC2 call on a NEW contract: rated once, at VC1's price, under VC1.
	// Only the VC1 price exists in the table; resolving VC2 would fail.
	rater := newCallRater(types.RatingPolicy{},
		priceRow(7, types.CallClassification(types.CalltypeVC1), "0.20"),
	)

	line, err := rater.Rate(types.CallRecord{
		Calltype:        types.CalltypeVC2,
		DurationSeconds: 90,
		CompanyID:       10,
		OrganizationID:  1,
		PriceTableID:    7,
	}, types.ContractNew)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if line.Classification.Calltype != types.CalltypeVC1 {
		t.Errorf("classification = %s, want VC1", line.Classification)
	}
	if line.DurationSeconds != 90 {
		t.Errorf("duration = %d, want 90 (volume moves with the fold)", line.DurationSeconds)
	}
	if want := decimal.RequireFromString("0.30"); !line.Cost.Equal(want) {
		t.Errorf("cost = %s, want %s", line.Cost, want)
	}
}

func TestRateMissingPriceIsFatal(t *testing.T) {
	rater := newCallRater(types.RatingPolicy{})

	_, err := rater.Rate(types.CallRecord{
		Calltype:        types.CalltypeLDI,
		DurationSeconds: 60,
		PriceTableID:    7,
	}, types.ContractOld)
	if err == nil {
		t.Fatal("expected error for missing price")
	}
	if !errors.IsType(err, errors.TypePriceNotConfigured) {
		t.Fatalf("expected PRICE_NOT_CONFIGURED, got %v", err)
	}
}

func TestRateNonBillableCalltypeRejected(t *testing.T) {
	rater := newCallRater(types.RatingPolicy{})

	_, err := rater.Rate(types.CallRecord{
		Calltype:        types.CalltypeInternal,
		DurationSeconds: 60,
		PriceTableID:    7,
	}, types.ContractOld)
	if !errors.IsType(err, errors.TypeInput) {
		t.Fatalf("expected INPUT_ERROR, got %v", err)
	}
}

func TestRateZeroDurationCostsNothing(t *testing.T) {
	rater := newCallRater(types.RatingPolicy{},
		priceRow(7, types.CallClassification(types.CalltypeLocal), "0.08"),
	)

	line, err := rater.Rate(types.CallRecord{
		Calltype:     types.CalltypeLocal,
		PriceTableID: 7,
	}, types.ContractOld)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !line.Cost.IsZero() {
		t.Errorf("cost = %s, want 0", line.Cost)
	}
	if line.Count != 1 {
		t.Errorf("count = %d, want 1 (zero-duration calls still count)", line.Count)
	}
}
