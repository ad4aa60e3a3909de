// Package pricing - resolver invariant tests
// A pair with zero or two active rows must fail loudly; a silent zero
// default would under-bill a client.
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

func row(tableID int64, classification types.Classification, value string, active bool) PriceRow {
	return PriceRow{
		TableID:        tableID,
		Classification: classification,
		Value:          decimal.RequireFromString(value),
		Active:         active,
	}
}

func TestResolveSingleActiveRow(t *testing.T) {
	resolver := NewResolver(NewSnapshot([]PriceRow{
		row(7, types.CallClassification(types.CalltypeLocal), "0.08", true),
		row(7, types.CallClassification(types.CalltypeVC1), "0.20", true),
	}))

	price, err := resolver.Resolve(7, types.CallClassification(types.CalltypeLocal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("0.08"); !price.Equal(want) {
		t.Errorf("price = %s, want %s", price, want)
	}
}

func TestResolveIgnoresInactiveRows(t *testing.T) {
	resolver := NewResolver(NewSnapshot([]PriceRow{
		row(7, types.CallClassification(types.CalltypeLocal), "0.99", false),
		row(7, types.CallClassification(types.CalltypeLocal), "0.08", true),
	}))

	price, err := resolver.Resolve(7, types.CallClassification(types.CalltypeLocal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("0.08"); !price.Equal(want) {
		t.Errorf("price = %s, want %s", price, want)
	}
}

func TestResolveNoActiveRowFails(t *testing.T) {
	resolver := NewResolver(NewSnapshot([]PriceRow{
		row(7, types.CallClassification(types.CalltypeLocal), "0.99", false),
	}))

	_, err := resolver.Resolve(7, types.CallClassification(types.CalltypeLocal))
	if err == nil {
		t.Fatal("expected error for pair with no active rows")
	}
	if !errors.IsType(err, errors.TypePriceNotConfigured) {
		t.Fatalf("expected PRICE_NOT_CONFIGURED, got %v", err)
	}
}

func TestResolveUnknownPairFails(t *testing.T) {
	resolver := NewResolver(NewSnapshot(nil))

	_, err := resolver.Resolve(7, types.CallClassification(types.CalltypeLDI))
	if !errors.IsType(err, errors.TypePriceNotConfigured) {
		t.Fatalf("expected PRICE_NOT_CONFIGURED, got %v", err)
	}
}

func TestResolveTwoActiveRowsFails(t *testing.T) {
	resolver := NewResolver(NewSnapshot([]PriceRow{
		row(7, types.CallClassification(types.CalltypeLocal), "0.08", true),
		row(7, types.CallClassification(types.CalltypeLocal), "0.10", true),
	}))

	_, err := resolver.Resolve(7, types.CallClassification(types.CalltypeLocal))
	if err == nil {
		t.Fatal("expected error for pair with two active rows")
	}
	if !errors.IsType(err, errors.TypeAmbiguousPrice) {
		t.Fatalf("expected AMBIGUOUS_PRICE, got %v", err)
	}
}

func TestResolveServiceKindPrice(t *testing.T) {
	resolver := NewResolver(NewSnapshot([]PriceRow{
		row(3, types.ServiceClassification(types.KindFixedLine), "42.50", true),
	}))

	price, err := resolver.Resolve(3, types.ServiceClassification(types.KindFixedLine))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("42.50"); !price.Equal(want) {
		t.Errorf("price = %s, want %s", price, want)
	}
}
