// Package sqlite - report request assembly
package sqlite

import (
	"context"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/engine"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
)

// BuildRequest prefetches every batch a report run needs: call records,
// equipment, contracts, scope names, and the price rows of every table
// any of them references.
func (s *Store) BuildRequest(ctx context.Context, period types.Period, scope Scope, policy types.RatingPolicy) (engine.ReportRequest, error) {
	req := engine.ReportRequest{
		Period: period,
		Policy: policy,
	}

	calls, err := s.LoadCallRecords(ctx, period, scope)
	if err != nil {
		return req, err
	}
	req.Calls = calls

	equipment, err := s.LoadEquipment(ctx, scope)
	if err != nil {
		return req, err
	}
	req.Equipment = equipment

	contracts, err := s.LoadContracts(ctx, scope)
	if err != nil {
		return req, err
	}
	req.Contracts = contracts

	names, err := s.LoadScopeNames(ctx)
	if err != nil {
		return req, err
	}
	req.Names = names

	tableSet := make(map[int64]struct{})
	for _, call := range calls {
		tableSet[call.PriceTableID] = struct{}{}
	}
	for _, contract := range contracts {
		tableSet[contract.PriceTableID] = struct{}{}
	}
	tableIDs := make([]int64, 0, len(tableSet))
	for id := range tableSet {
		tableIDs = append(tableIDs, id)
	}

	prices, err := s.LoadPriceSnapshot(ctx, tableIDs)
	if err != nil {
		return req, err
	}
	req.Prices = prices

	return req, nil
}
