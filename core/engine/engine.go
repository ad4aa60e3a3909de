// Package engine orchestrates one report computation: validate the
// period, rate calls and equipment against the pricing snapshot, fold
// into the summary tree and derive the UST view.
//
// The engine is stateless per invocation and performs no I/O; every
// input batch is materialized by the record store before Run is called.
// Any rating error aborts the whole run. A billing report with one
// silently wrong line is worse than a failed report.
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/aggregate"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/classify"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/pricing"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/rating"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/ust"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/logging"
)

// ReportRequest carries every input of one report run, prefetched into
// memory by the record store
type ReportRequest struct {
	// Period is the validated billing period
	Period types.Period

	// Policy is the run's rating policy (UST constant, org overrides)
	Policy types.RatingPolicy

	// Calls is the CDR batch for the period and scope
	Calls []types.CallRecord

	// Equipment is the equipment batch for the scope
	Equipment []types.Equipment

	// Contracts resolves contract version and price table per company
	Contracts []types.Contract

	// Prices is the pre-filtered price-table snapshot
	Prices []pricing.PriceRow

	// Names supplies display names for the tree
	Names aggregate.ScopeNames

	// Parallel enables the sharded per-company fold
	Parallel bool

	// WithUst derives the reference-unit view; requires a positive
	// UST value in the policy
	WithUst bool
}

// Engine computes reports
type Engine struct {
	log *zap.Logger
}

// New builds an engine
func New() *Engine {
	return &Engine{log: logging.Logger}
}

// Run executes one report computation end to end
func (e *Engine) Run(ctx context.Context, req ReportRequest) (*types.SummaryTree, error) {
	snapshot := pricing.NewSnapshot(req.Prices)
	resolver := pricing.NewResolver(snapshot)
	classifier := classify.New(req.Policy)
	callRater := rating.NewCallRater(classifier, resolver)
	recurringRater := rating.NewRecurringRater(resolver)
	contracts := indexContracts(req.Contracts)

	e.log.Info("report run started",
		zap.String("period", req.Period.String()),
		zap.Int("calls", len(req.Calls)),
		zap.Int("equipment", len(req.Equipment)),
		zap.Int("price_pairs", snapshot.Len()),
	)

	lines, err := e.rateCalls(ctx, req, callRater, contracts)
	if err != nil {
		return nil, err
	}

	services, err := e.rateEquipment(ctx, req, recurringRater, contracts)
	if err != nil {
		return nil, err
	}

	aggregator := aggregate.New(req.Names)
	var tree *types.SummaryTree
	if req.Parallel {
		tree = aggregator.FoldParallel(req.Period, lines, services)
	} else {
		tree = aggregator.Fold(req.Period, lines, services)
	}

	if req.WithUst {
		converted, err := ust.New(req.Policy).Convert(tree)
		if err != nil {
			return nil, err
		}
		tree = converted
	}

	e.log.Info("report run finished",
		zap.Int("rated_calls", len(lines)),
		zap.Int("organizations", len(tree.Organizations)),
	)
	return tree, nil
}

func (e *Engine) rateCalls(ctx context.Context, req ReportRequest, rater *rating.CallRater, contracts contractIndex) ([]types.RatedLine, error) {
	lines := make([]types.RatedLine, 0, len(req.Calls))
	for i, call := range req.Calls {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if !call.Calltype.Billable() {
			continue
		}

		line, err := rater.Rate(call, contracts.version(call.OrganizationID, call.CompanyID))
		if err != nil {
			e.log.Error("call rating failed",
				zap.Int64("record_id", call.ID),
				zap.Int64("company_id", call.CompanyID),
				zap.String("calltype", call.Calltype.String()),
				zap.Error(err),
			)
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (e *Engine) rateEquipment(ctx context.Context, req ReportRequest, rater *rating.RecurringRater, contracts contractIndex) ([]aggregate.ScopedServices, error) {
	type scopeKey struct {
		orgID     int64
		companyID int64
	}

	groups := make(map[scopeKey][]types.Equipment)
	order := make([]scopeKey, 0)
	for _, unit := range req.Equipment {
		key := scopeKey{orgID: unit.OrganizationID, companyID: unit.CompanyID}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], unit)
	}

	services := make([]aggregate.ScopedServices, 0, len(groups))
	for _, key := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rated, err := rater.Rate(groups[key], req.Period, contracts.priceTable(key.orgID, key.companyID))
		if err != nil {
			e.log.Error("equipment rating failed",
				zap.Int64("company_id", key.companyID),
				zap.Error(err),
			)
			return nil, err
		}
		services = append(services, aggregate.ScopedServices{
			OrganizationID: key.orgID,
			CompanyID:      key.companyID,
			ByKind:         rated.ByKind,
			Total:          rated.Total,
		})
	}
	return services, nil
}

// contractIndex resolves the contract covering a company, falling back
// to the organization's master contract
type contractIndex struct {
	byCompany map[int64]types.Contract
	masters   map[int64]types.Contract
}

func indexContracts(contracts []types.Contract) contractIndex {
	idx := contractIndex{
		byCompany: make(map[int64]types.Contract),
		masters:   make(map[int64]types.Contract),
	}
	for _, contract := range contracts {
		if contract.Master() {
			idx.masters[contract.OrganizationID] = contract
			continue
		}
		idx.byCompany[contract.CompanyID] = contract
	}
	return idx
}

// version resolves the contract version for a company. Companies with
// no contract on file rate under the OLD rules, which never fold and
// therefore never move volume on an unconfirmed assumption.
func (x contractIndex) version(orgID, companyID int64) types.ContractVersion {
	if contract, ok := x.byCompany[companyID]; ok {
		return contract.Version
	}
	if contract, ok := x.masters[orgID]; ok {
		return contract.Version
	}
	return types.ContractOld
}

// priceTable resolves the price table equipment bills against
func (x contractIndex) priceTable(orgID, companyID int64) int64 {
	if contract, ok := x.byCompany[companyID]; ok {
		return contract.PriceTableID
	}
	if contract, ok := x.masters[orgID]; ok {
		return contract.PriceTableID
	}
	return 0
}
