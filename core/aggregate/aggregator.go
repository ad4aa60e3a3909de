// Package aggregate folds rated lines and rated service buckets into the
// hierarchical summary tree.
//
// All accumulation happens at the company scope first; organization and
// global scopes are produced by bucket addition over company scopes.
// Because buckets are an associative, commutative monoid the rollup is
// independent of processing order, which is what makes the sharded fold
// in FoldParallel safe.
package aggregate

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
)

// ScopeNames maps IDs to display names for the finished tree
type ScopeNames struct {
	Organizations map[int64]string
	Companies     map[int64]string
}

// ScopedServices carries one company's rated basic-service buckets
type ScopedServices struct {
	OrganizationID int64
	CompanyID      int64
	ByKind         map[types.ServiceKind]*types.Bucket
	Total          *types.Bucket
}

// Aggregator folds rated output into a SummaryTree
type Aggregator struct {
	names ScopeNames
}

// New builds an aggregator with display names for the tree
func New(names ScopeNames) *Aggregator {
	return &Aggregator{names: names}
}

// Fold builds the summary tree for a period from rated calls and rated
// services. Each rated line lands in its classification bucket, its
// traffic-class bucket and the communication total of its company scope;
// each service bucket lands in the company's basic-service map and basic
// total; both feed the scope grand total. Company scopes then roll up
// into organizations and the global scope.
func (a *Aggregator) Fold(period types.Period, lines []types.RatedLine, services []ScopedServices) *types.SummaryTree {
	tree := types.NewSummaryTree(period)

	for _, line := range lines {
		a.foldLine(tree, line)
	}
	for _, scoped := range services {
		a.foldServices(tree, scoped)
	}

	a.rollUp(tree)
	return tree
}

// FoldParallel shards lines by company, folds each shard in its own
// goroutine and merges the shard trees. The result is identical to Fold.
func (a *Aggregator) FoldParallel(period types.Period, lines []types.RatedLine, services []ScopedServices) *types.SummaryTree {
	shards := make(map[int64][]types.RatedLine)
	for _, line := range lines {
		shards[line.CompanyID] = append(shards[line.CompanyID], line)
	}

	results := make(chan *types.SummaryTree, len(shards))
	var wg sync.WaitGroup
	for _, shard := range shards {
		wg.Add(1)
		go func(shard []types.RatedLine) {
			defer wg.Done()
			t := types.NewSummaryTree(period)
			for _, line := range shard {
				a.foldLine(t, line)
			}
			results <- t
		}(shard)
	}
	wg.Wait()
	close(results)

	tree := types.NewSummaryTree(period)
	for shard := range results {
		tree.Merge(shard)
	}
	for _, scoped := range services {
		a.foldServices(tree, scoped)
	}

	a.rollUp(tree)
	return tree
}

func (a *Aggregator) foldLine(tree *types.SummaryTree, line types.RatedLine) {
	org := tree.Organization(line.OrganizationID, a.names.Organizations[line.OrganizationID])
	company := org.Company(line.CompanyID, a.names.Companies[line.CompanyID])

	calltype := line.Classification.Calltype
	company.CalltypeBucket(calltype).AddLine(line)

	// traffic classes and scope totals mix classifications and carry no
	// unit price; only the per-calltype bucket keeps one
	unpriced := line
	unpriced.UnitPrice = decimal.Zero
	if class := calltype.TrafficClass(); class != types.TrafficNone {
		company.TrafficBucket(class).AddLine(unpriced)
	}
	company.CommunicationTotal.AddLine(unpriced)
	company.GrandTotal.AddLine(unpriced)
}

func (a *Aggregator) foldServices(tree *types.SummaryTree, scoped ScopedServices) {
	org := tree.Organization(scoped.OrganizationID, a.names.Organizations[scoped.OrganizationID])
	company := org.Company(scoped.CompanyID, a.names.Companies[scoped.CompanyID])

	for kind, bucket := range scoped.ByKind {
		company.ServiceBucket(kind).Merge(bucket)
	}
	company.BasicTotal.Merge(scoped.Total)

	company.GrandTotal.Merge(scoped.Total)
}

// rollUp folds company scopes into organizations and organizations into
// the global scope by bucket addition
func (a *Aggregator) rollUp(tree *types.SummaryTree) {
	for _, org := range tree.Organizations {
		for _, company := range org.Companies {
			org.MergeScope(company.ScopeSummary)
		}
		stripUnitPrices(org.ScopeSummary)
		tree.Global.MergeScope(org.ScopeSummary)
	}
}

// stripUnitPrices clears unit prices on a rolled-up scope. A unit price
// is a company-scope fact: companies under one organization may bill the
// same calltype from different price tables, so a cross-company bucket
// has no single price to show and must not inherit one from whichever
// company merged first.
func stripUnitPrices(scope *types.ScopeSummary) {
	for _, bucket := range scope.Communication {
		bucket.UnitPrice = decimal.Zero
		bucket.UnitPriceUst = decimal.Zero
	}
	for _, bucket := range scope.Traffic {
		bucket.UnitPrice = decimal.Zero
		bucket.UnitPriceUst = decimal.Zero
	}
	for _, bucket := range scope.BasicService {
		bucket.UnitPrice = decimal.Zero
		bucket.UnitPriceUst = decimal.Zero
	}
}
