// Package ust derives the reference-unit view of a summary tree.
//
// UST is the government reference unit some public-sector contracts
// index prices against; a figure "in UST" is the local-currency amount
// divided by the run's UST constant.
package ust

import (
	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
)

// Converter derives UST twins for every monetary figure in a tree
type Converter struct {
	policy types.RatingPolicy
}

// New builds a converter for one run's policy
func New(policy types.RatingPolicy) *Converter {
	return &Converter{policy: policy}
}

// Convert returns a new tree where every bucket carries CostUst and
// UnitPriceUst alongside its local-currency figures. The input tree is
// never mutated. A zero or negative UST constant is a configuration
// fault, not a silently skipped conversion.
func (c *Converter) Convert(tree *types.SummaryTree) (*types.SummaryTree, error) {
	if err := c.policy.ValidateUst(); err != nil {
		return nil, err
	}

	out := types.NewSummaryTree(tree.Period)
	for id, org := range tree.Organizations {
		dstOrg := out.Organization(id, org.Name)
		for cid, company := range org.Companies {
			dstCompany := dstOrg.Company(cid, company.Name)
			c.convertScope(dstCompany.ScopeSummary, company.ScopeSummary)
		}
		c.convertScope(dstOrg.ScopeSummary, org.ScopeSummary)
	}
	c.convertScope(out.Global, tree.Global)
	return out, nil
}

func (c *Converter) convertScope(dst, src *types.ScopeSummary) {
	for calltype, bucket := range src.Communication {
		dst.Communication[calltype] = c.convertBucket(bucket)
	}
	for class, bucket := range src.Traffic {
		dst.Traffic[class] = c.convertBucket(bucket)
	}
	for kind, bucket := range src.BasicService {
		dst.BasicService[kind] = c.convertBucket(bucket)
	}
	dst.CommunicationTotal = c.convertBucket(src.CommunicationTotal)
	dst.BasicTotal = c.convertBucket(src.BasicTotal)
	dst.GrandTotal = c.convertBucket(src.GrandTotal)
}

func (c *Converter) convertBucket(src *types.Bucket) *types.Bucket {
	b := src.Clone()
	b.CostUst = divide(b.Cost, c.policy.UstValue)
	b.UnitPriceUst = divide(b.UnitPrice, c.policy.UstValue)
	return b
}

func divide(amount, ustValue decimal.Decimal) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	return amount.Div(ustValue)
}
