// Package types - rating policy
package types

import (
	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

// MobileFoldRule selects how an organization's mobile traffic is priced
type MobileFoldRule string

const (
	// FoldByContract applies the contract-version rule: NEW contracts
	// fold VC2/VC3 volume into VC1, OLD contracts price each tier
	FoldByContract MobileFoldRule = "by_contract"

	// FoldAlwaysVC1 prices all mobile tiers at the VC1 rate regardless
	// of contract version; used by organizations whose contract defines
	// a single mobile rate
	FoldAlwaysVC1 MobileFoldRule = "always_vc1"
)

// RatingPolicy carries the per-run configuration the engine needs:
// the UST constant and per-organization overrides. It is injected into
// every report run; nothing in the engine reads ambient settings.
type RatingPolicy struct {
	// UstValue is the government reference-unit constant for the run.
	// Must be positive when a UST view is requested.
	UstValue decimal.Decimal `json:"ust_value"`

	// OrgOverrides maps organization IDs to their mobile folding rule.
	// Organizations absent from the map follow FoldByContract.
	OrgOverrides map[int64]MobileFoldRule `json:"org_overrides,omitempty"`
}

// FoldRule resolves the folding rule for an organization
func (p RatingPolicy) FoldRule(orgID int64) MobileFoldRule {
	if rule, ok := p.OrgOverrides[orgID]; ok {
		return rule
	}
	return FoldByContract
}

// ValidateUst checks the UST constant before a UST view is derived
func (p RatingPolicy) ValidateUst() error {
	if p.UstValue.LessThanOrEqual(decimal.Zero) {
		return errors.UstConfig("UST value must be a positive decimal")
	}
	return nil
}
