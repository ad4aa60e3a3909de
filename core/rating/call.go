// Package rating prices individual records: one CDR or one equipment
// line at a time. Raters are pure functions of their inputs; all catalog
// lookups go through the pricing snapshot materialized before the run.
package rating

import (
	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/classify"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/pricing"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

var secondsPerMinute = decimal.NewFromInt(60)

// CallRater prices one call record
type CallRater struct {
	classifier *classify.Classifier
	resolver   *pricing.Resolver
}

// NewCallRater builds a rater over a classifier and price resolver
func NewCallRater(classifier *classify.Classifier, resolver *pricing.Resolver) *CallRater {
	return &CallRater{classifier: classifier, resolver: resolver}
}

// Rate prices a single call: classify, resolve the unit price for the
// post-folding classification, then cost = duration * price / 60.
// Unit prices are per minute; the division is decimal, not integer, so
// calls under sixty seconds are not rounded down to zero.
func (r *CallRater) Rate(call types.CallRecord, version types.ContractVersion) (types.RatedLine, error) {
	if !call.Calltype.Billable() {
		return types.RatedLine{}, errors.Newf(errors.TypeInput, "calltype %s is not billable", call.Calltype).
			WithContext("record_id", call.ID)
	}
	if call.DurationSeconds < 0 {
		return types.RatedLine{}, errors.Newf(errors.TypeInput, "negative duration %d on record %d", call.DurationSeconds, call.ID)
	}

	classified := r.classifier.Classify(call, version)

	price, err := r.resolver.Resolve(call.PriceTableID, types.CallClassification(classified))
	if err != nil {
		return types.RatedLine{}, err
	}

	cost := price.Mul(decimal.NewFromInt(call.DurationSeconds)).Div(secondsPerMinute)

	return types.RatedLine{
		Classification:  types.CallClassification(classified),
		Count:           1,
		DurationSeconds: call.DurationSeconds,
		UnitPrice:       price,
		Cost:            cost,
		CompanyID:       call.CompanyID,
		OrganizationID:  call.OrganizationID,
	}, nil
}
