// Package rating - recurring basic services
package rating

import (
	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/pricing"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
)

// RecurringRater prices equipment inventories for a billing period
type RecurringRater struct {
	resolver *pricing.Resolver
}

// NewRecurringRater builds a rater over a price resolver
func NewRecurringRater(resolver *pricing.Resolver) *RecurringRater {
	return &RecurringRater{resolver: resolver}
}

// RatedServices is the output of rating one equipment batch: a bucket
// per service kind plus the grand basic-service bucket summing them.
type RatedServices struct {
	ByKind map[types.ServiceKind]*types.Bucket
	Total  *types.Bucket
}

// Rate prices each equipment unit for the period against the table.
//
// A unit installed before the period bills the full unit price. A unit
// installed inside the period is prorated by billed days over period
// days, both computed from day-of-month only:
//
//	daysInPeriod = periodEnd.day - periodStart.day + 1
//	daysBilled   = periodEnd.day - installDate.day + 1
//
// This day-of-month rule is the historical billing basis and must stay
// bit-for-bit stable; reports rendered years apart have to reproduce the
// same cents. A unit installed after the period contributes nothing.
func (r *RecurringRater) Rate(equipment []types.Equipment, period types.Period, tableID int64) (*RatedServices, error) {
	out := &RatedServices{
		ByKind: make(map[types.ServiceKind]*types.Bucket),
		Total:  types.NewBucket(),
	}

	daysInPeriod := decimal.NewFromInt(int64(period.Days()))

	for _, unit := range equipment {
		if unit.InstallDate.After(period.End) {
			continue
		}

		price, err := r.resolver.Resolve(tableID, types.ServiceClassification(unit.ServiceKind))
		if err != nil {
			return nil, err
		}

		cost := price
		if period.Contains(unit.InstallDate) {
			daysBilled := int64(period.End.Day() - unit.InstallDate.Day() + 1)
			cost = price.Mul(decimal.NewFromInt(daysBilled)).Div(daysInPeriod)
		}

		line := types.RatedLine{
			Classification: types.ServiceClassification(unit.ServiceKind),
			Count:          1,
			UnitPrice:      price,
			Cost:           cost,
			CompanyID:      unit.CompanyID,
			OrganizationID: unit.OrganizationID,
		}

		bucket, ok := out.ByKind[unit.ServiceKind]
		if !ok {
			bucket = types.NewBucket()
			out.ByKind[unit.ServiceKind] = bucket
		}
		bucket.AddLine(line)

		// the cross-kind total mixes unit prices, so it carries none
		totalLine := line
		totalLine.UnitPrice = decimal.Zero
		out.Total.AddLine(totalLine)
	}

	return out, nil
}
