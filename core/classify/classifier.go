// Package classify maps raw calltypes to their billing classification.
//
// Folding is applied here, before any price is resolved: when a mobile
// sub-type folds into VC1 the call's whole volume (count and duration)
// lands in the VC1 bucket and is rated once at VC1's price. Folding
// after rating would bill the same volume twice.
package classify

import (
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
)

// Classifier resolves the billing classification for a call under a
// rating policy. It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	policy types.RatingPolicy
}

// New builds a classifier for one report run's policy
func New(policy types.RatingPolicy) *Classifier {
	return &Classifier{policy: policy}
}

// Classify returns the post-folding calltype a call is priced under.
//
// Overlays apply in precedence order:
//  1. an organization override (FoldAlwaysVC1) prices every mobile tier
//     at the VC1 rate regardless of contract version;
//  2. otherwise, companies on the NEW contract version fold VC2/VC3
//     into VC1.
//
// Everything else maps to itself.
func (c *Classifier) Classify(call types.CallRecord, version types.ContractVersion) types.Calltype {
	if !call.Calltype.Mobile() {
		return call.Calltype
	}

	switch c.policy.FoldRule(call.OrganizationID) {
	case types.FoldAlwaysVC1:
		return types.CalltypeVC1
	default:
		if version == types.ContractNew {
			return types.CalltypeVC1
		}
	}
	return call.Calltype
}

// Folds reports whether classification would move the call's volume out
// of its raw calltype
func (c *Classifier) Folds(call types.CallRecord, version types.ContractVersion) bool {
	return c.Classify(call, version) != call.Calltype
}
