// Package config - rating policy documents
package config

import (
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

// policyDoc is the YAML shape of a rating-policy document. The UST
// value is kept as a string so the decimal survives parsing exactly.
type policyDoc struct {
	UstValue     string           `yaml:"ust_value"`
	OrgOverrides map[int64]string `yaml:"org_overrides"`
}

// LoadPolicy reads a rating-policy YAML document. The policy is the
// only place the UST constant and per-organization folding overrides
// come from; the engine never reads ambient settings.
//
// Document shape:
//
//	ust_value: "4.8441"
//	org_overrides:
//	  2: always_vc1
func LoadPolicy(path string) (types.RatingPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RatingPolicy{}, errors.Wrap(errors.TypeConfig, "reading policy document", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes a rating-policy document
func ParsePolicy(data []byte) (types.RatingPolicy, error) {
	var doc policyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.RatingPolicy{}, errors.Wrap(errors.TypeConfig, "parsing policy document", err)
	}

	policy := types.RatingPolicy{}
	if doc.UstValue != "" {
		value, err := decimal.NewFromString(doc.UstValue)
		if err != nil {
			return types.RatingPolicy{}, errors.Wrapf(errors.TypeConfig, err, "bad ust_value %q", doc.UstValue)
		}
		policy.UstValue = value
	}

	if len(doc.OrgOverrides) > 0 {
		policy.OrgOverrides = make(map[int64]types.MobileFoldRule, len(doc.OrgOverrides))
		for orgID, raw := range doc.OrgOverrides {
			rule := types.MobileFoldRule(raw)
			switch rule {
			case types.FoldByContract, types.FoldAlwaysVC1:
				policy.OrgOverrides[orgID] = rule
			default:
				return types.RatingPolicy{}, errors.Newf(errors.TypeConfig, "unknown fold rule %q for organization %d", raw, orgID)
			}
		}
	}
	return policy, nil
}
