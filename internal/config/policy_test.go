// Package config - policy document tests
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

func TestParsePolicy(t *testing.T) {
	doc := []byte(`
ust_value: "4.8441"
org_overrides:
  2: always_vc1
  5: by_contract
`)
	policy, err := ParsePolicy(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := decimal.RequireFromString("4.8441"); !policy.UstValue.Equal(want) {
		t.Errorf("ust value = %s, want %s", policy.UstValue, want)
	}
	if policy.OrgOverrides[2] != types.FoldAlwaysVC1 {
		t.Errorf("org 2 rule = %q, want always_vc1", policy.OrgOverrides[2])
	}
	if policy.OrgOverrides[5] != types.FoldByContract {
		t.Errorf("org 5 rule = %q, want by_contract", policy.OrgOverrides[5])
	}
}

func TestParsePolicyEmptyDocument(t *testing.T) {
	policy, err := ParsePolicy([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !policy.UstValue.IsZero() {
		t.Errorf("ust value = %s, want zero", policy.UstValue)
	}
	if len(policy.OrgOverrides) != 0 {
		t.Errorf("overrides = %v, want none", policy.OrgOverrides)
	}
}

func TestParsePolicyBadUstValue(t *testing.T) {
	_, err := ParsePolicy([]byte(`ust_value: "not-a-number"`))
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestParsePolicyUnknownFoldRule(t *testing.T) {
	doc := []byte(`
org_overrides:
  7: fold_everything
`)
	_, err := ParsePolicy(doc)
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestLoadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(`ust_value: "4.00"`), 0o644); err != nil {
		t.Fatal(err)
	}

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("4.00"); !policy.UstValue.Equal(want) {
		t.Errorf("ust value = %s, want %s", policy.UstValue, want)
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}
