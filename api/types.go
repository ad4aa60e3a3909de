// Package api - request and response types
package api

import (
	"github.com/DaniloReis10/TarifadorTest-sub000/core/report"
)

// ReportRequest is the POST /report body
type ReportRequest struct {
	// PeriodStart is the first day of the billing period (YYYY-MM-DD)
	PeriodStart string `json:"period_start"`

	// PeriodEnd is the last day of the billing period (YYYY-MM-DD)
	PeriodEnd string `json:"period_end"`

	// Month is shorthand for a whole calendar month (YYYY-MM); mutually
	// exclusive with PeriodStart/PeriodEnd
	Month string `json:"month,omitempty"`

	// OrganizationID restricts the report scope; zero means all
	OrganizationID int64 `json:"organization_id,omitempty"`

	// CompanyID restricts the report to one company; zero means all
	CompanyID int64 `json:"company_id,omitempty"`

	// Policy carries the run's UST constant and folding overrides
	Policy PolicyDoc `json:"policy"`

	// Parallel enables the sharded per-company fold
	Parallel bool `json:"parallel,omitempty"`

	// WithUst derives the reference-unit view
	WithUst bool `json:"with_ust,omitempty"`
}

// PolicyDoc is the wire shape of a rating policy
type PolicyDoc struct {
	// UstValue is the reference-unit constant as a decimal string
	UstValue string `json:"ust_value,omitempty"`

	// OrgOverrides maps organization IDs to fold rules
	OrgOverrides map[int64]string `json:"org_overrides,omitempty"`
}

// ReportResponse is the POST /report result
type ReportResponse struct {
	Report   *report.Report    `json:"report"`
	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// ResponseMetadata describes how the response was produced
type ResponseMetadata struct {
	// InputHash is the deterministic hash of the request body
	InputHash string `json:"input_hash"`

	// EngineVersion identifies the engine build
	EngineVersion string `json:"engine_version"`

	// DurationMs is the server-side computation time
	DurationMs int64 `json:"duration_ms"`
}
