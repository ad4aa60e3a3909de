// Package types - input records
package types

import "time"

// CallRecord is one logged call as produced by the record store.
// Records are immutable inputs; the engine never mutates them.
type CallRecord struct {
	// ID is the record identifier in the store
	ID int64 `json:"id"`

	// Calltype is the raw pricing classification from the switch
	Calltype Calltype `json:"calltype"`

	// Direction is inbound or outbound
	Direction Direction `json:"direction"`

	// DurationSeconds is the billable duration, never negative
	DurationSeconds int64 `json:"duration_seconds"`

	// CompanyID is the sub-client the call belongs to
	CompanyID int64 `json:"company_id"`

	// OrganizationID is the contracting organization
	OrganizationID int64 `json:"organization_id"`

	// PriceTableID selects the price table for this record's scope
	PriceTableID int64 `json:"price_table_id"`

	// StartedAt is when the call began
	StartedAt time.Time `json:"started_at"`
}

// Equipment is one provisioned unit of a recurring basic service
type Equipment struct {
	// ID is the record identifier in the store
	ID int64 `json:"id"`

	// OrganizationID is the contracting organization
	OrganizationID int64 `json:"organization_id"`

	// CompanyID is the sub-client the unit serves
	CompanyID int64 `json:"company_id"`

	// ServiceKind is the recurring service billed for the unit
	ServiceKind ServiceKind `json:"service_kind"`

	// ContractID is the owning contract
	ContractID int64 `json:"contract_id"`

	// InstallDate is the service-order provisioning date
	InstallDate time.Time `json:"install_date"`
}

// Contract is the commercial agreement a company bills under.
// Contracts are maintained by the back office and read-only here.
type Contract struct {
	// ID is the record identifier in the store
	ID int64 `json:"id"`

	// OrganizationID is the contracting organization
	OrganizationID int64 `json:"organization_id"`

	// CompanyID is the covered company; zero means the organization's
	// master contract
	CompanyID int64 `json:"company_id,omitempty"`

	// LegacyServiceID carries the identifier from the previous system
	LegacyServiceID string `json:"legacy_service_id,omitempty"`

	// ContractNumber is the commercial contract number
	ContractNumber string `json:"contract_number"`

	// ItemNumber is the line item within the contract
	ItemNumber string `json:"item_number,omitempty"`

	// Description is free-form
	Description string `json:"description,omitempty"`

	// Version selects the generation of pricing rules
	Version ContractVersion `json:"version"`

	// PriceTableID is the table the contract prices against
	PriceTableID int64 `json:"price_table_id"`

	// IsSubcontract marks amendment subcontracts
	IsSubcontract bool `json:"is_subcontract,omitempty"`
}

// Master reports whether the contract is the organization-wide master
func (c Contract) Master() bool {
	return c.CompanyID == 0
}
