// Package report shapes the finished summary tree into the row/section
// form the presentation renderers consume. Renderers read this output
// as-is and never re-derive costs.
package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
)

// Section titles as they appear on rendered invoices
const (
	SectionBasic         = "SERVIÇOS BÁSICOS"
	SectionCommunication = "SERVIÇOS DE COMUNICAÇÃO"
	RowGrandTotal        = "TOTAL GERAL"
)

// Row is one rendered line of a report section
type Row struct {
	Label           string          `json:"label"`
	Count           int64           `json:"count"`
	DurationSeconds int64           `json:"duration_seconds"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitPriceUst    decimal.Decimal `json:"unit_price_ust"`
	Cost            decimal.Decimal `json:"cost"`
	CostUst         decimal.Decimal `json:"cost_ust"`
}

// Section groups rows under one of the named service sections
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
	Total Row    `json:"total"`
}

// CompanyReport is the rendered view of one company scope
type CompanyReport struct {
	CompanyID  int64     `json:"company_id"`
	Name       string    `json:"name"`
	Sections   []Section `json:"sections"`
	GrandTotal Row       `json:"grand_total"`
}

// OrganizationReport is the rendered view of one organization scope
type OrganizationReport struct {
	OrganizationID int64           `json:"organization_id"`
	Name           string          `json:"name"`
	Companies      []CompanyReport `json:"companies"`
	Sections       []Section       `json:"sections"`
	GrandTotal     Row             `json:"grand_total"`
}

// Report is the complete assembled output for one run
type Report struct {
	Period        string               `json:"period"`
	Organizations []OrganizationReport `json:"organizations"`
	Sections      []Section            `json:"sections"`
	GrandTotal    Row                  `json:"grand_total"`
}

// calltypeOrder fixes the presentation order of calltype rows
var calltypeOrder = []types.Calltype{
	types.CalltypeLocal,
	types.CalltypeVC1,
	types.CalltypeVC2,
	types.CalltypeVC3,
	types.CalltypeLDN,
	types.CalltypeLDI,
}

// Assemble shapes a summary tree into renderer input. Organizations and
// companies are sorted by name so exports are reproducible run to run.
func Assemble(tree *types.SummaryTree) *Report {
	out := &Report{
		Period:     tree.Period.String(),
		Sections:   scopeSections(tree.Global),
		GrandTotal: bucketRow(RowGrandTotal, tree.Global.GrandTotal),
	}

	for _, org := range sortedOrganizations(tree) {
		orgReport := OrganizationReport{
			OrganizationID: org.OrganizationID,
			Name:           org.Name,
			Sections:       scopeSections(org.ScopeSummary),
			GrandTotal:     bucketRow(RowGrandTotal, org.GrandTotal),
		}
		for _, company := range sortedCompanies(org) {
			orgReport.Companies = append(orgReport.Companies, CompanyReport{
				CompanyID:  company.CompanyID,
				Name:       company.Name,
				Sections:   scopeSections(company.ScopeSummary),
				GrandTotal: bucketRow(RowGrandTotal, company.GrandTotal),
			})
		}
		out.Organizations = append(out.Organizations, orgReport)
	}

	return out
}

func scopeSections(scope *types.ScopeSummary) []Section {
	return []Section{
		basicSection(scope),
		communicationSection(scope),
	}
}

func basicSection(scope *types.ScopeSummary) Section {
	section := Section{
		Title: SectionBasic,
		Total: bucketRow("TOTAL "+SectionBasic, scope.BasicTotal),
	}

	kinds := make([]types.ServiceKind, 0, len(scope.BasicService))
	for kind := range scope.BasicService {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		section.Rows = append(section.Rows, bucketRow(kind.String(), scope.BasicService[kind]))
	}
	return section
}

func communicationSection(scope *types.ScopeSummary) Section {
	section := Section{
		Title: SectionCommunication,
		Total: bucketRow("TOTAL "+SectionCommunication, scope.CommunicationTotal),
	}

	for _, calltype := range calltypeOrder {
		bucket, ok := scope.Communication[calltype]
		if !ok {
			continue
		}
		section.Rows = append(section.Rows, bucketRow(calltype.String(), bucket))
	}
	for _, class := range types.TrafficClasses() {
		bucket, ok := scope.Traffic[class]
		if !ok {
			continue
		}
		section.Rows = append(section.Rows, bucketRow("TRÁFEGO "+strings.ToUpper(class.String()), bucket))
	}
	return section
}

func bucketRow(label string, bucket *types.Bucket) Row {
	if bucket == nil {
		return Row{Label: label}
	}
	return Row{
		Label:           label,
		Count:           bucket.Count,
		DurationSeconds: bucket.DurationSeconds,
		UnitPrice:       bucket.UnitPrice,
		UnitPriceUst:    bucket.UnitPriceUst,
		Cost:            bucket.Cost,
		CostUst:         bucket.CostUst,
	}
}

func sortedOrganizations(tree *types.SummaryTree) []*types.OrganizationSummary {
	orgs := make([]*types.OrganizationSummary, 0, len(tree.Organizations))
	for _, org := range tree.Organizations {
		orgs = append(orgs, org)
	}
	sort.Slice(orgs, func(i, j int) bool {
		if orgs[i].Name != orgs[j].Name {
			return orgs[i].Name < orgs[j].Name
		}
		return orgs[i].OrganizationID < orgs[j].OrganizationID
	})
	return orgs
}

func sortedCompanies(org *types.OrganizationSummary) []*types.CompanySummary {
	companies := make([]*types.CompanySummary, 0, len(org.Companies))
	for _, company := range org.Companies {
		companies = append(companies, company)
	}
	sort.Slice(companies, func(i, j int) bool {
		if companies[i].Name != companies[j].Name {
			return companies[i].Name < companies[j].Name
		}
		return companies[i].CompanyID < companies[j].CompanyID
	})
	return companies
}
