// Package types - summary tree
package types

// ScopeSummary holds the per-scope accumulators: one bucket per
// classification, the three traffic-class side buckets, and the named
// basic/communication totals plus the scope grand total. The same shape
// serves company, organization and global scopes so the same fold
// applies at every level.
type ScopeSummary struct {
	// Communication indexes per-calltype buckets
	Communication map[Calltype]*Bucket `json:"communication"`

	// Traffic indexes the local/national/international side buckets
	Traffic map[TrafficClass]*Bucket `json:"traffic"`

	// BasicService indexes per-service-kind buckets
	BasicService map[ServiceKind]*Bucket `json:"basic_service"`

	// CommunicationTotal sums all per-call charges in scope
	CommunicationTotal *Bucket `json:"communication_total"`

	// BasicTotal sums all recurring charges in scope
	BasicTotal *Bucket `json:"basic_total"`

	// GrandTotal is CommunicationTotal plus BasicTotal
	GrandTotal *Bucket `json:"grand_total"`
}

// NewScopeSummary allocates a fresh scope with every sub-bucket its own
// allocation. Maps start empty; calltype and kind slots are created on
// first touch, never shared from a template.
func NewScopeSummary() *ScopeSummary {
	return &ScopeSummary{
		Communication:      make(map[Calltype]*Bucket),
		Traffic:            make(map[TrafficClass]*Bucket),
		BasicService:       make(map[ServiceKind]*Bucket),
		CommunicationTotal: NewBucket(),
		BasicTotal:         NewBucket(),
		GrandTotal:         NewBucket(),
	}
}

// CalltypeBucket returns the bucket for a calltype, allocating on first use
func (s *ScopeSummary) CalltypeBucket(c Calltype) *Bucket {
	b, ok := s.Communication[c]
	if !ok {
		b = NewBucket()
		s.Communication[c] = b
	}
	return b
}

// TrafficBucket returns the bucket for a traffic class, allocating on first use
func (s *ScopeSummary) TrafficBucket(t TrafficClass) *Bucket {
	b, ok := s.Traffic[t]
	if !ok {
		b = NewBucket()
		s.Traffic[t] = b
	}
	return b
}

// ServiceBucket returns the bucket for a service kind, allocating on first use
func (s *ScopeSummary) ServiceBucket(k ServiceKind) *Bucket {
	b, ok := s.BasicService[k]
	if !ok {
		b = NewBucket()
		s.BasicService[k] = b
	}
	return b
}

// MergeScope folds another scope into this one, bucket by bucket
func (s *ScopeSummary) MergeScope(other *ScopeSummary) {
	if other == nil {
		return
	}
	for c, b := range other.Communication {
		s.CalltypeBucket(c).Merge(b)
	}
	for t, b := range other.Traffic {
		s.TrafficBucket(t).Merge(b)
	}
	for k, b := range other.BasicService {
		s.ServiceBucket(k).Merge(b)
	}
	s.CommunicationTotal.Merge(other.CommunicationTotal)
	s.BasicTotal.Merge(other.BasicTotal)
	s.GrandTotal.Merge(other.GrandTotal)
}

// CompanySummary is the company-level scope
type CompanySummary struct {
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`

	*ScopeSummary
}

// OrganizationSummary is the organization-level scope with its companies
type OrganizationSummary struct {
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`

	// Companies indexes company scopes by ID
	Companies map[int64]*CompanySummary `json:"companies"`

	*ScopeSummary
}

// Company returns the company scope, allocating on first use
func (o *OrganizationSummary) Company(id int64, name string) *CompanySummary {
	c, ok := o.Companies[id]
	if !ok {
		c = &CompanySummary{CompanyID: id, Name: name, ScopeSummary: NewScopeSummary()}
		o.Companies[id] = c
	}
	if c.Name == "" && name != "" {
		c.Name = name
	}
	return c
}

// SummaryTree is the finished multi-level rollup: company scopes under
// organization scopes under a global scope, produced by one fold.
type SummaryTree struct {
	// Organizations indexes organization scopes by ID
	Organizations map[int64]*OrganizationSummary `json:"organizations"`

	// Global is the grand rollup across all organizations
	Global *ScopeSummary `json:"global"`

	// Period is the billing period the tree covers
	Period Period `json:"period"`
}

// NewSummaryTree allocates an empty tree for a period
func NewSummaryTree(period Period) *SummaryTree {
	return &SummaryTree{
		Organizations: make(map[int64]*OrganizationSummary),
		Global:        NewScopeSummary(),
		Period:        period,
	}
}

// Organization returns the organization scope, allocating on first use
func (t *SummaryTree) Organization(id int64, name string) *OrganizationSummary {
	o, ok := t.Organizations[id]
	if !ok {
		o = &OrganizationSummary{
			OrganizationID: id,
			Name:           name,
			Companies:      make(map[int64]*CompanySummary),
			ScopeSummary:   NewScopeSummary(),
		}
		t.Organizations[id] = o
	}
	if o.Name == "" && name != "" {
		o.Name = name
	}
	return o
}

// Merge folds another tree into this one. Because buckets are a monoid,
// merging shard trees in any order yields the same result as one
// sequential fold.
func (t *SummaryTree) Merge(other *SummaryTree) {
	if other == nil {
		return
	}
	for id, org := range other.Organizations {
		dst := t.Organization(id, org.Name)
		for cid, company := range org.Companies {
			dst.Company(cid, company.Name).MergeScope(company.ScopeSummary)
		}
		dst.MergeScope(org.ScopeSummary)
	}
	t.Global.MergeScope(other.Global)
}
