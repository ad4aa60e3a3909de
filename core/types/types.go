// Package types defines the domain model for call rating and cost aggregation.
package types

// Calltype classifies a call for pricing purposes
type Calltype string

const (
	// CalltypeVC1 is the first mobile tier
	CalltypeVC1 Calltype = "VC1"

	// CalltypeVC2 is the second mobile tier
	CalltypeVC2 Calltype = "VC2"

	// CalltypeVC3 is the third mobile tier
	CalltypeVC3 Calltype = "VC3"

	// CalltypeLocal is fixed-local traffic
	CalltypeLocal Calltype = "LOCAL"

	// CalltypeLDN is national long-distance traffic
	CalltypeLDN Calltype = "LDN"

	// CalltypeLDI is international long-distance traffic
	CalltypeLDI Calltype = "LDI"

	// CalltypeInternal is intra-PBX traffic, never billed
	CalltypeInternal Calltype = "INTERNAL"

	// CalltypeTollFree is 0800-style traffic, never billed
	CalltypeTollFree Calltype = "TOLL_FREE"
)

// String returns the string representation
func (c Calltype) String() string {
	return string(c)
}

// Billable reports whether calls of this type carry a charge
func (c Calltype) Billable() bool {
	switch c {
	case CalltypeVC1, CalltypeVC2, CalltypeVC3, CalltypeLocal, CalltypeLDN, CalltypeLDI:
		return true
	}
	return false
}

// Mobile reports whether the calltype is one of the mobile tiers
func (c Calltype) Mobile() bool {
	return c == CalltypeVC1 || c == CalltypeVC2 || c == CalltypeVC3
}

// TrafficClass returns the reporting class the calltype rolls up into.
// VC2/VC3 sit in the national class only while they remain unfolded;
// once folded their volume already lives under VC1.
func (c Calltype) TrafficClass() TrafficClass {
	switch c {
	case CalltypeLocal, CalltypeVC1:
		return TrafficLocal
	case CalltypeLDN, CalltypeVC2, CalltypeVC3:
		return TrafficNational
	case CalltypeLDI:
		return TrafficInternational
	}
	return TrafficNone
}

// TrafficClass groups calltypes for the per-class rollup
type TrafficClass string

const (
	TrafficLocal         TrafficClass = "local"
	TrafficNational      TrafficClass = "national"
	TrafficInternational TrafficClass = "international"

	// TrafficNone marks non-billable traffic excluded from the rollup
	TrafficNone TrafficClass = ""
)

// String returns the string representation
func (t TrafficClass) String() string {
	return string(t)
}

// TrafficClasses lists the reporting classes in presentation order
func TrafficClasses() []TrafficClass {
	return []TrafficClass{TrafficLocal, TrafficNational, TrafficInternational}
}

// Direction indicates call direction relative to the organization
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// ContractVersion identifies the generation of pricing rules on a contract
type ContractVersion string

const (
	// ContractOld keeps VC1/VC2/VC3 as separately priced buckets
	ContractOld ContractVersion = "OLD"

	// ContractNew folds VC2/VC3 volume into VC1 before rating
	ContractNew ContractVersion = "NEW"
)

// ServiceKind identifies a recurring basic service billed per period
type ServiceKind string

const (
	// KindFixedLine is an analog subscriber line
	KindFixedLine ServiceKind = "FIXED_LINE"

	// KindDigitalTrunk is an E1/digital trunk
	KindDigitalTrunk ServiceKind = "DIGITAL_TRUNK"

	// KindExtension is a PBX extension
	KindExtension ServiceKind = "EXTENSION"

	// KindVoipAccount is a hosted VoIP account
	KindVoipAccount ServiceKind = "VOIP_ACCOUNT"

	// KindInternetLink is a dedicated data link
	KindInternetLink ServiceKind = "INTERNET_LINK"
)

// String returns the string representation
func (k ServiceKind) String() string {
	return string(k)
}

// Classification identifies what a price row or rated line is priced as:
// either a calltype or a basic-service kind. Exactly one side is set.
type Classification struct {
	Calltype Calltype    `json:"calltype,omitempty"`
	Service  ServiceKind `json:"service,omitempty"`
}

// CallClassification builds a calltype classification
func CallClassification(c Calltype) Classification {
	return Classification{Calltype: c}
}

// ServiceClassification builds a basic-service classification
func ServiceClassification(k ServiceKind) Classification {
	return Classification{Service: k}
}

// IsCall reports whether the classification is a calltype
func (c Classification) IsCall() bool {
	return c.Calltype != ""
}

// String returns the lookup key used by the pricing snapshot
func (c Classification) String() string {
	if c.IsCall() {
		return string(c.Calltype)
	}
	return string(c.Service)
}
