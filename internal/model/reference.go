package model

// InstrumentType categorizes a normative instrument cited in a document
type InstrumentType string

const (
	InstrumentStatute              InstrumentType = "statute"               // Laws passed by the legislature
	InstrumentDecree               InstrumentType = "decree"                // Executive decrees
	InstrumentOrdinance            InstrumentType = "ordinance"             // Ministerial ordinances
	InstrumentNormativeInstruction InstrumentType = "normative_instruction" // Agency normative instructions
	InstrumentResolution           InstrumentType = "resolution"            // Board/council resolutions
	InstrumentProvisionalMeasure   InstrumentType = "provisional_measure"   // Provisional measures with force of law
)

// AuthorityWeight returns the static weight expressing how much an
// instrument type influences the aggregate verification score.
// Higher hierarchy, higher weight.
func (t InstrumentType) AuthorityWeight() int {
	switch t {
	case InstrumentStatute:
		return 3
	case InstrumentDecree, InstrumentProvisionalMeasure:
		return 2
	case InstrumentOrdinance, InstrumentNormativeInstruction, InstrumentResolution:
		return 1
	default:
		return 1
	}
}

// LegalReference is a citation to a normative instrument extracted from text.
// Number is normalized to digits only (periods stripped).
type LegalReference struct {
	Type    InstrumentType `json:"type"`
	Number  string         `json:"number"`
	Year    int            `json:"year"`
	RawText string         `json:"raw_text"` // Text as matched in the source
}

// VerificationSource tags where the existence decision came from
type VerificationSource string

const (
	SourceLocalIndex       VerificationSource = "local_index"
	SourceExternalFallback VerificationSource = "external_fallback"
)

// ReferenceVerification is the outcome of verifying one extracted reference.
// Order in a batch corresponds to extraction order.
type ReferenceVerification struct {
	Reference  string             `json:"reference"`            // Human-readable "statute 14133/2021"
	Exists     bool               `json:"exists"`
	Confidence float64            `json:"confidence"`           // 0..1
	Suggestion string             `json:"suggestion,omitempty"` // Near-match correction, always local provenance
	Source     VerificationSource `json:"source"`
}

// IndexResult is what the local authoritative index reports for a lookup
type IndexResult struct {
	Exists     bool    `json:"exists"`
	Confidence float64 `json:"confidence"`
	Suggestion string  `json:"suggestion,omitempty"`
}

// FactCheckResult is what the external fallback lookup reports
type FactCheckResult struct {
	Exists      bool    `json:"exists"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence"`
}
