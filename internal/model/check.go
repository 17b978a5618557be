package model

// Severity indicates how strongly a suspicious element undermines trust
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// SuspiciousKind classifies a suspicious element found during checking
type SuspiciousKind string

const (
	SuspiciousUnverifiedReference SuspiciousKind = "unverified_reference"
	SuspiciousVagueAuthority      SuspiciousKind = "vague_authority"
	SuspiciousCategoricalClaim    SuspiciousKind = "categorical_claim"
	SuspiciousUnsourcedNumeric    SuspiciousKind = "unsourced_numeric"
)

// SuspiciousElement is one flagged fragment of checked text
type SuspiciousElement struct {
	Kind     SuspiciousKind `json:"kind"`
	Severity Severity       `json:"severity"`
	Excerpt  string         `json:"excerpt"`
	Detail   string         `json:"detail,omitempty"`
}

// CheckResult is the legacy/simple anti-hallucination check output.
// Implements AgentResult so it slots into the validation union.
type CheckResult struct {
	Score              float64                 `json:"score"`
	Verified           bool                    `json:"verified"`
	References         []ReferenceVerification `json:"references"`
	SuspiciousElements []SuspiciousElement     `json:"suspicious_elements"`
	Suggestions        []string                `json:"suggestions"`
}

func (r CheckResult) Agent() AgentName    { return AgentAntiHallucination }
func (r CheckResult) ScoreValue() float64 { return r.Score }

// CategoryScore is the per-category detail of an enhanced check
type CategoryScore struct {
	Score    float64  `json:"score"`
	Checked  int      `json:"checked"`  // Items examined in this category
	Flagged  int      `json:"flagged"`  // Items that raised a finding
	Findings []string `json:"findings"` // Human-readable findings
}

// EnhancedCheckResult is the categorized anti-hallucination check output.
// Overall = 0.5*legal + 0.3*factual + 0.2*prohibited, rounded to one decimal.
// Category weights always sum to 1.0.
type EnhancedCheckResult struct {
	OverallScore     float64       `json:"overall_score"`
	OverallVerified  bool          `json:"overall_verified"`
	LegalReferences  CategoryScore `json:"legal_references"`
	FactualClaims    CategoryScore `json:"factual_claims"`
	ProhibitedPhrase CategoryScore `json:"prohibited_phrases"`
	Recommendations  []string      `json:"recommendations"`
}

// Category weights for the enhanced check. Their sum is always 1.0.
const (
	WeightLegalReferences   = 0.5
	WeightFactualClaims     = 0.3
	WeightProhibitedPhrases = 0.2
)
