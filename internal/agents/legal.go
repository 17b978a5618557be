package agents

import (
	"regexp"
	"strings"

	"github.com/rpontes/veridraft/internal/model"
)

// requiredMarker is one textual marker a compliant justification section
// must carry. A marker is satisfied when its pattern matches or any of its
// keywords appears in the lowercased text.
type requiredMarker struct {
	name       string
	pattern    *regexp.Regexp
	keywords   []string
	issue      string
	suggestion string
}

// LegalAgent checks a section for the structural markers required of a
// technical-justification document. Pure function over text, no I/O.
type LegalAgent struct {
	markers []requiredMarker
}

// NewLegalAgent creates the Legal Compliance agent with its fixed marker table
func NewLegalAgent() *LegalAgent {
	return &LegalAgent{
		markers: []requiredMarker{
			{
				name:       "statutory_citation",
				pattern:    regexp.MustCompile(`(?i)\b(?:lei|law|statute|decreto|decree)\s+(?:n[ºo°]?\.?\s*|no\.?\s*)?\d`),
				issue:      "no explicit statutory citation found",
				suggestion: "Cite the governing statute explicitly (e.g. Law 14133/2021)",
			},
			{
				name:       "justification_marker",
				keywords:   []string{"justification", "justificativa", "rationale"},
				issue:      "missing justification section marker",
				suggestion: "Include an explicit justification statement",
			},
			{
				name:       "object_marker",
				keywords:   []string{"object", "objeto", "purpose of the contract"},
				issue:      "object of the contract not identified",
				suggestion: "Describe the object of the contract",
			},
			{
				name:       "necessity_marker",
				keywords:   []string{"necessity", "necessidade", "need for"},
				issue:      "necessity of the contract not stated",
				suggestion: "State why the contract is necessary",
			},
			{
				name:       "value_marker",
				keywords:   []string{"estimated value", "valor estimado", "estimated amount", "budget"},
				issue:      "estimated value not mentioned",
				suggestion: "Reference the estimated value or budget allocation",
			},
			{
				name:       "legal_basis_marker",
				keywords:   []string{"pursuant to", "legal basis", "under article", "fundamento legal", "nos termos"},
				issue:      "legal basis not articulated",
				suggestion: "Anchor the section in its legal basis (article and instrument)",
			},
			{
				name:       "modality_marker",
				keywords:   []string{"bidding", "tender", "procurement method", "direct contracting", "licitação", "modalidade"},
				issue:      "contracting modality not indicated",
				suggestion: "Indicate the contracting modality or its waiver",
			},
			{
				name:       "term_marker",
				keywords:   []string{"term", "duration", "period of", "prazo", "vigência"},
				issue:      "contract term not specified",
				suggestion: "Specify the expected contract term",
			},
			{
				name:       "authority_marker",
				keywords:   []string{"responsible", "requesting unit", "authority", "responsável", "unidade"},
				issue:      "responsible unit or authority not named",
				suggestion: "Name the requesting unit or responsible authority",
			},
			{
				name:       "public_interest_marker",
				keywords:   []string{"public interest", "interesse público", "public benefit"},
				issue:      "public interest not addressed",
				suggestion: "Connect the contract to the public interest it serves",
			},
		},
	}
}

// Check scores the text against the marker table.
// Score = 100 * (10 - issues) / 10, floored at 0; compliant when score >= 70.
func (a *LegalAgent) Check(text string) model.LegalResult {
	lower := strings.ToLower(text)

	issues := []string{}
	suggestions := []string{}

	for _, m := range a.markers {
		if markerSatisfied(m, text, lower) {
			continue
		}
		issues = append(issues, m.issue)
		suggestions = append(suggestions, m.suggestion)
	}

	score := 100 * float64(len(a.markers)-len(issues)) / float64(len(a.markers))
	if score < 0 {
		score = 0
	}

	return model.LegalResult{
		Score:       score,
		Compliant:   score >= 70,
		Issues:      issues,
		Suggestions: suggestions,
	}
}

func markerSatisfied(m requiredMarker, text, lower string) bool {
	if m.pattern != nil && m.pattern.MatchString(text) {
		return true
	}
	for _, kw := range m.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
