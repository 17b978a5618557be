package agents

import (
	"regexp"
	"strings"

	"github.com/rpontes/veridraft/internal/model"
)

// argumentElement is one of the four binary elements a complete
// argumentative section must address.
type argumentElement struct {
	name       string
	keywords   []string
	suggestion string
}

// ArgumentationAgent checks that an argumentative section addresses
// necessity, public interest, benefits and risks. Each element is binary,
// so the score is always a multiple of 25.
type ArgumentationAgent struct {
	elements   []argumentElement
	numberRe   *regexp.Regexp
	minWords   int
}

// NewArgumentationAgent creates the Argumentation Completeness agent
func NewArgumentationAgent() *ArgumentationAgent {
	return &ArgumentationAgent{
		elements: []argumentElement{
			{
				name:       "necessity",
				keywords:   []string{"necessity", "necessary", "need for", "required because", "necessidade"},
				suggestion: "Explain why the contract is necessary",
			},
			{
				name:       "public_interest",
				keywords:   []string{"public interest", "collective benefit", "society", "citizens", "interesse público"},
				suggestion: "Relate the contract to the public interest",
			},
			{
				name:       "benefits",
				keywords:   []string{"benefit", "advantage", "improvement", "gain", "benefício"},
				suggestion: "Describe the expected benefits",
			},
			{
				name:       "risks",
				keywords:   []string{"risk", "contingency", "mitigation", "adverse", "risco"},
				suggestion: "Address the risks of contracting and of not contracting",
			},
		},
		numberRe: regexp.MustCompile(`\d`),
		minWords: 100,
	}
}

// Check evaluates the four elements. Score = 100 * present / 4.
// Missing quantification and insufficient length are flagged as
// suggestions only and never affect the score.
func (a *ArgumentationAgent) Check(text string) model.ArgumentationResult {
	lower := strings.ToLower(text)

	present := 0
	missing := []string{}
	suggestions := []string{}

	for _, el := range a.elements {
		if containsAny(lower, el.keywords) {
			present++
			continue
		}
		missing = append(missing, el.name)
		suggestions = append(suggestions, el.suggestion)
	}

	score := 100 * float64(present) / float64(len(a.elements))

	if !a.numberRe.MatchString(text) {
		suggestions = append(suggestions, "Quantify the argument with figures (quantities, values, percentages)")
	}
	if wordCount(text) < a.minWords {
		suggestions = append(suggestions, "Develop the argument further; the section is too short to be persuasive")
	}

	return model.ArgumentationResult{
		Score:           score,
		Complete:        present == len(a.elements),
		MissingElements: missing,
		Suggestions:     suggestions,
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
