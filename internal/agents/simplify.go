package agents

import (
	"fmt"
	"regexp"

	"github.com/rpontes/veridraft/internal/model"
)

// substitution maps a complex or redundant phrase to its plain replacement.
// Replacements are chosen so that no replacement reintroduces a pattern,
// which makes Simplify a fixed point after one pass.
type substitution struct {
	from string
	to   string
	re   *regexp.Regexp
}

func newSubstitution(from, to string) substitution {
	return substitution{
		from: from,
		to:   to,
		re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(from)),
	}
}

// SimplificationAgent scores bureaucratic phrasing and exposes a
// deterministic rewrite applying the substitution tables in order.
type SimplificationAgent struct {
	complex   []substitution
	redundant []substitution
}

// NewSimplificationAgent creates the Language Simplification agent with
// its fixed substitution tables.
func NewSimplificationAgent() *SimplificationAgent {
	return &SimplificationAgent{
		complex: []substitution{
			newSubstitution("with the purpose of", "to"),
			newSubstitution("for the purpose of", "to"),
			newSubstitution("in order to", "to"),
			newSubstitution("due to the fact that", "because"),
			newSubstitution("in the event that", "if"),
			newSubstitution("at this point in time", "now"),
			newSubstitution("a significant number of", "many"),
			newSubstitution("in accordance with", "under"),
			newSubstitution("notwithstanding", "despite"),
			newSubstitution("prior to", "before"),
			newSubstitution("subsequent to", "after"),
			newSubstitution("utilization", "use"),
			newSubstitution("utilize", "use"),
			newSubstitution("commencement", "start"),
			newSubstitution("commence", "start"),
		},
		redundant: []substitution{
			newSubstitution("absolutely essential", "essential"),
			newSubstitution("completely eliminate", "eliminate"),
			newSubstitution("each and every", "every"),
			newSubstitution("first and foremost", "first"),
			newSubstitution("null and void", "void"),
			newSubstitution("final outcome", "outcome"),
			newSubstitution("end result", "result"),
			newSubstitution("past history", "history"),
			newSubstitution("future plans", "plans"),
			newSubstitution("advance planning", "planning"),
		},
	}
}

// Check scores the text: 100 minus 5 per matched phrase occurrence,
// floored at 0.
func (a *SimplificationAgent) Check(text string) model.SimplificationResult {
	complexHits, complexCount := matchPhrases(a.complex, text)
	redundantHits, redundantCount := matchPhrases(a.redundant, text)

	score := 100 - 5*float64(complexCount+redundantCount)
	if score < 0 {
		score = 0
	}

	suggestions := []string{}
	for _, s := range a.complex {
		if containsPhrase(complexHits, s.from) {
			suggestions = append(suggestions, fmt.Sprintf("Replace %q with %q", s.from, s.to))
		}
	}
	for _, s := range a.redundant {
		if containsPhrase(redundantHits, s.from) {
			suggestions = append(suggestions, fmt.Sprintf("Drop the redundancy in %q (use %q)", s.from, s.to))
		}
	}

	return model.SimplificationResult{
		Score:          score,
		ComplexPhrases: complexHits,
		Redundancies:   redundantHits,
		Suggestions:    suggestions,
	}
}

// Simplify applies all substitutions in table order. Deterministic; running
// it on already-simplified text returns the same text.
func (a *SimplificationAgent) Simplify(text string) string {
	for _, s := range a.complex {
		text = s.re.ReplaceAllString(text, s.to)
	}
	for _, s := range a.redundant {
		text = s.re.ReplaceAllString(text, s.to)
	}
	return text
}

// matchPhrases returns the distinct phrases matched and the total number
// of occurrences.
func matchPhrases(subs []substitution, text string) ([]string, int) {
	hits := []string{}
	count := 0
	for _, s := range subs {
		n := len(s.re.FindAllStringIndex(text, -1))
		if n > 0 {
			hits = append(hits, s.from)
			count += n
		}
	}
	return hits, count
}

func containsPhrase(hits []string, phrase string) bool {
	for _, h := range hits {
		if h == phrase {
			return true
		}
	}
	return false
}
