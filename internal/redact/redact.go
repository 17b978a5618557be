package redact

import (
	"fmt"
	"regexp"
)

// piiPattern is one redaction rule
type piiPattern struct {
	kind string
	re   *regexp.Regexp
}

// Redactor strips personally identifying data from prompts before they
// leave the process. Best effort; it never fails.
type Redactor struct {
	patterns []piiPattern
}

// New creates a redactor with the fixed PII pattern table
func New() *Redactor {
	return &Redactor{
		patterns: []piiPattern{
			{"email", regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)},
			{"tax_id", regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{3}-\d{2}\b`)},
			{"company_id", regexp.MustCompile(`\b\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}\b`)},
			{"phone", regexp.MustCompile(`\+?\d{2}[\s.-]?\(?\d{2}\)?[\s.-]?\d{4,5}[\s.-]?\d{4}\b`)},
		},
	}
}

// Redact replaces every PII match with a kind-tagged placeholder and
// returns one finding per match.
func (r *Redactor) Redact(text string) (string, []string) {
	findings := []string{}
	for _, p := range r.patterns {
		matches := p.re.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		for range matches {
			findings = append(findings, p.kind)
		}
		text = p.re.ReplaceAllString(text, fmt.Sprintf("[redacted-%s]", p.kind))
	}
	return text, findings
}
