package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
)

// injectionPattern is one prompt-injection signature: (pattern, label).
// Matches are stripped, never rejected — the pipeline sanitizes and
// continues.
type injectionPattern struct {
	re    *regexp.Regexp
	label string
}

var injectionPatterns = []injectionPattern{
	{regexp.MustCompile(`(?i)ignore\s+(?:all\s+)?(?:previous|prior|above)\s+instructions?`), "instruction override"},
	{regexp.MustCompile(`(?i)disregard\s+(?:the\s+)?(?:previous|prior|above|system)\s+\w+`), "instruction override"},
	{regexp.MustCompile(`(?i)forget\s+everything\s+(?:above|before)`), "instruction override"},
	{regexp.MustCompile(`(?im)^\s*(?:system|assistant)\s*:`), "role spoofing"},
	{regexp.MustCompile(`(?i)you\s+are\s+now\s+(?:a|an|the)\b`), "role spoofing"},
	{regexp.MustCompile(`(?i)pretend\s+to\s+be\b`), "role spoofing"},
	{regexp.MustCompile(`(?i)<\s*/?\s*script[^>]*>`), "script injection"},
	{regexp.MustCompile(`(?i)javascript\s*:`), "script injection"},
}

// sanitizeInput strips injection signatures from user text. One warning is
// recorded per matched pattern.
func sanitizeInput(text string) (string, []string) {
	var warnings []string
	for _, p := range injectionPatterns {
		if !p.re.MatchString(text) {
			continue
		}
		text = p.re.ReplaceAllString(text, "")
		warnings = append(warnings, fmt.Sprintf("Potential prompt injection removed from input (%s)", p.label))
	}
	return strings.TrimSpace(text), warnings
}
