package refcheck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rpontes/veridraft/internal/model"
)

// referencePattern binds an instrument type to the citation forms it can
// take in free text. Each pattern captures (number, year).
type referencePattern struct {
	instrument model.InstrumentType
	re         *regexp.Regexp
}

// Extractor parses free text for citations to normative instruments.
// Accepts both English and Portuguese citation forms.
type Extractor struct {
	patterns []referencePattern
}

// NewExtractor creates an extractor with the fixed citation pattern table
func NewExtractor() *Extractor {
	num := `(\d[\d.,]*)`
	year := `(\d{4})`
	sep := `\s*/\s*`
	ordinal := `(?:n[ºo°]?\.?\s*|no\.?\s*)?`

	return &Extractor{
		patterns: []referencePattern{
			{model.InstrumentStatute, regexp.MustCompile(`(?i)\b(?:lei|law|statute)\s+` + ordinal + num + sep + year)},
			{model.InstrumentDecree, regexp.MustCompile(`(?i)\b(?:decreto|decree)\s+` + ordinal + num + sep + year)},
			{model.InstrumentOrdinance, regexp.MustCompile(`(?i)\b(?:portaria|ordinance)\s+` + ordinal + num + sep + year)},
			{model.InstrumentNormativeInstruction, regexp.MustCompile(`(?i)\b(?:instrução\s+normativa|normative\s+instruction)\s+` + ordinal + num + sep + year)},
			{model.InstrumentResolution, regexp.MustCompile(`(?i)\b(?:resolução|resolution)\s+` + ordinal + num + sep + year)},
			{model.InstrumentProvisionalMeasure, regexp.MustCompile(`(?i)\b(?:medida\s+provisória|provisional\s+measure|mp)\s+` + ordinal + num + sep + year)},
		},
	}
}

// Extract returns all normative citations in the text, in pattern-table
// order and then source order, deduplicated by normalized (type, number,
// year). Numbers are normalized to digits only: "14.133" and "14133" refer
// to the same instrument.
func (e *Extractor) Extract(text string) []model.LegalReference {
	seen := make(map[string]bool)
	var refs []model.LegalReference

	for _, p := range e.patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			number := normalizeNumber(m[1])
			year, err := strconv.Atoi(m[2])
			if err != nil || number == "" {
				continue
			}

			key := fmt.Sprintf("%s:%s:%d", p.instrument, number, year)
			if seen[key] {
				continue
			}
			seen[key] = true

			refs = append(refs, model.LegalReference{
				Type:    p.instrument,
				Number:  number,
				Year:    year,
				RawText: strings.TrimSpace(m[0]),
			})
		}
	}

	return refs
}

// normalizeNumber strips thousands separators, leaving digits only
func normalizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Label renders a reference in canonical human-readable form, used as the
// Reference field of verification results.
func Label(ref model.LegalReference) string {
	return fmt.Sprintf("%s %s/%d", ref.Type, ref.Number, ref.Year)
}
