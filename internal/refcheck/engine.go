package refcheck

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/rpontes/veridraft/internal/model"
)

// DefaultThreshold is the verification threshold used when no
// configuration overrides HALLUCINATION_THRESHOLD.
const DefaultThreshold = 70.0

// suspiciousPattern is one heuristic entry: (pattern, severity, kind).
// Kept as data so the heuristics stay auditable independently of control
// flow.
type suspiciousPattern struct {
	re       *regexp.Regexp
	severity model.Severity
	kind     model.SuspiciousKind
	label    string
}

// Engine composes the extractor and verifier, layers heuristic checks on
// top, and computes the legacy and the categorized trust scores.
type Engine struct {
	extractor   *Extractor
	verifier    *Verifier
	thresholdFn func() float64
	logger      *zap.Logger

	vagueAuthority []suspiciousPattern
	categorical    []suspiciousPattern
	prohibited     []suspiciousPattern
	attributionCue []string
	numericRe      *regexp.Regexp
}

// Option configures an Engine
type Option func(*Engine)

// WithThreshold fixes the verification threshold
func WithThreshold(t float64) Option {
	return func(e *Engine) { e.thresholdFn = func() float64 { return t } }
}

// WithThresholdFunc reads the threshold per check call, so a process-wide
// configuration change takes effect without rebuilding the engine.
func WithThresholdFunc(fn func() float64) Option {
	return func(e *Engine) { e.thresholdFn = fn }
}

// WithLogger sets the structured logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates the anti-hallucination engine with its fixed heuristic
// tables.
func NewEngine(extractor *Extractor, verifier *Verifier, opts ...Option) *Engine {
	e := &Engine{
		extractor:   extractor,
		verifier:    verifier,
		thresholdFn: func() float64 { return DefaultThreshold },
		logger:      zap.NewNop(),

		vagueAuthority: compilePatterns(model.SeverityHigh, model.SuspiciousVagueAuthority,
			"settled case law", "jurisprudência pacífica", "studies show",
			"experts agree", "as is well known", "como é sabido",
		),
		categorical: compilePatterns(model.SeverityMedium, model.SuspiciousCategoricalClaim,
			"always", "never", "undoubtedly", "certainly", "guarantees",
			"impossible", "without exception", "in all cases", "sempre", "nunca",
		),
		prohibited: compilePatterns(model.SeverityMedium, model.SuspiciousCategoricalClaim,
			"100% guaranteed", "totally secure", "best possible",
			"unquestionable", "absolutely certain", "zero risk",
			"without any risk", "fully proven", "infallible", "unanimously",
		),
		attributionCue: []string{
			"according to", "pursuant to", "as per", "source", "based on",
			"estimated by", "reported by", "conforme", "segundo", "de acordo com", "fonte",
		},
		numericRe: regexp.MustCompile(`(?:R\$|US\$|\$)\s?\d[\d.,]*|\b\d+(?:[.,]\d+)?\s?%|\b\d[\d.,]{3,}\b`),
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

func compilePatterns(sev model.Severity, kind model.SuspiciousKind, phrases ...string) []suspiciousPattern {
	out := make([]suspiciousPattern, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, suspiciousPattern{
			re:       regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`),
			severity: sev,
			kind:     kind,
			label:    p,
		})
	}
	return out
}

// Check runs the legacy/simple anti-hallucination check.
//
// With extracted references the score is the weighted verification score
// minus 5 per categorical claim and 5 if unsourced numeric claims are
// present. Without references the score is heuristic: 100 minus 15 per
// high-severity element minus 5 per medium-severity element. Both floored
// at 0. The result is verified when no suspicious elements were found at
// all, or when the score clears the threshold.
func (e *Engine) Check(ctx context.Context, text string) model.CheckResult {
	refs := e.extractor.Extract(text)
	verifs := e.verifier.VerifyAll(ctx, refs)

	var elements []model.SuspiciousElement
	suggestions := []string{}

	for _, v := range verifs {
		if v.Exists {
			continue
		}
		elements = append(elements, model.SuspiciousElement{
			Kind:     model.SuspiciousUnverifiedReference,
			Severity: model.SeverityHigh,
			Excerpt:  v.Reference,
			Detail:   v.Suggestion,
		})
		if v.Suggestion != "" {
			suggestions = append(suggestions, v.Suggestion)
		} else {
			suggestions = append(suggestions, fmt.Sprintf("Could not verify %s; confirm it exists before publishing", v.Reference))
		}
	}

	vagueCount := 0
	for _, p := range e.vagueAuthority {
		for _, m := range p.re.FindAllString(text, -1) {
			elements = append(elements, model.SuspiciousElement{
				Kind:     p.kind,
				Severity: p.severity,
				Excerpt:  m,
			})
			vagueCount++
			suggestions = append(suggestions, "Replace vague authority claims with specific, numbered citations")
		}
	}

	categoricalCount := 0
	for _, p := range e.categorical {
		for _, m := range p.re.FindAllString(text, -1) {
			elements = append(elements, model.SuspiciousElement{
				Kind:     model.SuspiciousCategoricalClaim,
				Severity: model.SeverityMedium,
				Excerpt:  m,
			})
			categoricalCount++
			suggestions = append(suggestions, fmt.Sprintf("Avoid categorical language such as %q", strings.ToLower(m)))
		}
	}

	unsourced := e.unsourcedNumericSentences(text)
	if len(unsourced) > 0 {
		elements = append(elements, model.SuspiciousElement{
			Kind:     model.SuspiciousUnsourcedNumeric,
			Severity: model.SeverityMedium,
			Excerpt:  truncate(unsourced[0], 80),
			Detail:   fmt.Sprintf("%d sentence(s) with unattributed figures", len(unsourced)),
		})
		suggestions = append(suggestions, "Attribute numeric and monetary claims to a verifiable source")
	}

	var score float64
	if len(refs) > 0 {
		score = WeightedScore(refs, verifs)
		score -= 5 * float64(categoricalCount)
		if len(unsourced) > 0 {
			score -= 5
		}
	} else {
		high, medium := 0, 0
		for _, el := range elements {
			if el.Severity == model.SeverityHigh {
				high++
			} else {
				medium++
			}
		}
		score = 100 - 15*float64(high) - 5*float64(medium)
	}
	if score < 0 {
		score = 0
	}

	threshold := e.thresholdFn()
	verified := len(elements) == 0 || score >= threshold

	e.logger.Debug("hallucination check",
		zap.Int("references", len(refs)),
		zap.Int("suspicious", len(elements)),
		zap.Float64("score", score),
		zap.Bool("verified", verified))

	return model.CheckResult{
		Score:              score,
		Verified:           verified,
		References:         verifs,
		SuspiciousElements: elements,
		Suggestions:        dedupe(suggestions),
	}
}

// CheckEnhanced runs the categorized check. Three independent category
// scores are combined as overall = 0.5*legal + 0.3*factual +
// 0.2*prohibited, rounded to one decimal.
func (e *Engine) CheckEnhanced(ctx context.Context, text string) model.EnhancedCheckResult {
	refs := e.extractor.Extract(text)
	verifs := e.verifier.VerifyAll(ctx, refs)

	recommendations := []string{}

	// Legal references: weighted verification score.
	legal := model.CategoryScore{
		Score:    WeightedScore(refs, verifs),
		Checked:  len(refs),
		Findings: []string{},
	}
	for _, v := range verifs {
		if v.Exists {
			continue
		}
		legal.Flagged++
		legal.Findings = append(legal.Findings, fmt.Sprintf("unverified reference: %s", v.Reference))
		if v.Suggestion != "" {
			recommendations = append(recommendations, v.Suggestion)
		} else {
			recommendations = append(recommendations, fmt.Sprintf("Remove or verify %s", v.Reference))
		}
	}

	// Factual claims: binary 70/100 on unattributed figures.
	numericSentences := e.numericSentences(text)
	unsourced := e.unsourcedNumericSentences(text)
	factual := model.CategoryScore{
		Score:    100,
		Checked:  len(numericSentences),
		Flagged:  len(unsourced),
		Findings: []string{},
	}
	if len(unsourced) > 0 {
		factual.Score = 70
		for _, s := range unsourced {
			factual.Findings = append(factual.Findings, truncate(s, 80))
		}
		recommendations = append(recommendations, "Attribute numeric and monetary claims to a verifiable source")
	}

	// Prohibited phrases: 10 points per occurrence.
	prohibited := model.CategoryScore{
		Score:    100,
		Checked:  len(e.prohibited),
		Findings: []string{},
	}
	occurrences := 0
	var matched []string
	for _, p := range e.prohibited {
		n := len(p.re.FindAllString(text, -1))
		if n == 0 {
			continue
		}
		occurrences += n
		matched = append(matched, p.label)
		prohibited.Flagged++
		prohibited.Findings = append(prohibited.Findings, p.label)
	}
	prohibited.Score = 100 - 10*float64(occurrences)
	if prohibited.Score < 0 {
		prohibited.Score = 0
	}
	if len(matched) > 0 {
		sample := matched
		if len(sample) > 3 {
			sample = sample[:3]
		}
		recommendations = append(recommendations, fmt.Sprintf("Avoid absolute or promotional phrasing: %s", strings.Join(sample, ", ")))
	}

	overall := round1(model.WeightLegalReferences*legal.Score +
		model.WeightFactualClaims*factual.Score +
		model.WeightProhibitedPhrases*prohibited.Score)

	threshold := e.thresholdFn()
	if overall < threshold {
		recommendations = append(recommendations, "Overall trust score is below the verification threshold; review flagged items before publishing")
	}

	return model.EnhancedCheckResult{
		OverallScore:     overall,
		OverallVerified:  overall >= threshold,
		LegalReferences:  legal,
		FactualClaims:    factual,
		ProhibitedPhrase: prohibited,
		Recommendations:  dedupe(recommendations),
	}
}

// WeightedScore computes the authority-weighted verification score for a
// batch. Nothing to verify is not penalized: zero references scores 100.
// A verified reference contributes weight*confidence, an unverified
// reference with a correction suggestion contributes weight*0.5, and an
// unverified reference without one contributes 0. Weights are recomputed
// per call; references differ by request.
func WeightedScore(refs []model.LegalReference, verifs []model.ReferenceVerification) float64 {
	if len(refs) == 0 {
		return 100
	}

	totalWeight := 0.0
	weightedScore := 0.0
	for i, ref := range refs {
		w := float64(ref.Type.AuthorityWeight())
		totalWeight += w

		if i >= len(verifs) {
			continue
		}
		v := verifs[i]
		switch {
		case v.Exists:
			weightedScore += w * v.Confidence
		case v.Suggestion != "":
			weightedScore += w * 0.5
		}
	}

	if totalWeight == 0 {
		return 100
	}
	return 100 * weightedScore / totalWeight
}

// numericSentences returns sentences carrying specific numeric or monetary
// claims.
func (e *Engine) numericSentences(text string) []string {
	var out []string
	for _, s := range sentences(text) {
		if e.numericRe.MatchString(s) {
			out = append(out, s)
		}
	}
	return out
}

// unsourcedNumericSentences returns numeric-claim sentences lacking both an
// attribution cue and a normative citation.
func (e *Engine) unsourcedNumericSentences(text string) []string {
	var out []string
	for _, s := range e.numericSentences(text) {
		lower := strings.ToLower(s)
		if containsCue(lower, e.attributionCue) {
			continue
		}
		if len(e.extractor.Extract(s)) > 0 {
			continue
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func containsCue(lower string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// sentences splits on sentence terminators; a trailing fragment counts as
// one sentence.
func sentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var out []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				out = append(out, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := []string{}
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
