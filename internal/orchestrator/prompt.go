package orchestrator

import (
	"fmt"
	"strings"

	"github.com/rpontes/veridraft/internal/model"
)

// Fixed token budget submitted with every generation call
const generationMaxTokens = 2000

// Section-type allow-lists. Argumentative sections get argumentation
// guidance and validation; fact-sensitive sections run cold, narrative
// sections warmer.
var (
	argumentativeSections = map[string]bool{
		"justification": true,
		"necessity":     true,
		"risk_analysis": true,
		"benefits":      true,
	}
	factSections = map[string]bool{
		"object":          true,
		"legal_basis":     true,
		"estimated_value": true,
		"technical_specs": true,
	}
	narrativeSections = map[string]bool{
		"introduction": true,
		"context":      true,
		"conclusion":   true,
	}
)

const (
	baseInstructions = `You draft sections of technical-justification documents for public procurement. Write in formal, clear administrative prose. Output only the section text, with no meta commentary.`

	complianceGuidance = `Ground every assertion in the applicable procurement legislation. Cite instruments by number and year (e.g. Law 14133/2021). State the object, the necessity, the estimated value and the legal basis of the contract.`

	readabilityGuidance = `Keep sentences under 25 words. Prefer common words over jargon. Organize the text into short paragraphs, one idea per paragraph.`

	simplificationGuidance = `Avoid bureaucratic circumlocutions ("in order to", "due to the fact that") and redundant pairs ("each and every", "null and void"). Say it plainly.`

	hallucinationPreamble = `Cite only normative instruments you are certain exist. Never invent statute numbers, case law, figures or monetary values. When a supporting number is not available, state that it must be supplied, instead of estimating one. Attribute every figure to its source.`

	argumentationGuidance = `Structure the argument to cover: why the contract is necessary, which public interest it serves, the expected benefits, and the risks of contracting and of not contracting. Quantify wherever possible.`
)

// buildSystemPrompt assembles the system prompt in fixed order: base task,
// compliance, readability, simplification, anti-hallucination preamble,
// and argumentation guidance for argumentative sections only.
func buildSystemPrompt(sectionID string) string {
	parts := []string{
		baseInstructions,
		complianceGuidance,
		readabilityGuidance,
		simplificationGuidance,
		hallucinationPreamble,
	}
	if argumentativeSections[sectionID] {
		parts = append(parts, argumentationGuidance)
	}
	return strings.Join(parts, "\n\n")
}

// buildUserPrompt enriches the sanitized user text with legal framing,
// argumentation framing, market context and document context, in that
// fixed order.
func buildUserPrompt(req model.GenerationRequest, sanitized, marketContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Section: %s (%s)\n\nDraft notes:\n%s\n", req.Title, req.SectionID, sanitized)

	b.WriteString("\nFrame the section within the public procurement legal regime, citing the governing instruments.\n")

	if argumentativeSections[req.SectionID] {
		b.WriteString("\nThis is an argumentative section: justify the decision explicitly, covering necessity, public interest, benefits and risks.\n")
	}

	if marketContext != "" {
		fmt.Fprintf(&b, "\nMarket context (supporting research):\n%s\n", marketContext)
	}

	if req.Document != nil {
		if req.Document.Subject != "" {
			fmt.Fprintf(&b, "\nSubject of the procurement: %s\n", req.Document.Subject)
		}
		if req.Document.Organization != "" {
			fmt.Fprintf(&b, "Contracting organization: %s\n", req.Document.Organization)
		}
	}
	for _, k := range sortedKeys(req.Extra) {
		fmt.Fprintf(&b, "%s: %s\n", k, req.Extra[k])
	}

	return b.String()
}

// temperatureFor selects the sampling temperature by section class:
// 0.2 for fact-sensitive sections, 0.6 for narrative ones, 0.5 otherwise.
func temperatureFor(sectionID string) float32 {
	switch {
	case factSections[sectionID]:
		return 0.2
	case narrativeSections[sectionID]:
		return 0.6
	default:
		return 0.5
	}
}
