package agents

import (
	"strings"

	"github.com/rpontes/veridraft/internal/model"
)

// ReadabilityAgent scores text on sentence and word length, and flags
// structural problems that hurt comprehension without double-counting
// them into the score.
type ReadabilityAgent struct {
	jargon       map[string]bool
	passiveCues  []string
}

// NewReadabilityAgent creates the Readability agent with its fixed
// technical-term table.
func NewReadabilityAgent() *ReadabilityAgent {
	terms := []string{
		"aforementioned", "heretofore", "hereinafter", "notwithstanding",
		"pursuant", "thereof", "whereby", "herein", "thereunder",
		"supracitado", "outrossim", "destarte", "consoante", "exarado",
	}
	jargon := make(map[string]bool, len(terms))
	for _, t := range terms {
		jargon[t] = true
	}

	return &ReadabilityAgent{
		jargon:      jargon,
		passiveCues: []string{"was ", "were ", "been ", "being ", "is being", "are being", "foi ", "foram "},
	}
}

// Check computes the readability score:
//
//	score = max(0, 100 - max(0,(avgSentenceLen-15)*2) - max(0,(avgWordLen-5)*10))
//
// Empty text deterministically yields score 0 with a single issue.
func (a *ReadabilityAgent) Check(text string) model.ReadabilityResult {
	words := strings.Fields(text)
	if len(words) == 0 {
		return model.ReadabilityResult{
			Score:       0,
			Readable:    false,
			Issues:      []string{"text is empty"},
			Suggestions: []string{"Provide content to evaluate"},
		}
	}

	sentences := splitSentences(text)
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}

	totalChars := 0
	complexWords := 0
	jargonWords := 0
	for _, w := range words {
		trimmed := strings.Trim(strings.ToLower(w), ".,;:!?()\"'")
		runes := []rune(trimmed)
		totalChars += len(runes)
		if len(runes) > 8 {
			complexWords++
		}
		if a.jargon[trimmed] {
			jargonWords++
		}
	}

	avgSentenceLen := float64(len(words)) / float64(sentenceCount)
	avgWordLen := float64(totalChars) / float64(len(words))

	sentencePenalty := (avgSentenceLen - 15) * 2
	if sentencePenalty < 0 {
		sentencePenalty = 0
	}
	wordPenalty := (avgWordLen - 5) * 10
	if wordPenalty < 0 {
		wordPenalty = 0
	}

	score := 100 - sentencePenalty - wordPenalty
	if score < 0 {
		score = 0
	}

	issues := []string{}
	suggestions := []string{}

	if avgSentenceLen > 25 {
		issues = append(issues, "sentences are too long on average")
		suggestions = append(suggestions, "Break long sentences into shorter ones (aim for under 25 words)")
	}
	if float64(jargonWords)/float64(len(words)) > 0.10 {
		issues = append(issues, "excessive legal jargon")
		suggestions = append(suggestions, "Replace technical jargon with plain language where possible")
	}
	if passiveRatio(sentences, a.passiveCues) > 0.30 {
		issues = append(issues, "overuse of passive voice")
		suggestions = append(suggestions, "Prefer active voice to make responsibilities explicit")
	}
	if float64(complexWords)/float64(len(words)) > 0.20 {
		issues = append(issues, "too many long words")
		suggestions = append(suggestions, "Prefer shorter, more common words")
	}
	if len(words) > 100 && !strings.Contains(text, "\n\n") {
		issues = append(issues, "no paragraph structure")
		suggestions = append(suggestions, "Split the text into paragraphs, one idea per paragraph")
	}

	return model.ReadabilityResult{
		Score:          score,
		Readable:       score >= 70,
		AvgSentenceLen: avgSentenceLen,
		AvgWordLen:     avgWordLen,
		Issues:         issues,
		Suggestions:    suggestions,
	}
}

// splitSentences splits text on sentence terminators. Fragments without a
// terminator count as one sentence.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(current.String())
			if len(strings.Fields(s)) > 0 {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); len(strings.Fields(s)) > 0 {
		sentences = append(sentences, s)
	}

	return sentences
}

func passiveRatio(sentences []string, cues []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	passive := 0
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, cue := range cues {
			if strings.Contains(lower, cue) {
				passive++
				break
			}
		}
	}
	return float64(passive) / float64(len(sentences))
}
