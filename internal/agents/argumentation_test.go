package agents

import (
	"strings"
	"testing"
)

func TestArgumentationAgent_ScoreIsMultipleOf25(t *testing.T) {
	agent := NewArgumentationAgent()

	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"none", "We will buy equipment soon.", 0},
		{"necessity only", "The necessity of this purchase is clear.", 25},
		{"necessity and risks", "The necessity is clear and the risk is low.", 50},
		{
			"three elements",
			"The necessity is clear, the risk is low and the benefit is large.",
			75,
		},
		{
			"all four",
			"The necessity is clear, the risk is low, the benefit is large and citizens gain from it.",
			100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := agent.Check(tt.text)
			if result.Score != tt.expected {
				t.Errorf("Expected score %.0f, got %.1f (missing: %v)",
					tt.expected, result.Score, result.MissingElements)
			}
		})
	}
}

func TestArgumentationAgent_EmptyText(t *testing.T) {
	agent := NewArgumentationAgent()

	result := agent.Check("")

	if result.Score != 0 {
		t.Errorf("Expected score 0 for empty text, got %.1f", result.Score)
	}
	if result.Complete {
		t.Error("Expected Complete=false for empty text")
	}
	// Four missing elements plus the quantification and length suggestions.
	if len(result.Suggestions) != 6 {
		t.Errorf("Expected exactly 6 suggestions for empty text, got %d: %v",
			len(result.Suggestions), result.Suggestions)
	}
	if len(result.MissingElements) != 4 {
		t.Errorf("Expected 4 missing elements, got %d", len(result.MissingElements))
	}
}

func TestArgumentationAgent_AuxiliarySuggestionsDoNotAffectScore(t *testing.T) {
	agent := NewArgumentationAgent()

	// All four elements present, no digits, fewer than 100 words.
	text := "The necessity is clear, the risk is low, the benefit is large and citizens gain from it."
	result := agent.Check(text)

	if result.Score != 100 {
		t.Errorf("Expected score 100 despite auxiliary suggestions, got %.1f", result.Score)
	}
	if !result.Complete {
		t.Error("Expected Complete=true")
	}
	if len(result.Suggestions) != 2 {
		t.Errorf("Expected quantification and length suggestions, got %v", result.Suggestions)
	}
}

func TestArgumentationAgent_QuantifiedLongText(t *testing.T) {
	agent := NewArgumentationAgent()

	text := "The necessity of replacing 120 workstations is clear. " +
		"The risk of not contracting is service disruption. " +
		"The main benefit is a 30% reduction in downtime, serving citizens directly. " +
		strings.Repeat("Additional supporting detail about the procurement follows here. ", 15)

	result := agent.Check(text)

	if result.Score != 100 {
		t.Errorf("Expected score 100, got %.1f", result.Score)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("Expected no suggestions, got %v", result.Suggestions)
	}
}

func TestArgumentationAgent_PortugueseKeywords(t *testing.T) {
	agent := NewArgumentationAgent()

	result := agent.Check("A necessidade é evidente e atende ao interesse público.")

	if result.Score != 50 {
		t.Errorf("Expected score 50 for necessity + public interest, got %.1f", result.Score)
	}
}
