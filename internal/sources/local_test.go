package sources

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpontes/veridraft/internal/model"
)

func TestLocalIndex_ExactHit(t *testing.T) {
	idx, err := NewLocalIndex("", nil)
	if err != nil {
		t.Fatalf("NewLocalIndex: %v", err)
	}

	result, err := idx.Verify(context.Background(), model.LegalReference{
		Type: model.InstrumentStatute, Number: "14133", Year: 2021,
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if !result.Exists || result.Confidence != 1.0 {
		t.Errorf("Expected exact hit with confidence 1.0, got %+v", result)
	}
	if result.Suggestion != "" {
		t.Errorf("Exact hits carry no suggestion, got %q", result.Suggestion)
	}
}

func TestLocalIndex_MissIsNotAnError(t *testing.T) {
	idx, err := NewLocalIndex("", nil)
	if err != nil {
		t.Fatalf("NewLocalIndex: %v", err)
	}

	result, err := idx.Verify(context.Background(), model.LegalReference{
		Type: model.InstrumentStatute, Number: "77777", Year: 2024,
	})
	if err != nil {
		t.Fatalf("A miss must not error: %v", err)
	}
	if result.Exists {
		t.Errorf("Expected miss, got %+v", result)
	}
}

func TestLocalIndex_WrongYearSuggestion(t *testing.T) {
	idx, err := NewLocalIndex("", nil)
	if err != nil {
		t.Fatalf("NewLocalIndex: %v", err)
	}

	result, err := idx.Verify(context.Background(), model.LegalReference{
		Type: model.InstrumentStatute, Number: "14133", Year: 2020,
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if result.Exists {
		t.Error("Expected miss for wrong year")
	}
	if !strings.Contains(result.Suggestion, "statute 14133/2021") {
		t.Errorf("Expected year correction suggestion, got %q", result.Suggestion)
	}
}

func TestLocalIndex_CloseNumberSuggestion(t *testing.T) {
	idx, err := NewLocalIndex("", nil)
	if err != nil {
		t.Fatalf("NewLocalIndex: %v", err)
	}

	// One-character edit from the known 14133/2021.
	result, err := idx.Verify(context.Background(), model.LegalReference{
		Type: model.InstrumentStatute, Number: "14134", Year: 2021,
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if result.Exists {
		t.Error("Expected miss for close number")
	}
	if !strings.Contains(result.Suggestion, "14133/2021") {
		t.Errorf("Expected close-number suggestion, got %q", result.Suggestion)
	}
}

func TestLocalIndex_DatasetMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "instruments.yaml")
	data := `instruments:
  - type: statute
    number: "9.784"
    year: 1999
    title: Administrative Procedure Law
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	idx, err := NewLocalIndex(path, nil)
	if err != nil {
		t.Fatalf("NewLocalIndex: %v", err)
	}

	// Dataset numbers are normalized to digits only.
	result, err := idx.Verify(context.Background(), model.LegalReference{
		Type: model.InstrumentStatute, Number: "9784", Year: 1999,
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.Exists {
		t.Errorf("Expected dataset instrument to verify, got %+v", result)
	}

	// Built-ins survive the merge.
	result, err = idx.Verify(context.Background(), model.LegalReference{
		Type: model.InstrumentDecree, Number: "10024", Year: 2019,
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.Exists {
		t.Error("Expected built-in instrument to remain after dataset merge")
	}
}

func TestLocalIndex_BadDatasetPath(t *testing.T) {
	if _, err := NewLocalIndex("/nonexistent/instruments.yaml", nil); err == nil {
		t.Error("Expected error for unreadable dataset path")
	}
}

func TestCloseNumbers(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"14133", "14133", true},
		{"14133", "14134", true},  // one edit
		{"14133", "1413", true},   // prefix, one short
		{"14133", "141", false},   // prefix, two short
		{"14133", "99999", false}, // every digit differs
		{"306", "310", false},     // two edits
	}

	for _, tt := range tests {
		if got := closeNumbers(tt.a, tt.b); got != tt.expected {
			t.Errorf("closeNumbers(%q, %q): expected %v, got %v", tt.a, tt.b, tt.expected, got)
		}
	}
}
