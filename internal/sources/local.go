package sources

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rpontes/veridraft/internal/model"
)

// indexEntry is one known normative instrument
type indexEntry struct {
	Type   model.InstrumentType `yaml:"type"`
	Number string               `yaml:"number"`
	Year   int                  `yaml:"year"`
	Title  string               `yaml:"title,omitempty"`
}

type dataset struct {
	Instruments []indexEntry `yaml:"instruments"`
}

// builtinInstruments covers the core procurement framework so the index is
// useful out of the box. A YAML dataset merges over these.
var builtinInstruments = []indexEntry{
	{model.InstrumentStatute, "14133", 2021, "Public Procurement and Contracts Law"},
	{model.InstrumentStatute, "8666", 1993, "Former Procurement Law"},
	{model.InstrumentStatute, "10520", 2002, "Reverse Auction Law"},
	{model.InstrumentStatute, "12462", 2011, "Differentiated Procurement Regime"},
	{model.InstrumentStatute, "13303", 2016, "State-Owned Enterprises Law"},
	{model.InstrumentStatute, "8429", 1992, "Administrative Improbity Law"},
	{model.InstrumentStatute, "13709", 2018, "General Data Protection Law"},
	{model.InstrumentDecree, "10024", 2019, "Electronic Reverse Auction Regulation"},
	{model.InstrumentDecree, "11462", 2023, "Price Registration Regulation"},
	{model.InstrumentDecree, "7892", 2013, "Former Price Registration Regulation"},
	{model.InstrumentNormativeInstruction, "65", 2021, "Price Research Guidelines"},
	{model.InstrumentNormativeInstruction, "5", 2017, "Outsourced Services Contracting"},
	{model.InstrumentNormativeInstruction, "40", 2020, "Preliminary Technical Studies"},
	{model.InstrumentOrdinance, "306", 2001, "Common Goods and Services Schedules"},
	{model.InstrumentResolution, "169", 2013, "Judiciary Contracting Guidelines"},
	{model.InstrumentProvisionalMeasure, "961", 2020, "Pandemic Procurement Measures"},
}

// LocalIndex is the authoritative in-process instrument index. Lookups are
// map hits; "not found" is a result, never an error.
type LocalIndex struct {
	byKey        map[string]indexEntry
	byTypeNumber map[string][]indexEntry
	byTypeYear   map[string][]indexEntry
	logger       *zap.Logger
}

// NewLocalIndex builds the index from the built-in dataset, merging an
// optional YAML dataset file over it.
func NewLocalIndex(datasetPath string, logger *zap.Logger) (*LocalIndex, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	idx := &LocalIndex{
		byKey:        make(map[string]indexEntry),
		byTypeNumber: make(map[string][]indexEntry),
		byTypeYear:   make(map[string][]indexEntry),
		logger:       logger,
	}

	for _, e := range builtinInstruments {
		idx.add(e)
	}

	if datasetPath != "" {
		raw, err := os.ReadFile(datasetPath)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		var ds dataset
		if err := yaml.Unmarshal(raw, &ds); err != nil {
			return nil, fmt.Errorf("parse dataset: %w", err)
		}
		for _, e := range ds.Instruments {
			e.Number = digitsOnly(e.Number)
			idx.add(e)
		}
		logger.Info("instrument dataset loaded",
			zap.String("path", datasetPath),
			zap.Int("instruments", len(ds.Instruments)))
	}

	return idx, nil
}

func (idx *LocalIndex) add(e indexEntry) {
	idx.byKey[entryKey(e.Type, e.Number, e.Year)] = e
	tn := fmt.Sprintf("%s:%s", e.Type, e.Number)
	idx.byTypeNumber[tn] = append(idx.byTypeNumber[tn], e)
	ty := fmt.Sprintf("%s:%d", e.Type, e.Year)
	idx.byTypeYear[ty] = append(idx.byTypeYear[ty], e)
}

// Verify reports whether the referenced instrument is known. On a miss it
// attempts a near-match correction: same type and number with another
// year, or same type and year with a close number.
func (idx *LocalIndex) Verify(_ context.Context, ref model.LegalReference) (model.IndexResult, error) {
	if e, ok := idx.byKey[entryKey(ref.Type, ref.Number, ref.Year)]; ok {
		return model.IndexResult{Exists: true, Confidence: 1.0, Suggestion: suggestionFor(e)}, nil
	}

	if candidates, ok := idx.byTypeNumber[fmt.Sprintf("%s:%s", ref.Type, ref.Number)]; ok && len(candidates) > 0 {
		return model.IndexResult{Suggestion: didYouMean(candidates[0])}, nil
	}

	for _, e := range idx.byTypeYear[fmt.Sprintf("%s:%d", ref.Type, ref.Year)] {
		if closeNumbers(e.Number, ref.Number) {
			return model.IndexResult{Suggestion: didYouMean(e)}, nil
		}
	}

	return model.IndexResult{}, nil
}

func entryKey(t model.InstrumentType, number string, year int) string {
	return fmt.Sprintf("%s:%s:%d", t, number, year)
}

// suggestionFor is empty for exact hits; kept as a seam in case exact hits
// ever carry advisory notes from the dataset.
func suggestionFor(_ indexEntry) string { return "" }

func didYouMean(e indexEntry) string {
	if e.Title != "" {
		return fmt.Sprintf("Did you mean %s %s/%d (%s)?", e.Type, e.Number, e.Year, e.Title)
	}
	return fmt.Sprintf("Did you mean %s %s/%d?", e.Type, e.Number, e.Year)
}

// closeNumbers accepts a one-character edit or a prefix slip, enough to
// catch transposed or truncated instrument numbers.
func closeNumbers(a, b string) bool {
	if a == b {
		return true
	}
	if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) {
		return len(a)-len(b) <= 1 && len(b)-len(a) <= 1
	}
	if len(a) != len(b) {
		return false
	}
	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff <= 1
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
