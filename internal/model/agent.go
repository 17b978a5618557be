package model

// AgentName identifies a quality agent
type AgentName string

const (
	AgentLegal             AgentName = "legal_compliance"
	AgentArgumentation     AgentName = "argumentation"
	AgentReadability       AgentName = "readability"
	AgentSimplification    AgentName = "simplification"
	AgentAntiHallucination AgentName = "anti_hallucination"
)

// AgentResult is the tagged union of the concrete per-agent result shapes,
// discriminated by Agent(). All scores are 0-100. Agents are stateless and
// produce a fresh result per call.
type AgentResult interface {
	Agent() AgentName
	ScoreValue() float64
}

// LegalResult is the Legal Compliance agent output
type LegalResult struct {
	Score       float64  `json:"score"`
	Compliant   bool     `json:"compliant"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

func (r LegalResult) Agent() AgentName    { return AgentLegal }
func (r LegalResult) ScoreValue() float64 { return r.Score }

// ArgumentationResult is the Argumentation Completeness agent output.
// Score is always a multiple of 25 (four binary elements).
type ArgumentationResult struct {
	Score           float64  `json:"score"`
	Complete        bool     `json:"complete"`
	MissingElements []string `json:"missing_elements"`
	Suggestions     []string `json:"suggestions"`
}

func (r ArgumentationResult) Agent() AgentName    { return AgentArgumentation }
func (r ArgumentationResult) ScoreValue() float64 { return r.Score }

// ReadabilityResult is the Readability agent output
type ReadabilityResult struct {
	Score           float64  `json:"score"`
	Readable        bool     `json:"readable"`
	AvgSentenceLen  float64  `json:"avg_sentence_len"` // Words per sentence
	AvgWordLen      float64  `json:"avg_word_len"`     // Characters per word
	Issues          []string `json:"issues"`
	Suggestions     []string `json:"suggestions"`
}

func (r ReadabilityResult) Agent() AgentName    { return AgentReadability }
func (r ReadabilityResult) ScoreValue() float64 { return r.Score }

// SimplificationResult is the Language Simplification agent output
type SimplificationResult struct {
	Score          float64  `json:"score"`
	ComplexPhrases []string `json:"complex_phrases"`
	Redundancies   []string `json:"redundancies"`
	Suggestions    []string `json:"suggestions"`
}

func (r SimplificationResult) Agent() AgentName    { return AgentSimplification }
func (r SimplificationResult) ScoreValue() float64 { return r.Score }
