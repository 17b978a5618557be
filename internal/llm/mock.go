package llm

import "context"

// MockGenerator is a canned generator for tests and offline runs. It
// records the last call so tests can assert on prompt assembly.
type MockGenerator struct {
	Response string
	Err      error

	LastSystem      string
	LastUser        string
	LastTemperature float32
	LastMaxTokens   int
	Calls           int
}

func (m *MockGenerator) Generate(_ context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (*Output, error) {
	m.Calls++
	m.LastSystem = systemPrompt
	m.LastUser = userPrompt
	m.LastTemperature = temperature
	m.LastMaxTokens = maxTokens

	if m.Err != nil {
		return nil, m.Err
	}
	return &Output{
		Content:    m.Response,
		TokenCount: len(m.Response) / 4,
		Model:      "mock",
	}, nil
}
