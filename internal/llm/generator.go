package llm

import "context"

// Output is what the generation service returns for one call
type Output struct {
	Content    string
	TokenCount int
	Model      string
}

// Generator is the generation collaborator contract. A failed call is
// fatal to the pipeline; retries, if any, belong to the implementation.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (*Output, error)
}
