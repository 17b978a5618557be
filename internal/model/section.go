package model

import "time"

// DocumentContext carries optional document-level framing for generation
type DocumentContext struct {
	Subject      string `json:"subject,omitempty"`      // What is being procured
	Organization string `json:"organization,omitempty"` // Contracting organization
}

// GenerationRequest is the immutable input to the orchestrator pipeline
type GenerationRequest struct {
	SectionID   string            `json:"section_id"` // e.g. "justification", "object", "estimated_value"
	Title       string            `json:"title"`
	UserText    string            `json:"user_text"` // Raw notes/draft from the requester
	Document    *DocumentContext  `json:"document,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"` // Free-form context
}

// GenerationMeta describes how a section was produced
type GenerationMeta struct {
	TokenCount    int           `json:"token_count"`
	Model         string        `json:"model"`
	Elapsed       time.Duration `json:"elapsed"`
	AgentsInvoked []string      `json:"agents_invoked"` // In invocation order
}

// GenerationResult is the complete pipeline output for one request.
// Created once per request and never mutated after return.
type GenerationResult struct {
	Content            string                    `json:"content"` // Final text, disclaimer appended
	Meta               GenerationMeta            `json:"meta"`
	Validations        map[AgentName]AgentResult `json:"validations"`
	Warnings           []string                  `json:"warnings"` // Deduplicated
	Disclaimer         string                    `json:"disclaimer"`
	EnrichmentDegraded bool                      `json:"enrichment_degraded"` // Market-context lookup fell back
}
