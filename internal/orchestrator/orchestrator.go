package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rpontes/veridraft/internal/agents"
	"github.com/rpontes/veridraft/internal/enrich"
	"github.com/rpontes/veridraft/internal/llm"
	"github.com/rpontes/veridraft/internal/model"
	"github.com/rpontes/veridraft/internal/refcheck"
)

// Disclaimer appended to every generated section and returned separately
const Disclaimer = "This content was generated with AI assistance and must be reviewed by the responsible official before publication."

// Score below which an agent contributes its issues and suggestions to the
// warning list, and below which the simplification rewrite is applied.
const agentWarnBar = 70

// Redactor is the PII-minimization collaborator: best effort, never fails
// the pipeline.
type Redactor interface {
	Redact(text string) (redacted string, findings []string)
}

// Deps are the orchestrator's collaborators, injected explicitly
type Deps struct {
	Generator llm.Generator
	Redactor  Redactor        // Optional
	Enricher  enrich.Searcher // Optional
	Engine    *refcheck.Engine
	Logger    *zap.Logger
}

// Orchestrator is the top-level generation pipeline: sanitize, build
// prompts, generate, post-process, validate concurrently, aggregate.
type Orchestrator struct {
	gen      llm.Generator
	redactor Redactor
	enricher enrich.Searcher
	engine   *refcheck.Engine
	logger   *zap.Logger

	legal    *agents.LegalAgent
	argument *agents.ArgumentationAgent
	read     *agents.ReadabilityAgent
	simplify *agents.SimplificationAgent
}

// New creates the pipeline. Generator and Engine are required; Redactor
// and Enricher degrade gracefully when absent.
func New(deps Deps) (*Orchestrator, error) {
	if deps.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("anti-hallucination engine is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		gen:      deps.Generator,
		redactor: deps.Redactor,
		enricher: deps.Enricher,
		engine:   deps.Engine,
		logger:   logger,
		legal:    agents.NewLegalAgent(),
		argument: agents.NewArgumentationAgent(),
		read:     agents.NewReadabilityAgent(),
		simplify: agents.NewSimplificationAgent(),
	}, nil
}

// GenerateSection runs the full pipeline for one request. Generation
// failure is fatal and propagates unchanged; every other failure degrades
// into warnings.
func (o *Orchestrator) GenerateSection(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	start := time.Now()
	warnings := []string{}
	agentsInvoked := []string{}
	enrichmentDegraded := false

	// Input sanitation: strip injection attempts, record, continue.
	sanitized, sanWarnings := sanitizeInput(req.UserText)
	warnings = append(warnings, sanWarnings...)

	// Best-effort market context. Never fatal; exactly one warning on
	// degradation.
	marketContext := ""
	if o.enricher != nil {
		res, err := o.enricher.Search(ctx, enrichmentQuery(req))
		switch {
		case err != nil:
			o.logger.Warn("market context lookup failed", zap.Error(err))
			enrichmentDegraded = true
			warnings = append(warnings, "Market context enrichment unavailable; section generated without market research")
		case res.IsFallback:
			enrichmentDegraded = true
			warnings = append(warnings, "Market context enrichment unavailable; section generated without market research")
		default:
			marketContext = res.Summary
		}
	}

	systemPrompt := buildSystemPrompt(req.SectionID)
	userPrompt := buildUserPrompt(req, sanitized, marketContext)

	// PII minimization before anything leaves the process. One warning
	// regardless of finding count.
	if o.redactor != nil {
		redacted, findings := o.redactor.Redact(userPrompt)
		userPrompt = redacted
		if len(findings) > 0 {
			warnings = append(warnings, fmt.Sprintf("Personal data was redacted from the prompt (%d finding(s))", len(findings)))
		}
	}

	out, err := o.gen.Generate(ctx, systemPrompt, userPrompt, temperatureFor(req.SectionID), generationMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generate section %q: %w", req.SectionID, err)
	}

	// Post-processing: the only point where generated content is mutated.
	content := out.Content
	simpResult := o.simplify.Check(content)
	agentsInvoked = append(agentsInvoked, string(model.AgentSimplification))
	if simpResult.Score < agentWarnBar {
		content = o.simplify.Simplify(content)
		warnings = append(warnings, "Text was automatically simplified to improve readability")
	}

	// Validation fan-out: all agents run concurrently, full join before
	// aggregation.
	runArgumentation := argumentativeSections[req.SectionID]

	var (
		legalResult model.LegalResult
		argResult   model.ArgumentationResult
		readResult  model.ReadabilityResult
		checkResult model.CheckResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		legalResult = o.legal.Check(content)
		return nil
	})
	g.Go(func() error {
		readResult = o.read.Check(content)
		return nil
	})
	g.Go(func() error {
		checkResult = o.engine.Check(gctx, content)
		return nil
	})
	if runArgumentation {
		g.Go(func() error {
			argResult = o.argument.Check(content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validate section %q: %w", req.SectionID, err)
	}

	validations := map[model.AgentName]model.AgentResult{
		model.AgentSimplification:    simpResult,
		model.AgentLegal:             legalResult,
		model.AgentReadability:       readResult,
		model.AgentAntiHallucination: checkResult,
	}
	agentsInvoked = append(agentsInvoked, string(model.AgentLegal))
	if runArgumentation {
		validations[model.AgentArgumentation] = argResult
		agentsInvoked = append(agentsInvoked, string(model.AgentArgumentation))
	}
	agentsInvoked = append(agentsInvoked, string(model.AgentReadability), string(model.AgentAntiHallucination))

	warnings = append(warnings, collectAgentWarnings(validations)...)

	result := &model.GenerationResult{
		Content: content + "\n\n" + Disclaimer,
		Meta: model.GenerationMeta{
			TokenCount:    out.TokenCount,
			Model:         out.Model,
			Elapsed:       time.Since(start),
			AgentsInvoked: agentsInvoked,
		},
		Validations:        validations,
		Warnings:           dedupeStrings(warnings),
		Disclaimer:         Disclaimer,
		EnrichmentDegraded: enrichmentDegraded,
	}

	o.logger.Info("section generated",
		zap.String("section", req.SectionID),
		zap.Int("tokens", out.TokenCount),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("elapsed", result.Meta.Elapsed))

	return result, nil
}

// collectAgentWarnings gathers issues and suggestions from every agent
// scoring below its bar. Agent order is fixed so the warning list is
// deterministic.
func collectAgentWarnings(validations map[model.AgentName]model.AgentResult) []string {
	order := []model.AgentName{
		model.AgentLegal,
		model.AgentArgumentation,
		model.AgentReadability,
		model.AgentSimplification,
		model.AgentAntiHallucination,
	}

	var warnings []string
	for _, name := range order {
		res, ok := validations[name]
		if !ok || res.ScoreValue() >= agentWarnBar {
			continue
		}
		switch r := res.(type) {
		case model.LegalResult:
			warnings = append(warnings, r.Issues...)
			warnings = append(warnings, r.Suggestions...)
		case model.ArgumentationResult:
			warnings = append(warnings, r.Suggestions...)
		case model.ReadabilityResult:
			warnings = append(warnings, r.Issues...)
			warnings = append(warnings, r.Suggestions...)
		case model.SimplificationResult:
			warnings = append(warnings, r.Suggestions...)
		case model.CheckResult:
			warnings = append(warnings, r.Suggestions...)
		}
	}
	return warnings
}

func enrichmentQuery(req model.GenerationRequest) string {
	if req.Document != nil && req.Document.Subject != "" {
		return req.Document.Subject
	}
	return req.Title
}

func dedupeStrings(items []string) []string {
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

// sortedKeys is used by prompt assembly to keep Extra context ordering
// stable across calls.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
