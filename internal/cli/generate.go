package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpontes/veridraft/internal/enrich"
	"github.com/rpontes/veridraft/internal/llm"
	"github.com/rpontes/veridraft/internal/model"
	"github.com/rpontes/veridraft/internal/orchestrator"
	"github.com/rpontes/veridraft/internal/redact"
)

var (
	genSection      string
	genTitle        string
	genSubject      string
	genOrganization string
	genTimeout      time.Duration
	genJSONOut      bool
	genMock         bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <notes-file>",
	Short: "Generate a validated section from draft notes",
	Long: `Generate runs the full pipeline: the notes are sanitized against
prompt injection, enriched with legal and market framing, redacted for
personal data, submitted to the generation model, post-processed, and
validated concurrently by all quality agents and the anti-hallucination
engine.

The result always carries a review disclaimer, the per-agent validation
outputs and the aggregated warnings.

Example:
  veridraft generate notes.txt --section justification --title "Justification"
  veridraft generate notes.txt --section estimated_value --title "Estimated Value" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genSection, "section", "justification", "section identifier")
	generateCmd.Flags().StringVar(&genTitle, "title", "", "section title (defaults to the section identifier)")
	generateCmd.Flags().StringVar(&genSubject, "subject", "", "subject of the procurement")
	generateCmd.Flags().StringVar(&genOrganization, "org", "", "contracting organization")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 3*time.Minute, "overall generation timeout")
	generateCmd.Flags().BoolVar(&genJSONOut, "json", false, "print the result as JSON")
	generateCmd.Flags().BoolVar(&genMock, "mock", false, "use the mock generator (no API calls)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	notes, err := readInput(args[0])
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig()

	engine, err := buildEngine(cfg, logger, false)
	if err != nil {
		return err
	}

	var generator llm.Generator
	if genMock {
		generator = &llm.MockGenerator{Response: "Mock section content pursuant to Law 14133/2021."}
	} else {
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		generator, err = llm.NewOpenAIGenerator(cfg.LLM)
		if err != nil {
			return fmt.Errorf("init generator: %w", err)
		}
	}

	var enricher enrich.Searcher
	if cfg.Enrich.Enabled && cfg.Enrich.BaseURL != "" {
		enricher = enrich.NewHTTPSearcher(cfg.Enrich, cfg.HTTP, logger)
	}

	pipeline, err := orchestrator.New(orchestrator.Deps{
		Generator: generator,
		Redactor:  redact.New(),
		Enricher:  enricher,
		Engine:    engine,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	title := genTitle
	if title == "" {
		title = genSection
	}
	req := model.GenerationRequest{
		SectionID: genSection,
		Title:     title,
		UserText:  notes,
	}
	if genSubject != "" || genOrganization != "" {
		req.Document = &model.DocumentContext{Subject: genSubject, Organization: genOrganization}
	}

	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	result, err := pipeline.GenerateSection(ctx, req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if genJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(result.Content)
	if len(result.Warnings) > 0 {
		fmt.Fprintln(os.Stderr, "\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "  - %s\n", w)
		}
	}
	fmt.Fprintf(os.Stderr, "\nModel: %s | Tokens: %d | Elapsed: %v\n",
		result.Meta.Model, result.Meta.TokenCount, result.Meta.Elapsed.Round(time.Millisecond))
	return nil
}
