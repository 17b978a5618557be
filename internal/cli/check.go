package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpontes/veridraft/internal/cache"
	"github.com/rpontes/veridraft/internal/model"
	"github.com/rpontes/veridraft/internal/refcheck"
	"github.com/rpontes/veridraft/internal/sources"
)

var (
	checkEnhanced bool
	checkOffline  bool
	checkJSONOut  bool
	checkTimeout  time.Duration
	checkDataset  string
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run the anti-hallucination check on a section file",
	Long: `Check extracts normative citations from a section, verifies each
against the local authoritative index (falling back to the external
fact-check endpoint on a miss), applies the heuristic claim checks and
reports a trust score.

Use "-" to read from stdin.

Example:
  veridraft check section.txt
  veridraft check section.txt --enhanced --json
  cat section.txt | veridraft check - --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkEnhanced, "enhanced", false, "use the categorized (50/30/20) scoring")
	checkCmd.Flags().BoolVar(&checkOffline, "offline", false, "skip the external fact-check fallback")
	checkCmd.Flags().BoolVar(&checkJSONOut, "json", false, "print the result as JSON")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&checkDataset, "index", "", "YAML dataset merged over the built-in instrument index")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig()
	if checkDataset != "" {
		cfg.Index.DatasetPath = checkDataset
	}

	engine, err := buildEngine(cfg, logger, checkOffline)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if checkEnhanced {
		result := engine.CheckEnhanced(ctx, text)
		return printCheck(result, func() {
			fmt.Printf("Overall score: %.1f (verified: %v)\n", result.OverallScore, result.OverallVerified)
			fmt.Printf("  legal references:   %.1f (%d checked, %d flagged)\n", result.LegalReferences.Score, result.LegalReferences.Checked, result.LegalReferences.Flagged)
			fmt.Printf("  factual claims:     %.1f (%d checked, %d flagged)\n", result.FactualClaims.Score, result.FactualClaims.Checked, result.FactualClaims.Flagged)
			fmt.Printf("  prohibited phrases: %.1f (%d flagged)\n", result.ProhibitedPhrase.Score, result.ProhibitedPhrase.Flagged)
			for _, r := range result.Recommendations {
				fmt.Printf("  - %s\n", r)
			}
		})
	}

	result := engine.Check(ctx, text)
	return printCheck(result, func() {
		fmt.Printf("Score: %.1f (verified: %v)\n", result.Score, result.Verified)
		fmt.Printf("References: %d extracted\n", len(result.References))
		for _, v := range result.References {
			status := "unverified"
			if v.Exists {
				status = fmt.Sprintf("verified (%.2f, %s)", v.Confidence, v.Source)
			}
			fmt.Printf("  %-40s %s\n", v.Reference, status)
		}
		for _, s := range result.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	})
}

// buildEngine wires the verification chain: local index, optional external
// fallback with layered caching, concurrent verifier, engine.
func buildEngine(cfg *model.Config, logger *zap.Logger, offline bool) (*refcheck.Engine, error) {
	index, err := sources.NewLocalIndex(cfg.Index.DatasetPath, logger)
	if err != nil {
		return nil, fmt.Errorf("build instrument index: %w", err)
	}

	var fallback refcheck.FactChecker
	if !offline && cfg.FactCheck.BaseURL != "" {
		var store cache.Store
		if cfg.Cache.Enabled {
			store = cache.NewLayered(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		}
		fallback = sources.NewHTTPFactChecker(cfg.FactCheck, cfg.HTTP, store, cfg.Cache.TTL, logger)
	}

	verifier := refcheck.NewVerifier(index, fallback, cfg.Concurrency.VerificationWorkers, logger)
	return refcheck.NewEngine(refcheck.NewExtractor(), verifier,
		refcheck.WithThresholdFunc(thresholdFn()),
		refcheck.WithLogger(logger),
	), nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(raw), nil
}

func printCheck(result any, human func()) error {
	if checkJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	human()
	return nil
}
