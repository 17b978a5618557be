package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpontes/veridraft/internal/worker"
)

var (
	batchWorkers int
	batchTimeout time.Duration
	batchJSONOut bool
	batchOffline bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Check many section files concurrently",
	Long: `Batch reads a list of file paths (one per line, # comments allowed)
and runs the categorized anti-hallucination check on each concurrently.
A failing file is reported and never aborts the batch.

Example:
  veridraft batch sections.txt --workers 8 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "concurrent checks")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
	batchCmd.Flags().BoolVar(&batchJSONOut, "json", false, "print results as JSON lines")
	batchCmd.Flags().BoolVar(&batchOffline, "offline", false, "skip the external fact-check fallback")
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := readPathList(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no paths in %s", args[0])
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig()
	engine, err := buildEngine(cfg, logger, batchOffline)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	outcomes := worker.CheckBatch(ctx, engine, paths, batchWorkers)

	failed := 0
	for _, o := range outcomes {
		if o.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", o.Path, o.Error)
			continue
		}
		if batchJSONOut {
			line, err := json.Marshal(map[string]any{"path": o.Path, "result": o.Result})
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			fmt.Println(string(line))
			continue
		}
		mark := "✓"
		if !o.Result.OverallVerified {
			mark = "!"
		}
		fmt.Printf("%s %-50s %.1f\n", mark, o.Path, o.Result.OverallScore)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(outcomes))
	}
	return nil
}

func readPathList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths, scanner.Err()
}
