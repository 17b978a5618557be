package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/rpontes/veridraft/internal/model"
)

// Checker runs the categorized anti-hallucination check on text
type Checker interface {
	CheckEnhanced(ctx context.Context, text string) model.EnhancedCheckResult
}

// CheckJob checks one section file
type CheckJob struct {
	Path    string
	Checker Checker
}

// CheckOutcome pairs a file with its check result
type CheckOutcome struct {
	Path   string
	Result *model.EnhancedCheckResult
	Error  error
}

func (o *CheckOutcome) Err() error { return o.Error }

// Run reads the file and checks it
func (j *CheckJob) Run(ctx context.Context) Result {
	raw, err := os.ReadFile(j.Path)
	if err != nil {
		return &CheckOutcome{Path: j.Path, Error: fmt.Errorf("read %s: %w", j.Path, err)}
	}
	res := j.Checker.CheckEnhanced(ctx, string(raw))
	return &CheckOutcome{Path: j.Path, Result: &res}
}

// CheckBatch checks every file concurrently and returns outcomes in
// completion order. Per-file failures are reported in the outcome, never
// aborting the batch.
func CheckBatch(ctx context.Context, checker Checker, paths []string, workers int) []*CheckOutcome {
	pool := NewPool(ctx, workers)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&CheckJob{Path: path, Checker: checker})
	}

	results := pool.Drain()
	outcomes := make([]*CheckOutcome, 0, len(results))
	for _, r := range results {
		if o, ok := r.(*CheckOutcome); ok {
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}
