package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rpontes/veridraft/internal/model"
)

type testJob struct {
	id  int
	err error
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) Err() error { return r.err }

func (j *testJob) Run(_ context.Context) Result {
	return &testResult{id: j.id, err: j.err}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	for i := 0; i < 20; i++ {
		pool.Submit(&testJob{id: i})
	}
	results := pool.Drain()

	if len(results) != 20 {
		t.Fatalf("Expected 20 results, got %d", len(results))
	}

	ids := make([]int, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.(*testResult).id)
	}
	sort.Ints(ids)
	for i, id := range ids {
		if id != i {
			t.Fatalf("Missing job result: expected id %d, got %d", i, id)
		}
	}
}

func TestPool_FailuresDoNotAbort(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	pool.Submit(&testJob{id: 0, err: errors.New("boom")})
	pool.Submit(&testJob{id: 1})
	results := pool.Drain()

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	failed := 0
	for _, r := range results {
		if r.Err() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("Expected exactly one failure, got %d", failed)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(context.Background(), 0)
	pool.Start()

	pool.Submit(&testJob{id: 1})
	if results := pool.Drain(); len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

type fixedChecker struct{}

func (fixedChecker) CheckEnhanced(_ context.Context, text string) model.EnhancedCheckResult {
	score := 100.0
	if text == "bad\n" {
		score = 10
	}
	return model.EnhancedCheckResult{OverallScore: score, OverallVerified: score >= 70}
}

func TestCheckBatch(t *testing.T) {
	dir := t.TempDir()

	paths := make([]string, 0, 3)
	for i, content := range []string{"good\n", "bad\n", "good\n"} {
		p := filepath.Join(dir, fmt.Sprintf("section-%d.txt", i))
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join(dir, "missing.txt"))

	outcomes := CheckBatch(context.Background(), fixedChecker{}, paths, 2)

	if len(outcomes) != 4 {
		t.Fatalf("Expected 4 outcomes, got %d", len(outcomes))
	}

	byPath := map[string]*CheckOutcome{}
	for _, o := range outcomes {
		byPath[o.Path] = o
	}

	if o := byPath[paths[3]]; o == nil || o.Error == nil {
		t.Error("Expected error outcome for the missing file")
	}
	if o := byPath[paths[1]]; o == nil || o.Error != nil || o.Result.OverallVerified {
		t.Errorf("Expected unverified result for the bad file, got %+v", byPath[paths[1]])
	}
	if o := byPath[paths[0]]; o == nil || o.Error != nil || !o.Result.OverallVerified {
		t.Errorf("Expected verified result for a good file, got %+v", byPath[paths[0]])
	}
}

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow("https://example.org/api") {
		t.Error("Expected first call within burst to be allowed")
	}
	if !l.Allow("https://example.org/api") {
		t.Error("Expected second call within burst to be allowed")
	}
	if l.Allow("https://example.org/api") {
		t.Error("Expected third immediate call to be throttled")
	}

	// Hosts are limited independently.
	if !l.Allow("https://other.example.org/api") {
		t.Error("Expected a different host to have its own budget")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)

	// Exhaust the burst.
	if err := l.Wait(context.Background(), "https://slow.example.org"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx, "https://slow.example.org"); err == nil {
		t.Error("Expected context cancellation to abort the wait")
	}
}
