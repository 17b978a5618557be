package refcheck

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/rpontes/veridraft/internal/model"
)

// LocalIndex is the authoritative instrument index consulted first for
// every reference. It must not error for "not found" — only for
// transport/storage failure.
type LocalIndex interface {
	Verify(ctx context.Context, ref model.LegalReference) (model.IndexResult, error)
}

// FactChecker is the external fallback lookup, invoked only when the local
// index reports non-existence.
type FactChecker interface {
	FactCheck(ctx context.Context, ref model.LegalReference) (model.FactCheckResult, error)
}

// Verifier verifies extracted references concurrently against the local
// index with an external fallback chain. A single reference's lookup
// failure never aborts the batch.
type Verifier struct {
	index      LocalIndex
	fallback   FactChecker // Optional; nil disables the fallback hop
	maxWorkers int
	logger     *zap.Logger
}

// NewVerifier creates a verifier. maxWorkers bounds concurrent lookups.
func NewVerifier(index LocalIndex, fallback FactChecker, maxWorkers int, logger *zap.Logger) *Verifier {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		index:      index,
		fallback:   fallback,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// VerifyAll verifies every reference concurrently and joins before
// returning. Result order matches input order.
func (v *Verifier) VerifyAll(ctx context.Context, refs []model.LegalReference) []model.ReferenceVerification {
	if len(refs) == 0 {
		return []model.ReferenceVerification{}
	}

	results := make([]model.ReferenceVerification, len(refs))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.maxWorkers)

	for i, ref := range refs {
		wg.Add(1)
		go func(idx int, r model.LegalReference) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = unverified(r, "")
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.verifySingle(ctx, r)
		}(i, ref)
	}

	wg.Wait()
	return results
}

// verifySingle runs the local-then-fallback chain for one reference.
// The fallback is only consulted on a local miss, so latency per reference
// is at most two hops. Suggestion provenance is always local: a fallback
// hit never overwrites a near-match correction from the index.
func (v *Verifier) verifySingle(ctx context.Context, ref model.LegalReference) model.ReferenceVerification {
	local, err := v.index.Verify(ctx, ref)
	if err != nil {
		v.logger.Warn("local index lookup failed",
			zap.String("reference", Label(ref)),
			zap.Error(err))
		return unverified(ref, "")
	}

	if local.Exists {
		return model.ReferenceVerification{
			Reference:  Label(ref),
			Exists:     true,
			Confidence: local.Confidence,
			Suggestion: local.Suggestion,
			Source:     model.SourceLocalIndex,
		}
	}

	if v.fallback != nil {
		fc, err := v.fallback.FactCheck(ctx, ref)
		if err != nil {
			v.logger.Warn("fallback fact-check failed",
				zap.String("reference", Label(ref)),
				zap.Error(err))
			return unverified(ref, local.Suggestion)
		}
		if fc.Exists {
			return model.ReferenceVerification{
				Reference:  Label(ref),
				Exists:     true,
				Confidence: fc.Confidence,
				Suggestion: local.Suggestion,
				Source:     model.SourceExternalFallback,
			}
		}
	}

	return unverified(ref, local.Suggestion)
}

func unverified(ref model.LegalReference, suggestion string) model.ReferenceVerification {
	return model.ReferenceVerification{
		Reference:  Label(ref),
		Exists:     false,
		Confidence: 0,
		Suggestion: suggestion,
		Source:     model.SourceLocalIndex,
	}
}
