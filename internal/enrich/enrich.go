package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/rpontes/veridraft/internal/model"
	"github.com/rpontes/veridraft/internal/util"
)

// Result is the market-context lookup outcome. IsFallback marks a degraded
// answer the pipeline should not build on.
type Result struct {
	Summary    string   `json:"summary"`
	Sources    []string `json:"sources"`
	IsFallback bool     `json:"is_fallback"`
}

// Searcher is the optional market-context collaborator. Failures must
// never become fatal upstream: the pipeline proceeds without enrichment.
type Searcher interface {
	Search(ctx context.Context, query string) (*Result, error)
}

// HTTPSearcher queries a market-context endpoint returning JSON
type HTTPSearcher struct {
	client  *http.Client
	baseURL string
	ua      string
	logger  *zap.Logger
}

// NewHTTPSearcher creates a searcher from configuration
func NewHTTPSearcher(cfg model.EnrichConfig, httpCfg model.HTTPConfig, logger *zap.Logger) *HTTPSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	return &HTTPSearcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		baseURL: cfg.BaseURL,
		ua:      httpCfg.UserAgent,
		logger:  logger,
	}
}

// Search fetches a market-context summary for the query
func (s *HTTPSearcher) Search(ctx context.Context, query string) (*Result, error) {
	q := url.Values{}
	q.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.ua)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market context request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market context endpoint returned %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode market context: %w", err)
	}

	s.logger.Debug("market context fetched",
		zap.String("query", query),
		zap.Bool("fallback", result.IsFallback),
		zap.Int("sources", len(result.Sources)))
	return &result, nil
}
