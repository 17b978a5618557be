package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/rpontes/veridraft/internal/cache"
	"github.com/rpontes/veridraft/internal/model"
	"github.com/rpontes/veridraft/internal/util"
	"github.com/rpontes/veridraft/internal/worker"
)

const factCheckMaxRetries = 3

// factCheckSleep is the backoff sleep between retries (injectable for tests)
var factCheckSleep = time.Sleep

// HTTPFactChecker queries an external normative search endpoint as the
// fallback hop of the verification chain. Responses are cached and calls
// are rate limited per host; transient failures are retried here, never in
// the engine.
type HTTPFactChecker struct {
	client  *http.Client
	baseURL string
	ua      string
	limiter *worker.Limiter
	store   cache.Store // Optional
	ttl     time.Duration
	logger  *zap.Logger
}

// NewHTTPFactChecker creates the fallback client
func NewHTTPFactChecker(cfg model.FactCheckConfig, httpCfg model.HTTPConfig, store cache.Store, ttl time.Duration, logger *zap.Logger) *HTTPFactChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPFactChecker{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		baseURL: cfg.BaseURL,
		ua:      httpCfg.UserAgent,
		limiter: worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		store:   store,
		ttl:     ttl,
		logger:  logger,
	}
}

// FactCheck looks the reference up at the external endpoint. A cached
// verdict short-circuits the network entirely.
func (c *HTTPFactChecker) FactCheck(ctx context.Context, ref model.LegalReference) (model.FactCheckResult, error) {
	key := cache.Key("factcheck", string(ref.Type), ref.Number, strconv.Itoa(ref.Year))

	if c.store != nil {
		if raw, ok := c.store.Get(key); ok {
			var cached model.FactCheckResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	lookupURL := c.lookupURL(ref)
	if err := c.limiter.Wait(ctx, lookupURL); err != nil {
		return model.FactCheckResult{}, fmt.Errorf("rate limit wait: %w", err)
	}

	result, err := c.fetchWithRetry(ctx, lookupURL, ref)
	if err != nil {
		return model.FactCheckResult{}, err
	}

	if c.store != nil {
		if raw, err := json.Marshal(result); err == nil {
			_ = c.store.Set(key, raw, c.ttl)
		}
	}

	return result, nil
}

func (c *HTTPFactChecker) lookupURL(ref model.LegalReference) string {
	q := url.Values{}
	q.Set("type", string(ref.Type))
	q.Set("q", fmt.Sprintf("%s/%d", ref.Number, ref.Year))
	return c.baseURL + "?" + q.Encode()
}

func (c *HTTPFactChecker) fetchWithRetry(ctx context.Context, lookupURL string, ref model.LegalReference) (model.FactCheckResult, error) {
	var lastErr error
	for attempt := 0; attempt < factCheckMaxRetries; attempt++ {
		result, retryable, err := c.fetch(ctx, lookupURL, ref)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		if attempt < factCheckMaxRetries-1 {
			factCheckSleep(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return model.FactCheckResult{}, lastErr
}

func (c *HTTPFactChecker) fetch(ctx context.Context, lookupURL string, ref model.LegalReference) (model.FactCheckResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return model.FactCheckResult{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.client.Do(req)
	if err != nil {
		return model.FactCheckResult{}, true, fmt.Errorf("fact-check request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return model.FactCheckResult{}, true, fmt.Errorf("fact-check endpoint returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return model.FactCheckResult{}, false, fmt.Errorf("fact-check endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return model.FactCheckResult{}, true, fmt.Errorf("read response: %w", err)
	}

	result := c.interpret(string(body), ref)
	c.logger.Debug("fact-check lookup",
		zap.String("reference", fmt.Sprintf("%s %s/%d", ref.Type, ref.Number, ref.Year)),
		zap.Bool("exists", result.Exists))
	return result, false, nil
}

// interpret decides existence from the search result page: the instrument
// is considered found when its number and year co-occur in the visible
// text. The page title becomes the description.
func (c *HTTPFactChecker) interpret(page string, ref model.LegalReference) model.FactCheckResult {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return model.FactCheckResult{}
	}

	text := visibleText(doc)
	normalized := strings.ReplaceAll(strings.ReplaceAll(text, ".", ""), ",", "")

	year := strconv.Itoa(ref.Year)
	if !strings.Contains(normalized, ref.Number) || !strings.Contains(normalized, year) {
		return model.FactCheckResult{}
	}

	return model.FactCheckResult{
		Exists:      true,
		Description: pageTitle(doc),
		Confidence:  0.85,
	}
}

// visibleText walks the DOM collecting text nodes, skipping script and
// style subtrees.
func visibleText(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return b.String()
}

func pageTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return strings.TrimSpace(n.FirstChild.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := pageTitle(c); t != "" {
			return t
		}
	}
	return ""
}
