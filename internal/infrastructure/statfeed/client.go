package statfeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/primev/fantasy-volleyball/internal/domain/stats"
	"github.com/primev/fantasy-volleyball/internal/platform/logging"
	"github.com/primev/fantasy-volleyball/internal/platform/resilience"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 2
)

var errStatfeedTransient = crerr.New("statfeed transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls per-set stat snapshots from the external volleyball feed.
// The provider serves absolute counts per (player, set), which matches
// the replace semantics of ingestion exactly.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchMatchStats returns the full per-set stat snapshot for one match.
func (c *Client) FetchMatchStats(ctx context.Context, matchID string) ([]stats.Update, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("match id is required")
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("statfeed base url is not configured")
	}

	var envelope matchStatsEnvelope
	url := fmt.Sprintf("%s/v1/matches/%s/set-stats", c.baseURL, matchID)
	if err := c.getJSON(ctx, url, &envelope); err != nil {
		return nil, fmt.Errorf("fetch set stats match=%s: %w", matchID, err)
	}

	updates := make([]stats.Update, 0, len(envelope.Lines))
	for _, line := range envelope.Lines {
		updates = append(updates, stats.Update{
			MatchID:  matchID,
			PlayerID: line.PlayerID,
			Line: stats.SetStat{
				Set:        line.Set,
				IsStarter:  line.Starter,
				Result:     setResultFromProvider(line.SetOutcome),
				Attacks:    line.Attacks,
				Receptions: line.Receptions,
				Aces:       line.ServiceAces,
				Blocks:     line.KillBlocks,
			},
		})
	}
	return updates, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return fmt.Errorf("statfeed circuit open: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := c.doOnce(url, out)
		if err == nil {
			if c.circuitEnabled {
				c.breaker.RecordSuccess()
			}
			return nil
		}
		lastErr = err
		if !stderrors.Is(err, errStatfeedTransient) {
			break
		}
		c.logger.WarnContext(ctx, "statfeed request retry", "url", url, "attempt", attempt+1, "error", err)
	}

	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
	return lastErr
}

func (c *Client) doOnce(url string, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "statfeed request %s", url), errStatfeedTransient)
	}

	status := resp.StatusCode()
	if status >= 500 || status == fasthttp.StatusTooManyRequests {
		return crerr.Mark(crerr.Newf("statfeed status %d for %s", status, url), errStatfeedTransient)
	}
	if status != fasthttp.StatusOK {
		return crerr.Newf("statfeed status %d for %s", status, url)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := resp.BodyWriteTo(buf); err != nil {
		return crerr.Wrap(err, "read statfeed body")
	}

	if err := sonic.Unmarshal(buf.B, out); err != nil {
		return crerr.Wrap(err, "decode statfeed body")
	}
	return nil
}

func setResultFromProvider(outcome string) stats.SetResult {
	switch strings.ToLower(strings.TrimSpace(outcome)) {
	case "won", "win":
		return stats.SetResultWin
	case "lost", "loss":
		return stats.SetResultLoss
	default:
		return stats.SetResultNone
	}
}

type matchStatsEnvelope struct {
	MatchID string             `json:"match_id"`
	Lines   []providerStatLine `json:"lines"`
}

type providerStatLine struct {
	PlayerID    string `json:"player_id"`
	Set         int    `json:"set"`
	Starter     bool   `json:"starter"`
	SetOutcome  string `json:"set_outcome"`
	Attacks     int    `json:"attacks"`
	Receptions  int    `json:"receptions"`
	ServiceAces int    `json:"service_aces"`
	KillBlocks  int    `json:"kill_blocks"`
}
