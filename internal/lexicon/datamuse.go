package lexicon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/gokatarajesh/jumble/internal/metrics"
)

// DatamuseConfig configures the Datamuse client.
type DatamuseConfig struct {
	BaseURL       string
	MaxAttempts   int
	BackoffBase   time.Duration
	BackoffJitter time.Duration
}

// DatamuseClient queries the Datamuse /words endpoint (no API key).
type DatamuseClient struct {
	baseURL    string
	httpClient *http.Client
	backoff    func() retry.Backoff
	logger     zerolog.Logger
}

var _ Source = (*DatamuseClient)(nil)

func NewDatamuseClient(cfg DatamuseConfig, httpClient *http.Client, logger zerolog.Logger) *DatamuseClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.datamuse.com"
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	if cfg.BackoffJitter <= 0 {
		cfg.BackoffJitter = cfg.BackoffBase
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &DatamuseClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		backoff: func() retry.Backoff {
			b := retry.WithJitter(cfg.BackoffJitter, retry.NewConstant(cfg.BackoffBase))
			return retry.WithMaxRetries(uint64(cfg.MaxAttempts-1), b)
		},
		logger: logger.With().Str("component", "datamuse").Logger(),
	}
}

// transientError marks failures worth another attempt (rate limits, 5xx, transport).
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Lookup fetches words spelled like pattern, with definitions.
func (c *DatamuseClient) Lookup(ctx context.Context, pattern string, max int) ([]Entry, error) {
	var (
		entries []Entry
		lastErr error
		attempt int
	)
	err := retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.LexiconRetries.Inc()
		}
		var err error
		entries, err = c.fetch(ctx, pattern, max)
		lastErr = err
		var te *transientError
		if errors.As(err, &te) {
			c.logger.Debug().Err(err).Str("pattern", pattern).Int("attempt", attempt).Msg("transient lookup failure")
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil {
		return entries, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	var te *transientError
	if errors.As(lastErr, &te) {
		return nil, fmt.Errorf("%w: pattern %q after %d attempts: %v", ErrLookupUnavailable, pattern, attempt, te.err)
	}
	return nil, fmt.Errorf("datamuse lookup %q: %w", pattern, err)
}

func (c *DatamuseClient) fetch(ctx context.Context, pattern string, max int) ([]Entry, error) {
	values := url.Values{}
	values.Set("sp", pattern)
	values.Set("md", "d")
	if max > 0 {
		values.Set("max", strconv.Itoa(max))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/words?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &transientError{err: fmt.Errorf("datamuse status %d", resp.StatusCode)}
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("datamuse non-200: %d", resp.StatusCode)
	}

	var payload []Entry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode datamuse payload: %w", err)
	}
	return payload, nil
}
