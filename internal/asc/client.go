// Package asc is an App Store Connect REST client. Every call carries a
// bearer token from a TokenProvider and failures are reported as *APIError.
package asc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/asc-iap/internal/metrics"
)

const (
	// DefaultBaseURL is the production App Store Connect API root.
	DefaultBaseURL = "https://api.appstoreconnect.apple.com"

	defaultTimeout = 30 * time.Second
)

// TokenProvider supplies bearer tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Client sends JSON requests to App Store Connect. It never retries.
type Client struct {
	tokens      TokenProvider
	baseURL     string
	timeout     time.Duration
	client      *http.Client
	uploader    *Uploader
	rateLimiter *RateLimiter
	log         *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the per-request timeout for API calls.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUploader overrides the uploader used for screenshot slices.
func WithUploader(u *Uploader) Option {
	return func(c *Client) {
		c.uploader = u
	}
}

// WithRateLimiter makes every request wait on r first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a Client authenticating with tokens.
func NewClient(tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		tokens:  tokens,
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
		client:  &http.Client{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.uploader == nil {
		c.uploader = NewUploader()
	}
	return c
}

// RateLimiter returns the limiter set with WithRateLimiter, or nil.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// Do sends method to path with body encoded as JSON and decodes the response
// into out. A 204 or empty response leaves out untouched. path may be an
// absolute URL, as returned in pagination links.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrHourlyLimitReached) {
				metrics.ASCRateLimitHits.Inc()
			}
			return fmt.Errorf("rate limit: %w", err)
		}
		metrics.ASCHourlyUsage.Set(float64(c.rateLimiter.HourlyCount()))
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reqBody)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	metrics.ASCRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		apiErr := classifyTransportError(err)
		metrics.ASCRequestsTotal.WithLabelValues(method, apiErr.Code).Inc()
		c.log.Debug("asc request failed", "method", method, "path", path, "code", apiErr.Code)
		return apiErr
	}
	defer resp.Body.Close()

	metrics.ASCRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := parseErrorResponse(resp.StatusCode, respBody)
		c.log.Debug("asc request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"code", apiErr.Code,
		)
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 || out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{
			Code:       CodeRequestFailed,
			HTTPStatus: resp.StatusCode,
			Detail:     "parsing response: " + err.Error(),
			Err:        err,
		}
	}
	return nil
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return path
	}
	return c.baseURL + path
}
