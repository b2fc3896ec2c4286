// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/lapor/internal/config"
	"github.com/tomtom215/lapor/internal/logging"
	"github.com/tomtom215/lapor/internal/metrics"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 8 << 20 // 8MB

// maxErrorBodySize limits the body excerpt included in decode failure messages.
const maxErrorBodySize = 512

// TokenSource supplies the bearer token. It is read right before each
// authenticated request is built, so a new token applies to the next call.
type TokenSource interface {
	AccessToken() string
}

// Client talks to the story backend. It holds no session state of its own.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	breaker    *breaker
	now        func() time.Time
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout takes precedence over
// api.timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock sets the time source used for createdAt defaults.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a client for cfg. tokens may be nil for unauthenticated use.
func NewClient(cfg *config.APIConfig, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		now:        time.Now,
		logger:     logging.WithComponent("api"),
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if cfg.CircuitBreaker.Enabled {
		c.breaker = newBreaker("story-api", &cfg.CircuitBreaker)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one HTTP call.
type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
	auth        bool
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

// ok reports whether the status is in the 2xx class.
func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// jsonRequest builds a request with a JSON-encoded body. A nil payload sends no body.
func jsonRequest(op, method, path string, payload any, auth bool) (request, error) {
	req := request{op: op, method: method, path: path, auth: auth}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("encode %s request: %w", op, err)
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// do executes req through the limiter and breaker and reads the whole body.
// Only transport failures return an error; any HTTP status is a response.
func (c *Client) do(ctx context.Context, req request) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	call := func() (*response, error) {
		return c.send(ctx, req)
	}
	if c.breaker == nil {
		return call()
	}
	return c.breaker.execute(call)
}

// send performs a single HTTP round trip.
func (c *Client) send(ctx context.Context, req request) (*response, error) {
	body := req.body
	if body == nil {
		body = http.NoBody
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Correlation-ID", id)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}
	if req.auth {
		c.authorize(ctx, httpReq)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &response{status: resp.StatusCode, body: data}, nil
}

// authorize attaches the current bearer token, if any.
func (c *Client) authorize(ctx context.Context, httpReq *http.Request) {
	token := ""
	if c.tokens != nil {
		token = c.tokens.AccessToken()
	}
	if token == "" {
		log := logging.CtxWith(ctx).Str("component", "api").Logger()
		log.Debug().Str("path", httpReq.URL.Path).Msg("No access token for authenticated request")
		return
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
}

// decodeBody unmarshals a response body, describing a non-JSON body in the error.
func decodeBody(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON response (%s): %w", bodyExcerpt(body), err)
	}
	return nil
}

// bodyExcerpt returns the start of body for error messages.
func bodyExcerpt(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "empty body"
	}
	if len(trimmed) > maxErrorBodySize {
		return string(trimmed[:maxErrorBodySize]) + "... (truncated)"
	}
	return string(trimmed)
}

// begin starts an operation: it tags ctx with a correlation id and a fresh
// request id, and returns a finisher that records the outcome.
func (c *Client) begin(ctx context.Context, op string) (context.Context, zerolog.Logger, func(outcome string)) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	ctx = logging.ContextWithRequestID(ctx, logging.GenerateRequestID())
	log := logging.CtxWith(ctx).Str("component", "api").Str("operation", op).Logger()
	start := time.Now()
	return ctx, log, func(outcome string) {
		elapsed := time.Since(start)
		metrics.RecordAPIRequest(op, outcome, elapsed)
		log.Debug().Str("outcome", outcome).Dur("duration", elapsed).Msg("API request finished")
	}
}

// transportOutcome classifies an error from do.
func transportOutcome(err error) string {
	if errors.Is(err, ErrCircuitOpen) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}

// outcomeOf maps a boolean result to a metrics outcome.
func outcomeOf(ok bool) string {
	if ok {
		return metrics.OutcomeOK
	}
	return metrics.OutcomeFailed
}
