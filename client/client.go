// Package client fetches launch documents from the launch API and validates
// every response before returning it.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	launchcast "github.com/reoring/launchcast"
	"github.com/reoring/launchcast/config"
	"github.com/reoring/launchcast/metrics"
	"github.com/reoring/launchcast/spacex"
	"github.com/reoring/launchcast/spacex/legacy"
)

// Endpoint labels used in logs and metrics.
const (
	EndpointLaunch       = "launch"
	EndpointQuery        = "query"
	EndpointLegacyLaunch = "legacy_launch"
)

// Client talks to the launch API. It does not retry and does not cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	parseOpt   launchcast.ParseOpt
	query      config.QueryConfig
	logger     zerolog.Logger
	metrics    *metrics.Collector
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records fetch counts and durations on m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// WithQueryDefaults sets the query used by LatestLaunches.
func WithQueryDefaults(q config.QueryConfig) Option {
	return func(c *Client) { c.query = q }
}

// New creates a client for the API described by cfg.
func New(cfg config.APIConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	// Loaded configs are validated; anything else falls back to Ignore.
	dup, _ := cfg.DuplicateKeySeverity()

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		parseOpt: launchcast.ParseOpt{
			OnDuplicateKey: dup,
			MaxBytes:       cfg.MaxBytes,
		},
		query:  config.QueryConfig{Limit: 10, SortField: "date_unix", SortOrder: "asc"},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parseOpt.OnWarn = func(path, msg string) {
		c.logger.Warn().Str("path", path).Msg(msg)
	}
	return c
}

// Query is the body of POST /v5/launches/query. Filter is the mongo-style
// selector sent as "query"; nil means all launches.
type Query struct {
	Filter    map[string]any
	SortField string
	SortOrder string
	Limit     int
	Page      int
}

type queryBody struct {
	Query   map[string]any `json:"query"`
	Options queryOptions   `json:"options"`
}

type queryOptions struct {
	Sort  map[string]string `json:"sort,omitempty"`
	Limit int               `json:"limit,omitempty"`
	Page  int               `json:"page,omitempty"`
}

func (q Query) body() queryBody {
	b := queryBody{Query: q.Filter, Options: queryOptions{Limit: q.Limit, Page: q.Page}}
	if b.Query == nil {
		b.Query = map[string]any{}
	}
	if q.SortField != "" {
		order := q.SortOrder
		if order == "" {
			order = "asc"
		}
		b.Options.Sort = map[string]string{q.SortField: order}
	}
	return b
}

// GetLaunch fetches GET /v5/launches/{id}.
func (c *Client) GetLaunch(ctx context.Context, id string) (spacex.Launch, error) {
	return fetch[spacex.Launch](ctx, c, EndpointLaunch, http.MethodGet,
		"/v5/launches/"+url.PathEscape(id), nil, spacex.Registry, spacex.SchemaLaunch)
}

// QueryLaunches posts q to /v5/launches/query.
func (c *Client) QueryLaunches(ctx context.Context, q Query) (spacex.LaunchPage, error) {
	return fetch[spacex.LaunchPage](ctx, c, EndpointQuery, http.MethodPost,
		"/v5/launches/query", q.body(), spacex.Registry, spacex.SchemaLaunchPage)
}

// LatestLaunches runs the default query and returns its docs in response
// order.
func (c *Client) LatestLaunches(ctx context.Context) ([]spacex.Launch, error) {
	page, err := c.QueryLaunches(ctx, Query{
		SortField: c.query.SortField,
		SortOrder: c.query.SortOrder,
		Limit:     c.query.Limit,
	})
	if err != nil {
		return nil, err
	}
	return page.Docs, nil
}

// GetLegacyLaunch fetches GET /v3/launches/{flightNumber}.
func (c *Client) GetLegacyLaunch(ctx context.Context, flightNumber int) (legacy.Launch, error) {
	return fetch[legacy.Launch](ctx, c, EndpointLegacyLaunch, http.MethodGet,
		"/v3/launches/"+strconv.Itoa(flightNumber), nil, legacy.Registry, legacy.SchemaLaunch)
}

// fetch performs one request and exactly one validation of the response body.
func fetch[T any](ctx context.Context, c *Client, endpoint, method, path string, body any, reg *launchcast.Registry, schema string) (T, error) {
	var zero T
	start := time.Now()
	if c.metrics != nil {
		c.metrics.FetchesInFlight.Inc()
		defer c.metrics.FetchesInFlight.Dec()
	}

	reqID := uuid.New().String()
	log := c.logger.With().Str("request_id", reqID).Logger()

	resp, err := c.do(ctx, method, path, reqID, body)
	if err != nil {
		c.record(endpoint, metrics.OutcomeTransport, start)
		log.Error().Err(err).Str("endpoint", endpoint).Str("path", path).Msg("request failed")
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.record(endpoint, metrics.OutcomeStatus, start)
		log.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("unexpected status")
		return zero, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(msg)}
	}

	out, err := launchcast.UnmarshalReader[T](reg, schema, resp.Body, c.parseOpt)
	if err != nil {
		if sm, ok := launchcast.AsShapeMismatch(err); ok {
			c.record(endpoint, metrics.OutcomeMismatch, start)
			if c.metrics != nil {
				c.metrics.ShapeMismatches.WithLabelValues(reg.Name()+"/"+schema, sm.Code).Inc()
			}
			log.Warn().
				Str("endpoint", endpoint).
				Str("code", sm.Code).
				Str("at", sm.Path).
				Str("expected", sm.Expected).
				Msg("response does not match schema")
		} else {
			c.record(endpoint, metrics.OutcomeDecode, start)
			log.Error().Err(err).Str("endpoint", endpoint).Msg("decode response")
		}
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.record(endpoint, metrics.OutcomeOK, start)
	log.Debug().
		Str("endpoint", endpoint).
		Dur("elapsed", time.Since(start)).
		Msg("fetched")
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, reqID string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

func (c *Client) record(endpoint, outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.FetchesTotal.WithLabelValues(endpoint, outcome).Inc()
	c.metrics.FetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
