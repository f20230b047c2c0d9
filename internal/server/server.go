// Package server exposes validated launch documents over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	launchcast "github.com/reoring/launchcast"
	"github.com/reoring/launchcast/client"
	"github.com/reoring/launchcast/config"
	"github.com/reoring/launchcast/metrics"
	"github.com/reoring/launchcast/spacex"
	"github.com/reoring/launchcast/spacex/legacy"
)

// Fetcher is the subset of *client.Client used by the server.
type Fetcher interface {
	GetLaunch(ctx context.Context, id string) (spacex.Launch, error)
	QueryLaunches(ctx context.Context, q client.Query) (spacex.LaunchPage, error)
	GetLegacyLaunch(ctx context.Context, flightNumber int) (legacy.Launch, error)
}

// Options configures the router.
type Options struct {
	Logger zerolog.Logger
	// Metrics enables request counting. Gatherer serves /metrics when set.
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	MetricsPath string
	// Query returns the defaults for /launches/latest. It is read on every
	// request so reloaded configuration takes effect.
	Query func() config.QueryConfig
}

type handler struct {
	fetcher Fetcher
	logger  zerolog.Logger
	query   func() config.QueryConfig
}

// NewRouter creates the HTTP router.
func NewRouter(f Fetcher, opts Options) chi.Router {
	h := &handler{fetcher: f, logger: opts.Logger, query: opts.Query}
	if h.query == nil {
		h.query = func() config.QueryConfig {
			return config.QueryConfig{Limit: 10, SortField: "date_unix", SortOrder: "asc"}
		}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(newLoggingMiddleware(opts.Logger, opts.Metrics))
	r.Use(middleware.Recoverer)

	r.Get("/launches/latest", h.latest)
	r.Get("/launches/{id}", h.launch)
	r.Get("/legacy/launches/{flight}", h.legacyLaunch)
	r.Get("/schemas/{model}/{name}", h.schema)

	if opts.Gatherer != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (h *handler) launch(w http.ResponseWriter, r *http.Request) {
	l, err := h.fetcher.GetLaunch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondEncoded(w, r, spacex.Registry, spacex.SchemaLaunch, l)
}

func (h *handler) latest(w http.ResponseWriter, r *http.Request) {
	q := h.query()
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "limit must be a positive integer"})
			return
		}
		q.Limit = n
	}
	page, err := h.fetcher.QueryLaunches(r.Context(), client.Query{
		SortField: q.SortField,
		SortOrder: q.SortOrder,
		Limit:     q.Limit,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	docs := make([]any, 0, len(page.Docs))
	for _, l := range page.Docs {
		ext, err := launchcast.Encode(spacex.Registry, spacex.SchemaLaunch, l)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		docs = append(docs, ext)
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *handler) legacyLaunch(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "flight"))
	if err != nil || n <= 0 {
		writeError(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "flight must be a positive integer"})
		return
	}
	l, err := h.fetcher.GetLegacyLaunch(r.Context(), n)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondEncoded(w, r, legacy.Registry, legacy.SchemaLaunch, l)
}

func (h *handler) schema(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")
	reg, ok := spacex.Model(model)
	if !ok {
		writeError(w, http.StatusNotFound, errorBody{Error: "not_found", Message: "unknown model " + strconv.Quote(model) + ", want one of " + strings.Join(spacex.ModelNames(), ", ")})
		return
	}
	name := chi.URLParam(r, "name")
	s, err := reg.JSONSchema(name)
	if err != nil {
		writeError(w, http.StatusNotFound, errorBody{Error: "not_found", Message: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(s)
}

func (h *handler) respondEncoded(w http.ResponseWriter, r *http.Request, reg *launchcast.Registry, name string, v any) {
	ext, err := launchcast.Encode(reg, name, v)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ext)
}

type errorBody struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Path     string `json:"path,omitempty"`
	Key      string `json:"key,omitempty"`
	Parent   string `json:"parent,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// fail maps fetch and validation errors to responses. A document that does
// not match its schema is an upstream fault and answers 502.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if sm, ok := launchcast.AsShapeMismatch(err); ok {
		writeError(w, http.StatusBadGateway, errorBody{
			Error:    "shape_mismatch",
			Message:  sm.Error(),
			Code:     sm.Code,
			Path:     sm.Path,
			Key:      sm.Key,
			Parent:   sm.Parent,
			Expected: sm.Expected,
			Actual:   sm.Actual,
		})
		return
	}
	var se *client.StatusError
	if errors.As(err, &se) {
		status := http.StatusBadGateway
		if se.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, errorBody{Error: "upstream_status", Message: se.Error()})
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusGatewayTimeout, errorBody{Error: "upstream_timeout", Message: err.Error()})
		return
	}
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeError(w, http.StatusBadGateway, errorBody{Error: "upstream_error", Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}

// newLoggingMiddleware logs each request and counts it by route pattern.
// Requests that match no route share the "unmatched" label.
func newLoggingMiddleware(logger zerolog.Logger, m *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			if m != nil {
				m.RequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
			}

			logger.Debug().
				Str("method", r.Method).
				Str("route", route).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
