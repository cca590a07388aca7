package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/relayout/pkg/buildinfo"
	rerrors "github.com/matzehuels/relayout/pkg/errors"
	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/pipeline"
)

const (
	// MaxBodyBytes bounds a request document.
	MaxBodyBytes = 1 << 20

	// DefaultTimeout bounds one request.
	DefaultTimeout = 30 * time.Second
)

// Server serves the layout API over a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New creates a server over runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.New(io.Discard),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.health)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.solve)
		r.Get("/{key}", s.getLayout)
		r.Get("/{key}/render/{format}", s.renderLayout)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Current()})
}

// SolveRequest is the body of POST /v1/layouts.
type SolveRequest struct {
	Document *graph.Document `json:"document"`
	Options  pipeline.Options `json:"options"`
}

// SolveResponse is the body returned for a solved layout.
type SolveResponse struct {
	Layout   graph.Result `json:"layout"`
	Warnings []string     `json:"warnings,omitempty"`
	Cached   bool         `json:"cached"`
	// Artifacts holds requested renderings; PNG is base64 encoded.
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, rerrors.Wrap(rerrors.ErrCodeInvalidDocument, err, "decode request"))
		return
	}
	if req.Document == nil {
		writeError(w, r, rerrors.New(rerrors.ErrCodeInvalidDocument, "document is required"))
		return
	}

	ctx := r.Context()
	res, err := s.runner.Solve(ctx, req.Document, req.Options)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := SolveResponse{Layout: res.Layout, Warnings: res.Warnings, Cached: res.CacheInfo.SolveHit}
	if len(req.Options.Formats) > 0 {
		artifacts, err := s.runner.Render(ctx, req.Document, res.Layout, req.Options)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Artifacts = encodeArtifacts(artifacts)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SolveResponse{Layout: res, Cached: true})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
}

func (s *Server) renderLayout(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	opts := pipeline.Options{Kind: pipeline.KindFrames, Formats: []string{format}}
	if err := opts.ValidateForRender(); err != nil {
		writeError(w, r, err)
		return
	}

	res, ok := s.lookup(w, r)
	if !ok {
		return
	}
	artifacts, err := pipeline.Render(nil, res, opts)
	if err != nil {
		writeError(w, r, rerrors.Wrap(rerrors.ErrCodeInternal, err, "render"))
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (graph.Result, bool) {
	key := chi.URLParam(r, "key")
	if err := rerrors.ValidateCacheKey(key); err != nil {
		writeError(w, r, err)
		return graph.Result{}, false
	}
	res, ok, err := s.runner.Get(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return graph.Result{}, false
	}
	if !ok {
		writeError(w, r, rerrors.New(rerrors.ErrCodeNotFound, "layout %s not found", key))
		return graph.Result{}, false
	}
	return res, true
}

// =============================================================================
// Helpers
// =============================================================================

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := rerrors.GetCode(err)
	if code == "" {
		code = rerrors.ErrCodeInternal
	}
	writeJSON(w, rerrors.HTTPStatus(err), ErrorResponse{
		Error:     rerrors.UserMessage(err),
		Code:      string(code),
		RequestID: RequestID(r.Context()),
	})
}

func encodeArtifacts(in map[string][]byte) map[string]string {
	out := make(map[string]string, len(in))
	for format, data := range in {
		if format == pipeline.FormatPNG {
			out[format] = base64.StdEncoding.EncodeToString(data)
			continue
		}
		out[format] = string(data)
	}
	return out
}
