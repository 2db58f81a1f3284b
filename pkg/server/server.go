// Package server exposes the codec, the generators and the library over an
// HTTP API.
//
// # Endpoints
//
//	GET    /healthz                 liveness and build version
//	POST   /v1/decode               {blueprint} → pretty JSON document
//	POST   /v1/reencode             {blueprint} → {blueprint}
//	POST   /v1/render               {blueprint, format, detailed} → DOT or SVG
//	POST   /v1/generate/memory      {width, height} → {blueprint, entities, cached}
//	POST   /v1/generate/loader      {data, max_height} → {blueprint, entities, cached}
//	GET    /v1/library              list entries
//	POST   /v1/library              {name, blueprint} → entry
//	GET    /v1/library/{key}        entry by id or name
//	DELETE /v1/library/{id}         remove entry by id
//
// The library endpoints are only mounted when a library is configured.
//
// # Errors
//
// Failures are answered with {code, message}, where code is the
// machine-readable code from package errors. Bad input, including any
// codec or graph error, is a 400; unknown library entries are a 404;
// everything else is a 500.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TheJP/factorio-blueprint/pkg/buildinfo"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/library"
	"github.com/TheJP/factorio-blueprint/pkg/observability"
	"github.com/TheJP/factorio-blueprint/pkg/pipeline"
)

// Defaults for [Options].
const (
	DefaultMaxBodyBytes = 8 << 20
	DefaultMaxCells     = 10_000
	DefaultTimeout      = 30 * time.Second
)

// Options configures a [Server].
type Options struct {
	// Library enables the library endpoints when set.
	Library *library.Library
	Logger  *log.Logger
	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64
	// MaxCells bounds width × height of generated memory arrays.
	MaxCells int
	// Timeout bounds the handling of one request.
	Timeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	library *library.Library
	logger  *log.Logger
	opts    Options
	router  chi.Router
}

// New creates a server running generators through runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.MaxCells <= 0 {
		opts.MaxCells = DefaultMaxCells
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	s := &Server{
		runner:  runner,
		library: opts.Library,
		logger:  opts.Logger,
		opts:    opts,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/decode", s.handleDecode)
		r.Post("/reencode", s.handleReencode)
		r.Post("/render", s.handleRender)
		r.Post("/generate/memory", s.handleGenerateMemory)
		r.Post("/generate/loader", s.handleGenerateLoader)
		if s.library != nil {
			r.Route("/library", func(r chi.Router) {
				r.Get("/", s.handleLibraryList)
				r.Post("/", s.handleLibrarySave)
				r.Get("/{key}", s.handleLibraryGet)
				r.Delete("/{key}", s.handleLibraryDelete)
			})
		}
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// logRequests logs every request on completion and reports it to the HTTP
// hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// decodeBody reads a JSON request body into v.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.IsClientError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
