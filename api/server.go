// Package api - Thin HTTP boundary over the pricing engine
// The API is ONLY responsible for: input ingestion, engine orchestration, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"quotecalc/core/output"
	"quotecalc/core/quote"
	"quotecalc/core/types"
	qerrors "quotecalc/internal/errors"
	"quotecalc/internal/logging"
	"quotecalc/internal/metrics"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Options configures the server
type Options struct {
	// Version is reported by /health and /version
	Version string

	// IDPrefix prefixes generated quote ids
	IDPrefix string

	// DefaultCurrency is used when a request names none
	DefaultCurrency types.CurrencyMode

	// Render is passed to the export formatters
	Render output.RenderOptions

	// RequestTimeout bounds each request; zero disables the timeout
	RequestTimeout time.Duration
}

// Server is the API server
type Server struct {
	engine *quote.Engine
	opts   Options
	router *chi.Mux
	server *http.Server
	now    func() time.Time
}

// NewServer creates a server pricing quotes with engine
func NewServer(engine *quote.Engine, opts Options) *Server {
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = types.CurrencyUSD
	}
	s := &Server{
		engine: engine,
		opts:   opts,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	if s.opts.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.opts.RequestTimeout))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/version", s.handleVersion)
	s.router.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/countries", s.handleCountries)
		r.Get("/options", s.handleOptions)
		r.Post("/quote", s.handleQuote)
		r.Post("/quote/export", s.handleExport)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string, readTimeout, writeTimeout time.Duration) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	logging.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, status)
}

// writeErr maps a typed error onto a status code
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	qe, ok := qerrors.From(err)
	if !ok {
		s.writeError(w, string(qerrors.TypeInternal), err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch qe.Type {
	case qerrors.TypeInput, qerrors.TypeParsing, qerrors.TypeNotSupported:
		status = http.StatusBadRequest
	}
	s.writeError(w, string(qe.Type), qe.Message, status)
}
