// Package http serves the placefinder web page, its live websocket session,
// the export download and a small JSON API.
package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/places"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// ShutdownTimeout bounds how long Close waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// DefaultRenderInterval is the minimum gap between two pushes of the view
// to one live client.
const DefaultRenderInterval = 50 * time.Millisecond

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Gauge is the subset of a metrics gauge used to count live sessions.
type Gauge interface {
	Inc()
	Dec()
}

// Config configures a Server.
type Config struct {
	Logger *slog.Logger

	// DebounceDelay and ToastTTL are passed to every live session.
	DebounceDelay time.Duration
	ToastTTL      time.Duration

	// RenderInterval throttles view pushes per live client.
	RenderInterval time.Duration

	// Metrics, if set, is mounted at /metrics.
	Metrics http.Handler

	// Sessions, if set, tracks the number of live sessions.
	Sessions Gauge
}

// Server is the HTTP front end of a places.Container.
type Server struct {
	container *places.Container
	logger    *slog.Logger
	cfg       Config
	tmpl      *template.Template
	router    chi.Router

	// ctx is cancelled by Close so live sessions, whose connections are
	// hijacked and outlive Shutdown, terminate with the server.
	ctx    context.Context
	cancel context.CancelFunc

	server *http.Server
	ln     net.Listener
}

// NewServer returns a Server for container.
func NewServer(container *places.Container, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.RenderInterval <= 0 {
		cfg.RenderInterval = DefaultRenderInterval
	}
	s := &Server{
		container: container,
		logger:    cfg.Logger,
		cfg:       cfg,
		tmpl:      parseTemplates(),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(NewSlogLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/credential", s.handleCredential)
	r.Get("/ws", s.handleLive)
	r.With(s.requireCredential).Get("/export", s.handleExport)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/static/*", http.FileServerFS(staticFS))
	if s.cfg.Metrics != nil {
		r.Handle("/metrics", s.cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireCredential)
		r.Get("/search", s.handleSearch)
		r.Get("/places", s.handleListPlaces)
		r.Post("/places", s.handleSavePlace)
		r.Delete("/places/{id}", s.handleDeletePlace)
		r.Post("/places/{id}/refresh", s.handleRefreshPlace)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open starts listening on addr. It returns once the listener is bound.
func (s *Server) Open(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
	return nil
}

// Addr returns the bound address, or nil before Open.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until Close is called.
func (s *Server) Serve() error {
	if s.server == nil {
		return errors.New("server not open")
	}
	s.logger.Info("listening", "addr", s.ln.Addr().String())
	if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// requireCredential rejects requests made while no credential is active.
func (s *Server) requireCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.container.Credential() == "" {
			Error(w, r, s.logger, placefinder.Errorf(placefinder.ECREDENTIAL, places.MissingCredentialMessage))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func newRenderLimiter(interval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(interval), 1)
}
