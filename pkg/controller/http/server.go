package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	sessionTTL    time.Duration
	maxUploadSize int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithSessionTTL sets how long an idle upload session is kept
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.sessionTTL = ttl
	}
}

// WithMaxUploadSize limits the size of an uploaded image in bytes
func WithMaxUploadSize(size int64) Option {
	return func(c *config) {
		c.maxUploadSize = size
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	sessions *sessionStore
}

// NewServer creates the web front-end of the upload form. Every browser
// session gets its own presenter built by factory.
func NewServer(
	ctx context.Context,
	factory PresenterFactory,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:          "localhost:8080",
		sessionTTL:    30 * time.Minute,
		maxUploadSize: 10 << 20,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	metrics := NewMetrics()
	sessions := newSessionStore(factory, cfg.sessionTTL, metrics)
	actions := &ActionHandler{
		sessions:      sessions,
		metrics:       metrics,
		maxUploadSize: cfg.maxUploadSize,
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx, metrics))
	router.Use(middleware.Recoverer)

	// Health check and metrics
	router.Get("/health", handleHealth)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Upload form
	router.Get("/", actions.handleIndex)
	router.Get("/state", actions.handleState)
	router.Route("/actions", func(r chi.Router) {
		r.Post("/select", actions.handleSelect)
		r.Post("/detect", actions.handleDetect)
		r.Post("/reset", actions.handleReset)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		sessions: sessions,
	}

	return server, nil
}

// SessionCount returns the number of live upload sessions
func (s *Server) SessionCount() int {
	return s.sessions.count()
}
