// Package server provides an importable HTTP server for the colour
// converter page. E2E tests start and stop it programmatically instead of
// running main().
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Config holds server configuration options.
type Config struct {
	Addr         string        // Listen address (e.g., ":3000" or ":0" for random port)
	ReadTimeout  time.Duration // HTTP read timeout
	WriteTimeout time.Duration // HTTP write timeout
	// RenderDelay postpones rendering a result in the page, simulating a
	// slow client so callers must poll for it.
	RenderDelay time.Duration
	// LegacyIDs serves the older markup: *Swatch preview ids and buttons
	// without ids.
	LegacyIDs bool
	Logger    *zap.Logger
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server serves the converter page and its JSON API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	listener   net.Listener
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	if cfg.RenderDelay < 0 {
		return nil, errors.New("render delay must not be negative")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	page, err := renderPage(cfg)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(page, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

func newRouter(page []byte, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	r.Get("/api", handleIndex)
	r.Route("/api/convert", func(r chi.Router) {
		r.Get("/hex-to-rgb", handleHexToRGB)
		r.Post("/hex-to-rgb", handleHexToRGB)
		r.Get("/rgb-to-hex", handleRGBToHex)
		r.Post("/rgb-to-hex", handleRGBToHex)
	})

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)
	return r
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("Request served.",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

// Handler returns the server's HTTP handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly.", zap.Error(err))
		}
	}()

	s.logger.Info("Server listening.", zap.String("addr", s.addr))
	return s.addr, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
// Returns empty string if the server was never started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// URL returns the base URL a browser can reach the server on.
// Returns empty string if the server was never started.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	return "http://localhost:" + port
}

// Serve starts a server for cfg and blocks until ctx is done, then shuts it
// down gracefully. ready, if non-nil, receives the base URL once listening.
func Serve(ctx context.Context, cfg Config, ready func(url string)) error {
	srv, err := NewServer(cfg)
	if err != nil {
		return err
	}
	if _, err := srv.Start(); err != nil {
		return err
	}
	if ready != nil {
		ready(srv.URL())
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	srv.logger.Info("Server stopped.")
	return nil
}
