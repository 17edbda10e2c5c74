// Package server is the local dev server for the portfolio page. It serves the built
// site, relays the contact form to the configured form service and streams reload
// events while the site directory changes.
package server

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Its-donkey/luxe-portfolio/internal/server/config"
	"github.com/Its-donkey/luxe-portfolio/internal/server/reload"
	"github.com/Its-donkey/luxe-portfolio/logging"
)

// Server hosts the site directory.
type Server struct {
	cfg        *config.Config
	root       string
	log        *zap.Logger
	broker     *reload.Broker
	router     chi.Router
	httpServer *http.Server
	now        func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithClock overrides the clock used when pre-rendering the index page.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New validates the site directory and builds the router. broker may be nil when
// reloading is disabled.
func New(cfg *config.Config, log *zap.Logger, broker *reload.Broker, opts ...Option) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	root, err := filepath.Abs(cfg.SiteDir)
	if err != nil {
		return nil, fmt.Errorf("resolving site directory: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("site directory %s: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("site directory %s is not a directory", root)
	}

	mime.AddExtensionType(".wasm", "application/wasm")

	s := &Server{
		cfg:    cfg,
		root:   root,
		log:    log,
		broker: broker,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route(s.cfg.Contact.Path, func(r chi.Router) {
		r.Use(corsHandler(s.cfg.Contact.AllowedOrigins))
		r.Use(middleware.Timeout(s.cfg.Contact.Timeout))
		r.Post("/", contactHandler(s.cfg.Contact.Upstream, s.log).ServeHTTP)
	})

	if s.cfg.Reload.Enabled && s.broker != nil {
		r.Get(s.cfg.Reload.Path, reload.Handler(s.broker).ServeHTTP)
	}

	index := s.indexHandler()
	r.Get("/", index.ServeHTTP)
	r.Get("/index.html", index.ServeHTTP)
	r.Handle("/*", staticHandler(s.root))
	return r
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.router }

// Root is the absolute site directory.
func (s *Server) Root() string { return s.root }

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.Serve(ln) }()

	s.log.Info("serving site",
		zap.String("root", s.root),
		zap.String("addr", ln.Addr().String()),
		zap.String("contact_upstream", s.cfg.Contact.Upstream),
		zap.Bool("reload", s.cfg.Reload.Enabled),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func staticHandler(root string) http.Handler {
	fileServer := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if filepath.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}
