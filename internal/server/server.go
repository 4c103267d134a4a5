// Package server exposes template browsing, preview rendering and PPTX
// export over HTTP for an editor front end.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"

	"github.com/goliatone/go-slidegen/pkg/orchestrator"
	"github.com/goliatone/go-slidegen/pkg/themes"
)

// Option customises a Server.
type Option func(*Server)

// WithLogger replaces the default standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReleaseMode disables drift debug output.
func WithReleaseMode(release bool) Option {
	return func(s *Server) {
		s.release = release
	}
}

// WithAllowedOrigins sets the CORS origins. Defaults to "*".
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// WithTheme sets the theme applied when a request names none.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// Server wires HTTP routes to an orchestrator.
type Server struct {
	orch         *orchestrator.Orchestrator
	logger       *log.Logger
	release      bool
	origins      []string
	themeName    string
	themeVariant string
	assets       fs.FS
	handler      http.Handler
}

// New builds the route table.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	s := &Server{
		orch:    orch,
		logger:  log.Default(),
		origins: []string{"*"},
		assets:  defaultAssets(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	app := drift.New()
	if s.release {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	app.Get("/healthz", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/templates", s.listTemplates)
	api.Get("/templates/:id", s.getTemplate)
	api.Post("/render/:renderer", s.renderDeck)
	api.Post("/resolve", s.resolveDeck)
	api.Post("/export", s.exportDeck)

	mux := http.NewServeMux()
	mux.Handle(themes.AssetPrefix+"/", assetHandler(s.assets))
	mux.Handle("/", app)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then drains connections for
// up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("slidegen server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		s.logger.Println("slidegen server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}
