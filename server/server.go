// Package server exposes the explorer over HTTP: a JSON API for sessions,
// events, plots, and presets, plus the embedded static UI.
package server

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/JWKennington/app-dsp-filter-design/config"
	"github.com/JWKennington/app-dsp-filter-design/explorer"
	"github.com/JWKennington/app-dsp-filter-design/explorer/preset"
	"github.com/JWKennington/app-dsp-filter-design/web"
)

// Server bundles the HTTP listener with the session and preset stores.
type Server struct {
	cfg      config.Config
	log      *zap.Logger
	sessions *explorer.Store
	presets  *preset.Store
	limiter  *rate.Limiter
	httpSrv  *http.Server
}

// New wires the routes and middleware. The preset store may be nil, in
// which case the preset endpoints report the feature unavailable.
func New(cfg config.Config, log *zap.Logger, sessions *explorer.Store, presets *preset.Store) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		presets:  presets,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}

	s.httpSrv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withMiddleware(s.routes()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the fully wired HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/session", s.handleCreateSession)
	mux.HandleFunc("GET /api/session/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/session/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/session/{id}/event", s.handleEvent)
	mux.HandleFunc("GET /api/session/{id}/plots", s.handlePlots)
	mux.HandleFunc("POST /api/session/{id}/preset/{name}", s.handleLoadPreset)

	mux.HandleFunc("GET /api/presets", s.handleListPresets)
	mux.HandleFunc("POST /api/presets", s.handleSavePreset)
	mux.HandleFunc("GET /api/presets/{name}", s.handleGetPreset)
	mux.HandleFunc("DELETE /api/presets/{name}", s.handleDeletePreset)

	if static, err := fs.Sub(web.StaticFS, "static"); err == nil {
		mux.Handle("GET /", http.FileServer(http.FS(static)))
	}

	return mux
}

// Run serves until the context is canceled, then drains connections within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	s.log.Info("server listening", zap.String("addr", s.cfg.Addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down", zap.Duration("timeout", s.cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	return s.httpSrv.Shutdown(shutdownCtx)
}
