// Package server exposes the pglens operations over HTTP. Every operation is
// advertised in a static capability table and implemented by a handler on an
// injected Service; the server holds no state of its own beyond the listener.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// Server is the HTTP front-end.
type Server struct {
	svc    *Service
	addr   string
	logger *slog.Logger
}

// New creates a server listening on addr.
// If logger is nil, a discard logger is used.
func New(svc *Service, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{svc: svc, addr: addr, logger: logger}
}

// Routes builds the request router. Exposed separately so handler tests can
// drive it through httptest without binding a listener.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/capabilities", s.handleCapabilities)
	r.Get("/connections", s.handleConnections)
	r.Post("/connect", s.handleConnect)
	r.Post("/disconnect", s.handleDisconnect)
	r.Post("/query", s.handleQuery)
	r.Post("/analyze", s.handleAnalyze)

	r.Route("/db/{connID}", func(r chi.Router) {
		r.Get("/", s.handleDatabase)
		r.Get("/schemas/{schema}", s.handleSchema)
		r.Get("/schemas/{schema}/tables/{table}", s.handleTable)
		r.Get("/schemas/{schema}/views/{view}", s.handleView)
	})

	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
