package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"githubsearch/logger"
)

// Server represents the API web server
type Server struct {
	server *http.Server
}

// NewServer creates a server listening on addr with the full middleware stack
func NewServer(addr string, handler *Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           newRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

func newRouter(handler *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(Metrics)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(middleware.GetHead)
	handler.RegisterRoutes(r)
	return r
}

// Handler returns the root handler, middleware included
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Serve accepts connections on ln
func (s *Server) Serve(ln net.Listener) error {
	logger.Info("Starting API server", zap.String("addr", ln.Addr().String()))
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
