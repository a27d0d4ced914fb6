package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Server struct {
	name       string
	httpServer *http.Server
	logger     *zap.Logger
}

// New wraps an http.Server with logging and graceful shutdown. Name
// identifies the binary (customer, merchant, admin, gateway) in logs.
func New(name string, port int, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		name: name,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("service", s.name), zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server failed: %w", s.name, err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server", zap.String("service", s.name))
	return s.httpServer.Shutdown(ctx)
}
