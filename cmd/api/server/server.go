package server

import (
	"errors"
	"fmt"
	"net/http"

	ginhandler "usuarios-service/internal/adapter/gin/handler"
	ginrouter "usuarios-service/internal/adapter/gin/router"
	"usuarios-service/internal/config"

	"go.uber.org/zap"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, handler *ginhandler.UserHandler, store ginrouter.Pinger) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		Gin:    SetupGinServer(handler, store, cfg, l),
	}
}

// Start serves HTTP until the server is shut down. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server listening", zap.String("address", s.Gin.Addr))

	if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
	return nil
}
