package server

import (
	"net/http"
	"time"

	ginhandler "usuarios-service/internal/adapter/gin/handler"
	ginrouter "usuarios-service/internal/adapter/gin/router"
	"usuarios-service/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	store ginrouter.Pinger,
	cfg *config.Config,
	l *zap.Logger,
) *http.Server {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := ginrouter.SetupRouter(handler, store, cfg.HTTP, l)
	addr := ":" + cfg.App.HTTPPort

	l.Info("Gin REST API configured",
		zap.String("address", addr),
		zap.String("static_dir", cfg.HTTP.StaticDir),
		zap.Strings("cors_allow_origins", cfg.HTTP.CORSAllowOrigins),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
