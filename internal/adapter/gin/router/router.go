package router

import (
	"context"
	"net/http"
	"os"
	"slices"
	"time"

	"usuarios-service/internal/adapter/gin/handler"
	"usuarios-service/internal/adapter/gin/middleware"
	"usuarios-service/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

const (
	swaggerDocPath = "/usuarios.swagger.json"
	healthTimeout  = 2 * time.Second
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	store Pinger,
	cfg config.HTTPConfig,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "usuarios-service",
		})
	})

	users := router.Group("/usuarios")
	{
		users.POST("", userHandler.CreateUser)
		users.POST("/", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/", userHandler.ListUsers)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	// Swagger UI and the OpenAPI document it renders
	swaggerUI := httpSwagger.Handler(httpSwagger.URL("/swagger" + swaggerDocPath))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == swaggerDocPath {
			c.File(cfg.SwaggerSpecPath)
			return
		}
		swaggerUI(c.Writer, c.Request)
	})

	static := staticHandler(cfg.StaticDir, log)
	router.NoRoute(func(c *gin.Context) {
		if static != nil && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
			static.ServeHTTP(c.Writer, c.Request)
			return
		}
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "not found"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// staticHandler serves dir as a file tree, or returns nil if dir is unset or missing.
func staticHandler(dir string, log *zap.Logger) http.Handler {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Info("static directory not found, serving API only", zap.String("dir", dir))
		return nil
	}
	return http.FileServer(gin.Dir(dir, false))
}
