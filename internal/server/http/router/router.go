package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ordermesh/ordermesh/internal/server/http/handlers"
	"github.com/ordermesh/ordermesh/internal/server/http/middleware"
)

// Setup configures the order service router with handlers and middleware.
func Setup(facade handlers.OrderFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	engine := newEngine(logger)

	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")
	api.POST("/orders", orderHandler.Place)

	registerHealth(engine, health)
	return engine
}

// SetupHealth configures the minimal router the consumer services expose.
func SetupHealth(health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	engine := newEngine(logger)
	registerHealth(engine, health)
	return engine
}

func newEngine(logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	return engine
}

func registerHealth(engine *gin.Engine, health handlers.HealthChecker) {
	engine.GET("/health", handlers.NewHealthHandler(health).Check)
}
