package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/franks42/uuidv7-go/internal/config"
	"github.com/franks42/uuidv7-go/internal/generator"
	"github.com/franks42/uuidv7-go/internal/handler"
	pkglog "github.com/franks42/uuidv7-go/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "uuidv7-service",
	})
	logger := pkglog.L()

	logger.Info().Msg("starting uuidv7-service")

	// Initialize the UUIDv7 generator
	gen := generator.NewUUIDv7Generator()
	logger.Info().Int("batch_max", cfg.Batch.MaxCount).Msg("uuidv7 generator initialized")

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(gen, cfg.Batch.MaxCount)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("uuidv7-service listening")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
