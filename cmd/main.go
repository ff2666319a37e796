package main

import (
	"club-service/internal/handler"
	"club-service/internal/middleware"
	"club-service/internal/session"
	"club-service/pkg/config"
	"club-service/pkg/database"
	"club-service/pkg/logger"
	"club-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting club service...", zap.String("environment", cfg.Server.Env))

	// Initialize database (now includes migrations automatically)
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Session store is held server-side; the browser only ever sees the token
	sessions := session.NewMemoryStore(cfg.Session.TTL)
	handler.Init(sessions, cfg.Session.TTL)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())
	e.Use(middleware.Session(sessions))

	handler.RegisterRoutes(e)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
