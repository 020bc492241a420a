package main

import (
	"backoffice-service/internal/handler"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/service"
	"backoffice-service/internal/store"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"

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
	log.Info("Starting backoffice service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Wire stores and services
	st := store.New(database.GetDB())
	users := service.NewUserService(st, log)
	departments := service.NewDepartmentService(st, log)
	membership := service.NewMembershipService(st, log)
	orders := service.NewOrderService(st, log)
	persons := service.NewPersonService(st, log)
	demo := service.NewDemoService(st, users, departments, membership, orders, persons, log)

	// Initialize Echo framework
	e := echo.New()
	e.Validator = handler.NewValidator()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Operational routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// API routes
	api := e.Group("/api")
	handler.NewUserHandler(users, membership).Register(api.Group("/users"))
	handler.NewDepartmentHandler(departments, membership).Register(api.Group("/departments"))
	handler.NewOrderHandler(orders).Register(api.Group("/orders"))
	handler.NewPersonHandler(persons).Register(api.Group("/persons"))
	handler.NewDemoHandler(demo).Register(api.Group("/demo"))

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
