package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/moodlog/api/internal/config"
	"github.com/moodlog/api/internal/database"
	"github.com/moodlog/api/internal/handlers"
	"github.com/moodlog/api/internal/middleware"
	"github.com/moodlog/api/internal/services"

	_ "github.com/moodlog/api/docs/api" // Swagger docs
)

// @title Moodlog API
// @version 1.0.0
// @description Mood and activity journaling backend
// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name moodlog_session

func main() {
	// Load .env if present; real deployments set env directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Session secret is process-wide and read-only after this point
	services.InitSessionSecret(cfg.SessionSecret)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "*",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("moodlog")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Greeting
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello World")
	})

	// API routes under /api
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	catalogHandler := &handlers.CatalogHandler{DB: db}
	entryHandler := &handlers.EntryHandler{DB: db}

	// Auth routes (register and login are the only unauthenticated writes)
	api.Post("/register", authHandler.Register)
	api.Post("/auth", authHandler.Login)
	api.Delete("/auth", middleware.AuthRequired(), authHandler.Logout)
	api.Get("/auth", middleware.AuthOptional(), authHandler.Me)

	// Catalog routes
	api.Post("/mood", middleware.AuthRequired(), catalogHandler.CreateMood)
	api.Get("/mood", middleware.AuthRequired(), catalogHandler.ListMoods)
	api.Post("/activity", middleware.AuthRequired(), catalogHandler.CreateActivity)
	api.Get("/activity", middleware.AuthRequired(), catalogHandler.ListActivities)

	// Entry routes
	api.Post("/entry", middleware.AuthRequired(), entryHandler.CreateEntry)
	api.Get("/entry", middleware.AuthRequired(), entryHandler.ListEntries)
	api.Get("/entry/:id", middleware.AuthRequired(), entryHandler.GetEntryByID)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
