package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fixithub/internal/adapters/events"
	"fixithub/internal/adapters/http/middleware"
	"fixithub/internal/adapters/http/routes"
	"fixithub/internal/adapters/persistence/models"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/config"
	"fixithub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "fixithub/docs" // Swagger docs
)

// @title FixItHub API
// @version 1.0
// @description Handyman marketplace API: accounts, job requests, reviews and moderation.

// @contact.name API Support
// @contact.email support@fixithub.app

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the first admin account
	if err := config.NewSeeder(db, cfg.Admin).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin account: %v", err)
	}

	// Domain events go to Redis streams when configured
	var publisher services.EventPublisher = events.NopPublisher{Verbose: cfg.IsDev()}
	if cfg.Redis.Addr != "" {
		client, err := events.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("⚠️ Warning: Redis unavailable, events disabled: %v", err)
		} else {
			defer client.Close()
			publisher = events.NewPublisher(client, cfg.Redis.StreamMaxLen)
		}
	}

	// Nightly cleanup of expired refresh tokens and job ads
	maintenance, err := services.NewMaintenanceService(
		cfg.Maintenance.Cron,
		repositories.NewRefreshTokenRepository(db),
		repositories.NewJobAdRepository(db),
	)
	if err != nil {
		log.Fatalf("❌ Failed to create maintenance service: %v", err)
	}
	maintenance.Start()
	defer maintenance.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FixItHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg, publisher)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
