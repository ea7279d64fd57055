package routes

import (
	"time"

	"fixithub/internal/adapters/http/handlers"
	"fixithub/internal/adapters/http/middleware"
	"fixithub/internal/adapters/persistence/repositories"
	"fixithub/internal/config"
	"fixithub/internal/core/domain"
	"fixithub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, publisher services.EventPublisher) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	profileRepo := repositories.NewHandymanProfileRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	adRepo := repositories.NewJobAdRepository(db)
	smsRepo := repositories.NewSMSLogRepository(db)

	// Initialize services
	notifier := services.NewNotificationService(smsRepo, userRepo, publisher)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, refreshTokenRepo)
	moderationService := services.NewModerationService(userRepo, refreshTokenRepo, notifier)
	profileService := services.NewProfileService(profileRepo)
	jobService := services.NewJobService(jobRepo, notifier)
	reviewService := services.NewReviewService(reviewRepo, jobRepo, notifier)
	paymentService := services.NewPaymentService(paymentRepo)
	adService := services.NewJobAdService(adRepo)
	dashboardService := services.NewDashboardService(userRepo, jobRepo, paymentRepo, profileRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, func() error { return config.HealthCheck(db) })
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	profileHandler := handlers.NewProfileHandler(profileService)
	jobHandler := handlers.NewJobHandler(jobService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adHandler := handlers.NewJobAdHandler(adService)
	smsLogHandler := handlers.NewSMSLogHandler(notifier)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(authService)

	setupAuthRoutes(api, authHandler, userHandler, auth, cfg)
	setupUserRoutes(api.Group("/users", auth, middleware.NoCacheHeaders()), userHandler, moderationHandler)
	setupProfileRoutes(api.Group("/handyman-profiles", auth), profileHandler)
	setupJobRoutes(api.Group("/job-requests", auth), jobHandler)
	setupReviewRoutes(api.Group("/reviews", auth), reviewHandler)
	setupPaymentRoutes(api.Group("/payments", auth, middleware.NoCacheHeaders()), paymentHandler)
	setupJobAdRoutes(api.Group("/job-ads", auth), adHandler)

	api.Get("/sms-logs", auth, middleware.AdminOnly(), smsLogHandler.List)
	api.Get("/dashboard", auth, middleware.AdminOnly(), dashboardHandler.GetAdminDashboard)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(
	router fiber.Router,
	handler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	auth fiber.Handler,
	cfg *config.Config,
) {
	limit := middleware.AuthRateLimiter(cfg.AuthRateLimit)

	// Public routes
	router.Post("/register", limit, handler.Register)
	router.Post("/token", limit, handler.Login)
	router.Post("/token/refresh", limit, handler.RefreshToken)
	router.Post("/token/logout", handler.Logout)

	// Protected routes
	router.Post("/token/logout-all", auth, handler.LogoutAll)
	router.Get("/me", auth, middleware.NoCacheHeaders(), userHandler.GetProfile)
	router.Post("/admin-register", auth, middleware.AdminOnly(), handler.RegisterAdmin)
}

// setupUserRoutes configures self-service and admin account routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, moderation *handlers.ModerationHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Post("/change-password", handler.ChangePassword)

	// Admin only
	adminOnly := middleware.AdminOnly()
	router.Get("/all", adminOnly, handler.ListUsers)
	router.Get("/:id", adminOnly, handler.GetUser)
	router.Put("/:id", adminOnly, handler.UpdateUser)
	router.Delete("/:id", adminOnly, handler.DeleteUser)
	router.Post("/:id/ban", adminOnly, moderation.Ban)
	router.Post("/:id/unban", adminOnly, moderation.Unban)
}

// setupProfileRoutes configures handyman profile routes
func setupProfileRoutes(router fiber.Router, handler *handlers.ProfileHandler) {
	router.Get("/", middleware.PrivateCacheHeaders(time.Minute), handler.List)
	router.Post("/", handler.Create)
	router.Put("/", handler.UpdateOwn)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Put("/:id/verify", middleware.AdminOnly(), handler.Verify)
}

// setupJobRoutes configures job request routes
func setupJobRoutes(router fiber.Router, handler *handlers.JobHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Post("/:id/accept", middleware.RoleMiddleware(domain.RoleHandyman), handler.Accept)
	router.Post("/:id/start", handler.Start)
	router.Post("/:id/complete", handler.Complete)
	router.Post("/:id/cancel", handler.Cancel)
}

// setupReviewRoutes configures review routes
func setupReviewRoutes(router fiber.Router, handler *handlers.ReviewHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Submit)
}

// setupPaymentRoutes configures payment routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id/status", middleware.AdminOnly(), handler.UpdateStatus)
}

// setupJobAdRoutes configures job ad routes
func setupJobAdRoutes(router fiber.Router, handler *handlers.JobAdHandler) {
	router.Get("/", middleware.PrivateCacheHeaders(time.Minute), handler.List)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
