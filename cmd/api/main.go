package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"portail-rh/internal/config"
	"portail-rh/internal/domain"
	"portail-rh/internal/handler"
	"portail-rh/internal/middleware"
	"portail-rh/internal/repository"
	"portail-rh/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (attachment upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Polled before login; stays outside auth and the lock gate.
	v1.Get("/app-control", h.AppControl.Get)

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Get("/verify-email", h.Auth.VerifyEmail)

	protected := v1.Group("", middleware.AuthRequired(services.Auth), middleware.AppLockGate(services.AppControl))

	protected.Put("/app-control", middleware.RequirePolicy(domain.ActionAppControlWrite), h.AppControl.Update)

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Get("/", middleware.RequirePolicy(domain.ActionUserManage), h.User.ListUsers)
	users.Get("/:userId", middleware.RequirePolicy(domain.ActionUserManage), h.User.GetUser)
	users.Put("/:userId", middleware.RequirePolicy(domain.ActionUserManage), h.User.UpdateUser)
	users.Post("/assign-role", middleware.RequirePolicy(domain.ActionUserManage), h.User.AssignRole)
	users.Post("/assign-chef", middleware.RequirePolicy(domain.ActionUserManage), h.User.AssignChef)
	users.Delete("/:userId", middleware.RequirePolicy(domain.ActionUserManage), h.User.DeleteUser)

	departments := protected.Group("/departments")
	departments.Get("/", h.Department.List)
	departments.Get("/:departmentId", h.Department.Get)
	departments.Post("/", middleware.RequirePolicy(domain.ActionDepartmentManage), h.Department.Create)
	departments.Put("/:departmentId", middleware.RequirePolicy(domain.ActionDepartmentManage), h.Department.Update)
	departments.Delete("/:departmentId", middleware.RequirePolicy(domain.ActionDepartmentManage), h.Department.Delete)

	requests := protected.Group("/requests")
	requests.Post("/", h.Request.Create)
	requests.Get("/", h.Request.ListOwn)
	requests.Get("/team", middleware.RequirePolicy(domain.ActionRequestListTeam), h.Request.ListTeam)
	requests.Get("/all", middleware.RequirePolicy(domain.ActionRequestListAll), h.Request.ListAll)
	requests.Get("/:requestId", h.Request.Get)
	requests.Patch("/:requestId/status", h.Request.UpdateStatus)
	requests.Delete("/:requestId", h.Request.Delete)

	requests.Post("/:requestId/attachments", h.Attachment.Upload)
	requests.Get("/:requestId/attachments", h.Attachment.List)

	attachments := protected.Group("/attachments")
	attachments.Get("/:attachmentId/download", h.Attachment.Download)
	attachments.Delete("/:attachmentId", h.Attachment.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	calendar := protected.Group("/calendar")
	calendar.Get("/", middleware.RequirePolicy(domain.ActionCalendarView), h.Calendar.Month)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", middleware.RequirePolicy(domain.ActionDashboardView), h.Dashboard.GetStats)

	audit := protected.Group("/audit")
	audit.Get("/recent", middleware.RequirePolicy(domain.ActionAuditView), h.Audit.GetRecentActivities)
	audit.Get("/:entityType/:entityId", middleware.RequirePolicy(domain.ActionAuditView), h.Audit.GetEntityHistory)
}
