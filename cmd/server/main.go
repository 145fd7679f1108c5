package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/database"
	"github.com/mindfulway/intake-backend/internal/handlers"
	"github.com/mindfulway/intake-backend/internal/middleware"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/sheets"
	"github.com/mindfulway/intake-backend/internal/types"

	_ "github.com/mindfulway/intake-backend/docs/api" // Swagger docs
)

// @title Mindful Way Intake API
// @version 1.0.0
// @description Clinical intake backend: client provisioning and form submission over Google Sheets
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/mindfulway/intake-backend

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	// Connect the Google Sheets/Drive facade
	ctx := context.Background()
	store, err := sheets.NewClient(ctx, cfg.DriveFolderID)
	if err != nil {
		appLog.Fatal("failed to create spreadsheet client", "error", err)
	}

	// Connect to the audit database
	auditDB, err := database.Connect(cfg)
	if err != nil {
		appLog.Fatal("failed to connect to audit database", "error", err)
	}
	defer database.Close(auditDB)

	if err := database.AutoMigrate(auditDB); err != nil {
		appLog.Fatal("failed to run audit migrations", "error", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		AllowCredentials: true,
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("intake")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	clientHandler := &handlers.ClientHandler{Store: store, DB: auditDB, Cfg: cfg, Log: appLog}
	submissionHandler := &handlers.SubmissionHandler{Store: store, DB: auditDB, Cfg: cfg, Log: appLog}
	formHandler := &handlers.FormHandler{Log: appLog}
	systemHandler := &handlers.SystemHandler{Store: store, DB: auditDB, Cfg: cfg, Log: appLog}

	// System routes
	app.Get("/ping", systemHandler.Ping)
	app.Get("/health", systemHandler.Health)

	// Form catalog (public, read-only)
	app.Get("/forms", formHandler.ListForms)
	app.Get("/forms/:formId", formHandler.GetForm)

	// Admin routes
	app.Post("/create-sheet", middleware.AuthAdmin(cfg), clientHandler.CreateSheet)

	// Client-facing routes
	app.Get("/client-forms", clientHandler.ClientForms)
	app.Post("/submit-form", submissionHandler.SubmitForm)

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

	if cfg.AdminAuthEnabled() {
		appLog.Info("authorizer will be initialized on first authenticated request", "url", cfg.AuthzURL)
	} else {
		appLog.Warn("admin authentication disabled, /create-sheet is unprotected")
	}

	// Graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		appLog.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	appLog.Info("starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Fatal("failed to start server", "error", err)
	}

	appLog.Info("server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
