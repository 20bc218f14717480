package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"media-journal/ai"
	"media-journal/app"
	"media-journal/config"
	"media-journal/database"
	"media-journal/handlers"
	"media-journal/middleware"
	"media-journal/repository"
	"media-journal/services"
	"media-journal/storage"
)

func main() {
	config.Load()

	logger := setupLogger()
	slog.SetDefault(logger)

	// The local engine is always opened; it serves as the fallback when the
	// hosted backend is not configured or fails to construct.
	db, err := database.New(config.AppConfig.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database initialized", "path", config.AppConfig.DBPath)

	store := storage.New(db.DB, storage.Config{
		SupabaseURL: config.AppConfig.SupabaseURL,
		SupabaseKey: config.AppConfig.SupabaseKey,
	}, logger)

	repos := repository.New(store, db, logger)

	gateway := ai.New(config.AppConfig.OpenAIAPIKey, logger)
	if gateway.MockMode() {
		logger.Info("AI gateway running in mock mode")
	}

	mediaService := services.NewMediaService(repos.Media, logger)
	noteService := services.NewNoteService(repos.Notes, repos.Media, gateway, logger)
	diveService := services.NewDiveService(repos.Dives, repos.Media, repos.Notes, gateway, logger)

	a := app.New(mediaService, noteService, diveService, store, logger)

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 30,
		WriteTimeout:          time.Second * 30,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: config.AppConfig.Env == "production",
		ErrorHandler:          customErrorHandler(logger),
	})

	fiberApp.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept,Authorization",
			MaxAge:       86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "backend": a.Store.Backend()})
	})

	api := fiberApp.Group("/api/v1")

	media := api.Group("/media")
	media.Post("/", handlers.CreateMedia(a))
	media.Get("/", handlers.ListMedia(a))
	media.Get("/:id", handlers.GetMedia(a))
	media.Put("/:id", handlers.UpdateMedia(a))
	media.Delete("/:id", handlers.DeleteMedia(a))

	notes := api.Group("/notes")
	notes.Post("/", handlers.CreateNote(a))
	notes.Get("/", handlers.ListNotes(a))
	notes.Get("/:id", handlers.GetNote(a))
	notes.Put("/:id", handlers.UpdateNote(a))
	notes.Delete("/:id", handlers.DeleteNote(a))

	dives := api.Group("/deep-dive")
	dives.Post("/", handlers.CreateDeepDive(a))
	dives.Get("/", handlers.ListDeepDives(a))
	dives.Get("/:id", handlers.GetDeepDive(a))
	dives.Delete("/:id", handlers.DeleteDeepDive(a))

	logger.Info("starting server", "port", config.AppConfig.Port, "env", config.AppConfig.Env)

	go func() {
		if err := fiberApp.Listen(":" + config.AppConfig.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func setupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: config.AppConfig.Env == "development",
	}

	if config.AppConfig.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	switch config.GetEnv("LOG_LEVEL", "info") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func customErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		logger.Error("request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
