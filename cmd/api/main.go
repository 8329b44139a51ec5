package main

import (
	"fmt"

	"ai-study-buddy/config"
	"ai-study-buddy/internal/api/chat"
	"ai-study-buddy/internal/api/healthcheck"
	"ai-study-buddy/internal/core/assistant"
	"ai-study-buddy/internal/core/gemini"
	"ai-study-buddy/internal/database"
	"ai-study-buddy/internal/middleware"
	"ai-study-buddy/internal/usage"
	"ai-study-buddy/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

func main() {
	app := fiber.New(fiber.Config{
		AppName:   config.Cfg.Server.AppName,
		BodyLimit: config.Cfg.Server.BodyLimit,
	})

	app.Use(middleware.PanicRecovery())
	app.Use(middleware.ConnectionLimit(config.Cfg.Server.Concurrency))

	// Usage counters live in MySQL; the API still serves without them.
	if db, err := database.GetDB(); err != nil {
		logger.Error(err, "%v: database unavailable at startup", config.ModuleDatabase)
	} else if err := usage.Migrate(db); err != nil {
		logger.Error(err, "%v: usage migration failed", config.ModuleUsage)
	}

	client := gemini.NewClient(
		config.Cfg.Gemini.BaseURL,
		config.Cfg.Gemini.Model,
		config.Cfg.Gemini.Key,
	)
	svc := assistant.NewService(client)
	handler := chat.NewHandler(svc, usage.NewRepository())

	// routes
	healthcheck.RegisterRoutes(app)
	chat.RegisterRoutes(app, handler)

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "%v: server error", config.ModuleServer)
	}
}
