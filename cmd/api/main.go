package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ibarra/sarscope/internal/adapters/asf"
	"github.com/ibarra/sarscope/internal/adapters/http"
	"github.com/ibarra/sarscope/internal/adapters/imagga"
	"github.com/ibarra/sarscope/internal/adapters/openai"
	"github.com/ibarra/sarscope/internal/core/usecases"
	"github.com/ibarra/sarscope/internal/pkg/config"
	"github.com/ibarra/sarscope/internal/pkg/logging"
	"github.com/ibarra/sarscope/internal/pkg/telemetry"
)

func main() {
	_ = godotenv.Load() // OK if no .env

	cfg, err := config.Load("sarscope-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Credentials: Imagga blocks lookups when absent, OpenAI only degrades.
	if !cfg.Imagga.Configured() {
		slog.Warn("imagga credentials missing; lookup requests will be rejected")
	}
	if cfg.OpenAI.APIKey == "" {
		slog.Warn("openai api key missing; explanations will degrade to the fallback text")
	}

	// Upstream clients
	catalog := asf.NewClient(asf.ClientOpts{
		BaseURL: cfg.ASF.BaseURL,
		Timeout: time.Duration(cfg.ASF.Timeout) * time.Second,
	})
	vision := imagga.NewClient(imagga.ClientOpts{
		BaseURL:   cfg.Imagga.BaseURL,
		APIKey:    cfg.Imagga.APIKey,
		APISecret: cfg.Imagga.APISecret,
		Timeout:   time.Duration(cfg.Imagga.Timeout) * time.Second,
	})
	llm := openai.NewClient(openai.ClientOpts{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		Timeout: time.Duration(cfg.OpenAI.Timeout) * time.Second,
	})

	deps := &http.Dependencies{
		Lookup:           usecases.NewLookupService(catalog, vision, llm),
		VisionConfigured: cfg.Imagga.Configured(),
		LLMConfigured:    cfg.OpenAI.APIKey != "",
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024, // coordinate payloads are tiny
		AppName:      "SARScope API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
