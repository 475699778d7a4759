package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/pfjus/Weather-Chatbot/internal/api/http"
	"github.com/pfjus/Weather-Chatbot/internal/assistant"
	"github.com/pfjus/Weather-Chatbot/internal/config"
	"github.com/pfjus/Weather-Chatbot/internal/generate"
	"github.com/pfjus/Weather-Chatbot/internal/scheduler"
	"github.com/pfjus/Weather-Chatbot/internal/session"
	"github.com/pfjus/Weather-Chatbot/internal/store"
	"github.com/pfjus/Weather-Chatbot/internal/weather"
	"github.com/pfjus/Weather-Chatbot/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Per-city snapshot cache; entries never expire by time.
	cache := store.NewSnapshotCache(cfg.CacheSize)

	// Provider with resilience (backoff + circuit breaker).
	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.WeatherLang)

	gateway := weather.NewGateway(provider, cache, cfg.CurrentTimeout, cfg.ForecastTimeout)

	// Optional text generation; without a model every reply is the local one.
	var gen generate.Generator = generate.Unavailable{}
	if cfg.OllamaModel != "" {
		// The generator carries its own per-call bound, so no client timeout.
		gen = generate.NewOllama(&http.Client{}, cfg.OllamaURL, cfg.OllamaModel, cfg.OllamaTimeout)
	}

	bot := assistant.New(gateway, gen)
	sessions := session.NewManager()

	// Scheduler that keeps configured cities warm in the cache.
	sched := scheduler.New(cfg.WarmCities, cfg.WarmInterval, gateway)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-assistant",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-assistant",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, bot, gateway, sessions)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
