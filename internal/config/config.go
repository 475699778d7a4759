package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// WeatherLang is the description language requested from the provider.
	// The clothing advisor's substring checks assume this language.
	WeatherLang string

	// Outbound call bounds. Forecast calls return more data and may take longer.
	CurrentTimeout  time.Duration
	ForecastTimeout time.Duration
	HTTPTimeout     time.Duration

	// Ollama text generation. An empty model disables generation entirely.
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration

	// Per-city snapshot cache size (most-recently-used distinct cities).
	CacheSize int

	// Cities to keep warm in the cache, refreshed on WarmInterval.
	// Empty list disables the warm job.
	WarmCities   []string
	WarmInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherLang = getenvDefault("WEATHER_LANG", "en")

	var err error
	if cfg.CurrentTimeout, err = getenvDuration("CURRENT_TIMEOUT", "6s"); err != nil {
		return nil, err
	}
	if cfg.ForecastTimeout, err = getenvDuration("FORECAST_TIMEOUT", "8s"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.OllamaURL = getenvDefault("OLLAMA_URL", "http://localhost:11434")
	cfg.OllamaModel = os.Getenv("OLLAMA_MODEL")
	if cfg.OllamaTimeout, err = getenvDuration("OLLAMA_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	cfg.CacheSize = getenvInt("CACHE_SIZE", 64)

	if warm := os.Getenv("WARM_CITIES"); warm != "" {
		for _, city := range strings.Split(warm, ",") {
			if city = strings.TrimSpace(city); city != "" {
				cfg.WarmCities = append(cfg.WarmCities, city)
			}
		}
	}
	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
