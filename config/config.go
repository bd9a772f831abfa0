package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings holds the environment-driven configuration. Load is called once
// at startup after godotenv has populated the process environment.
type Settings struct {
	Port               string
	DatabaseURL        string
	CORSOrigins        []string
	ESP32BaseURL       string
	ESP32Timeout       time.Duration
	RuntimeModeDefault string
	AllowLiveFallback  bool
	JWTSecret          string
}

// App is the global settings instance.
var App Settings

func Load() {
	App = Settings{
		Port:               getEnv("PORT", "8000"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8501")),
		ESP32BaseURL:       getEnv("ESP32_BASE_URL", "http://192.168.1.100"),
		ESP32Timeout:       time.Duration(getEnvInt("ESP32_TIMEOUT", 10)) * time.Second,
		RuntimeModeDefault: strings.ToLower(getEnv("RUNTIME_MODE_DEFAULT", "live")),
		AllowLiveFallback:  getEnvBool("ALLOW_LIVE_FALLBACK", false),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true"
	}
	return fallback
}

func splitCSV(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
