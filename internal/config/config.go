package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	ContentDir  string
	BuildDir    string
	CORSOrigins string
	// Locale policy
	DefaultLocale string
	// Preview authentication (JWKS endpoint of the identity provider).
	// Empty disables preview auth entirely: drafts stay hidden.
	PreviewJWKSURL string
	// Watch enables the dev-mode content watcher (rescan on file change)
	Watch bool
	// LogDir mirrors the log stream into timestamped files when set
	LogDir string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		ContentDir:     getEnv("CONTENT_DIR", "content"),
		BuildDir:       getEnv("BUILD_DIR", "dist"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		DefaultLocale:  getEnv("DEFAULT_LOCALE", "en"),
		PreviewJWKSURL: getEnv("PREVIEW_JWKS_URL", ""),
		// Watching is a dev convenience - default on in dev only
		Watch:  getEnv("WATCH", getDefaultWatch(env)) == "true",
		LogDir: getEnv("LOG_DIR", ""),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultWatch returns the default watch setting based on environment
func getDefaultWatch(env string) string {
	if env == "dev" {
		return "true"
	}
	return "false"
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
