// Package config loads the portal configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is constructed once at startup and passed explicitly into each
// component. Nothing reads the environment after Load returns.
type Config struct {
	Port        string
	DBPath      string
	MediaRoot   string
	TemplateDir string
	BaseURL     string
	LogLevel    string

	SMTP SMTPConfig

	InitAdminUser string
	InitAdminPass string
}

// SMTPConfig holds the outbound mail settings for password-reset emails.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load reads .env if present, then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", filepath.Join("data", "portal.db")),
		MediaRoot:   getEnv("MEDIA_FOLDER", filepath.Join(mustGetwd(), "media")),
		TemplateDir: getEnv("TEMPLATE_DIR", filepath.Join("internal", "templates")),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", getEnv("SMTP_USER", "")),
		},
		InitAdminUser: getEnv("INIT_ADMIN_USER", "admin"),
		InitAdminPass: getEnv("INIT_ADMIN_PASS", "Admin12345"),
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
