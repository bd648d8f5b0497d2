package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Token    TokenConfig
	App      AppConfig
	Pipeline PipelineConfig
	Schedule ScheduleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// TokenConfig holds service token configuration
type TokenConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PipelineConfig holds the ingest and export locations
type PipelineConfig struct {
	RosterPath string
	WeeksDir   string
	OutputDir  string
	Timezone   string
}

// ScheduleConfig controls the weekly trigger loop
type ScheduleConfig struct {
	Enabled       bool
	CheckInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_pipeline"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Service token configuration
	config.Token = TokenConfig{
		Secret: getEnv("API_TOKEN_SECRET", ""),
	}

	// Pipeline configuration
	config.Pipeline = PipelineConfig{
		RosterPath: getEnv("ROSTER_PATH", "data/users.json"),
		WeeksDir:   getEnv("WEEKS_DIR", "weeks"),
		OutputDir:  getEnv("OUTPUT_DIR", "out"),
		Timezone:   getEnv("PIPELINE_TZ", "America/Chicago"),
	}

	// Schedule configuration
	scheduleInterval, err := time.ParseDuration(getEnv("SCHEDULE_CHECK_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_CHECK_INTERVAL: %w", err)
	}

	config.Schedule = ScheduleConfig{
		Enabled:       getEnv("SCHEDULE_ENABLED", "true") == "true",
		CheckInterval: scheduleInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("API_TOKEN_SECRET is required")
	}
	if _, err := time.LoadLocation(c.Pipeline.Timezone); err != nil {
		return fmt.Errorf("invalid PIPELINE_TZ: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
