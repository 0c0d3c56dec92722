package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Workers     int
	HoursPerDay decimal.Decimal
	LogLevel    string
	LogFormat   string
}

// Load reads an optional .env file, then the environment.
func Load() Config {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	return Config{
		Workers:     getEnvInt("PAYROLL_WORKERS", 4),
		HoursPerDay: getEnvDecimal("PAYROLL_HOURS_PER_DAY", decimal.NewFromInt(8)),
		LogLevel:    getEnv("PAYROLL_LOG_LEVEL", "info"),
		LogFormat:   strings.ToLower(getEnv("PAYROLL_LOG_FORMAT", "text")),
	}
}

// Logger builds a logrus logger writing to stderr.
func (c Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil || !parsed.IsPositive() {
		return fallback
	}
	return parsed
}
