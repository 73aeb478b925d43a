package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL         string
	OutputDir       string
	DatabaseURL     string
	RedisURL        string
	MetricsPort     string
	PageDelay       time.Duration
	PageRetryBudget int
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		BaseURL:         getEnv("AMAZON_BASE_URL", "https://www.amazon.com"),
		OutputDir:       getEnv("OUTPUT_DIR", "amazon_CSV_files"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		MetricsPort:     getEnv("METRICS_PORT", "9090"),
		PageDelay:       time.Duration(getEnvInt("PAGE_DELAY_MS", 2000)) * time.Millisecond,
		PageRetryBudget: getEnvInt("PAGE_RETRY_BUDGET", 3),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}
