package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string
	SheetName string
	BatchSize int

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:    getEnv("SERVERS_DB_PATH", filepath.Join("data", "servers.db")),
		OutputDir: getEnv("OUTPUT_DIR", "out"),
		SheetName: getEnv("SERVERS_SHEET", ""),
		BatchSize: getEnvInt("SERVERS_BATCH_SIZE", 1000),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if cfg.BatchSize <= 0 {
		return Config{}, fmt.Errorf("SERVERS_BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}
	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required value: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
