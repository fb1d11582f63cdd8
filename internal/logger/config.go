package logger

import (
	"io"
	"os"
	"strconv"
)

// Config holds logger configuration.
type Config struct {
	Level       string    // debug, info, warn, error
	Format      string    // json, text
	Output      io.Writer // explicit destination; overrides file settings
	ServiceName string    // value of the "service" field

	// Environment is local, dev or prod. File output is only used outside local.
	Environment string

	LogFile     string
	LogFileOnly bool // skip stdout when a file is configured

	// Rotation, passed through to lumberjack
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// DefaultConfig returns defaults suitable for local runs.
func DefaultConfig() *Config {
	return &Config{
		Level:       "info",
		Format:      "json",
		Output:      os.Stdout,
		ServiceName: "captioner",
		Environment: "local",
	}
}

// LoadFromEnv reads logger configuration from environment variables.
// Returns:
//   - *Config: configuration with defaults for unset variables.
func LoadFromEnv() *Config {
	return &Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Format:      getEnv("LOG_FORMAT", "json"),
		ServiceName: getEnv("SERVICE_NAME", "captioner"),
		Environment: getEnv("APP_ENV", "local"),

		LogFile:     getEnv("LOG_FILE", "/var/log/captioner/app.log"),
		LogFileOnly: getEnvBool("LOG_FILE_ONLY", false),

		MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
		MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 7),
		MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
		Compress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return i
}
