package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	ActorID         string
	LogLevel        string
	LogPath         string
	LogMaxSizeMB    int
	LogMaxBackups   int
	LogMaxAgeDays   int
	LogCompress     bool
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		ActorID:         getEnv("ACTOR_ID", "user-1"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPath:         getEnv("LOG_PATH", ""),
		LogMaxSizeMB:    getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:   getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:   getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:     getEnvBool("LOG_COMPRESS", false),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s: %q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Invalid boolean for %s: %q, using %t", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s: %q, using %s", key, value, defaultValue)
	}
	return defaultValue
}
