package config

import (
	"os"
	"strconv"
)

type Config struct {
	BotToken          string
	OwnerID           int64
	AllowAnyoneUpload bool
	TimeZone          string
	DatabasePath      string
	Port              string
}

func Load() *Config {
	return &Config{
		BotToken:          getEnv("BOT_TOKEN", ""),
		OwnerID:           getEnvInt64("OWNER_ID", 0),
		AllowAnyoneUpload: getEnvBool("ALLOW_ANYONE_UPLOAD", false),
		TimeZone:          getEnv("SCHED_TZ", "Asia/Baghdad"),
		DatabasePath:      getEnv("DATABASE_PATH", "./roster.db"),
		Port:              getEnv("PORT", "3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
