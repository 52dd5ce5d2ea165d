package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver string // "sqlite" or "postgres"
	DBUrl    string

	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	TokenTTLMin   int
	SessionSecret string
	SessionTTLMin int

	ServerPort string
	LogLevel   string
}

func Load() *Config {
	// Missing .env is fine, env vars still apply.
	_ = godotenv.Load()

	return &Config{
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBUrl:    getEnv("DATABASE_URL", "data/appointments.db"),

		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTIssuer:     getEnv("JWT_ISSUER", "appointment-api"),
		JWTAudience:   getEnv("JWT_AUDIENCE", "appointment-clients"),
		TokenTTLMin:   getEnvInt("TOKEN_TTL_MINUTES", 60),
		SessionSecret: getEnv("SESSION_SECRET", "changeme-session"),
		SessionTTLMin: getEnvInt("SESSION_TTL_MINUTES", 30),

		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
