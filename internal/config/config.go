package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and handed to the composition root.
type Config struct {
	Port        string
	DatabaseDSN string
	RedisAddr   string
	JWTSecret   string
	TokenTTL    time.Duration
	KafkaTopic  string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	return &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseDSN: getenv("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/ec-db?parseTime=true"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   getenv("JWT_SECRET", "secret"),
		TokenTTL:    ttl,
		KafkaTopic:  getenv("KAFKA_TOPIC", "order-topic"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
