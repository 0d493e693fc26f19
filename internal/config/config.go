package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI string
	DBName   string

	JWTSecret      string
	AccessTokenTTL time.Duration

	// BaseURL is the public storefront origin, used to build order view
	// links embedded in the outbound message.
	BaseURL        string
	AllowedOrigins []string

	RateLimitMax    int
	RateLimitWindow time.Duration

	// RedisAddr enables the Redis cart session store and the shared rate
	// limiter; empty keeps both process-local.
	RedisAddr    string
	CartTTL      time.Duration
	PublicDir    string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3BaseURL   string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "restobar"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		BaseURL:         getEnvOrDefault("BASE_URL", "http://localhost:3000"),
		AllowedOrigins:  getListEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		RateLimitMax:    getIntEnv("RATE_LIMIT_MAX", 10),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", 60, time.Second),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", ""),
		CartTTL:         getDurationEnv("CART_TTL", 72, time.Hour),
		PublicDir:       getEnvOrDefault("PUBLIC_DIR", "./public"),
		S3Endpoint:      getEnvOrDefault("S3_ENDPOINT", ""),
		S3AccessKey:     getEnvOrDefault("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnvOrDefault("S3_SECRET_KEY", ""),
		S3Bucket:        getEnvOrDefault("S3_BUCKET", ""),
		S3BaseURL:       getEnvOrDefault("S3_PUBLIC_BASE_URL", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

func getListEnv(key, defaultValue string) []string {
	raw := getEnvOrDefault(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
