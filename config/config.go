package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort string
	HOST    string
	DBPath  string

	// JWT Settings
	JWTSecret  string
	JWTExpires time.Duration

	// Auth Settings
	BcryptCost       int
	MaxLoginAttempts int
	LoginWindow      time.Duration

	// Global Rate Limit
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Uploads
	UploadDir         string
	MaxFileSize       int64
	AllowedImageTypes []string

	// CORS Settings
	CORSAllowOrigins string
	CORSAllowMethods string
	CORSAllowHeaders string
}

func LoadConfig() *Config {
	// .env is optional; deployments may set env vars directly
	_ = godotenv.Load()

	config := &Config{
		AppPort: getEnv("PORT", "3000"),
		HOST:    getEnv("HOST", ""),
		DBPath:  getEnv("DB_PATH", "db/omnixius.db"),

		JWTSecret:  getEnv("JWT_SECRET", "omnixius-dev-secret-change-in-production"),
		JWTExpires: getDuration("JWT_EXPIRES", 168*time.Hour),

		BcryptCost:       getInt("BCRYPT_COST", 12),
		MaxLoginAttempts: getInt("MAX_LOGIN_ATTEMPTS", 5),
		LoginWindow:      getDuration("LOGIN_WINDOW", 15*time.Minute),

		RateLimitMax:    getInt("RATE_LIMIT_MAX", 200),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),

		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		MaxFileSize:       int64(getInt("MAX_FILE_SIZE", 5*1024*1024)),
		AllowedImageTypes: strings.Split(getEnv("ALLOWED_IMAGE_TYPES", "image/jpeg,image/png,image/webp"), ","),

		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		CORSAllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		CORSAllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}

	return config
}

// ImageTypeAllowed reports whether the given MIME type may be uploaded.
func (c *Config) ImageTypeAllowed(mime string) bool {
	for _, t := range c.AllowedImageTypes {
		if strings.EqualFold(strings.TrimSpace(t), mime) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
