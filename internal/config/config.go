package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// GeminiKeyPlaceholder is the value shipped in .env.example; treating it the
// same as an empty key keeps a fresh checkout from silently sending it.
const GeminiKeyPlaceholder = "TU_GEMINI_API_KEY_AQUI"

var AppEnv Config

type Config struct {
	MongoURI string
	DBName   string
	// AppID scopes every document so several storefronts can share a cluster.
	AppID     string
	JWTSecret string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	ImageMaxDimension int
	ImageJPEGQuality  int

	CheckoutDelay time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env not loaded")
	}
	AppEnv = Config{
		MongoURI:          getEnvOrDefault("MONGO_URI", ""),
		DBName:            getEnvOrDefault("DB_NAME", "modaai"),
		AppID:             getEnvOrDefault("APP_ID", "moda-ai-chile"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		GeminiAPIKey:      getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:       getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash-image-preview"),
		GeminiBaseURL:     getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		ImageMaxDimension: getIntEnv("IMAGE_MAX_DIMENSION", 1024),
		ImageJPEGQuality:  getIntEnv("IMAGE_JPEG_QUALITY", 70),
		CheckoutDelay:     getDurationEnv("CHECKOUT_DELAY_MS", 2500, time.Millisecond),
	}
}

// GeminiReady reports whether AI generation can be attempted at all. A missing
// or placeholder key is a configuration error surfaced to the admin instead of
// a silent per-phase failure.
func (c Config) GeminiReady() error {
	key := strings.TrimSpace(c.GeminiAPIKey)
	if key == "" {
		return errors.New("falta configurar la GEMINI_API_KEY")
	}
	if key == GeminiKeyPlaceholder {
		return errors.New("GEMINI_API_KEY todavía tiene el valor de ejemplo")
	}
	return nil
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
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
