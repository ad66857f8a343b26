package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// placeholderAPIKey is the value shipped in .env.example.
const placeholderAPIKey = "your_openai_api_key_here"

type Config struct {
	ServerPort    string
	Environment   string
	CORSOrigins   []string
	Location      *time.Location
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	AIMaxTokens   int
	AIRatePerSec  float64
	AIRateBurst   int
	StoreBackend  string
	CacheTTL      time.Duration
	MaxUploadSize int64

	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOBucket     string
	MinIOUseSSL     bool
	PresignedURLTTL time.Duration
}

func Load() *Config {
	cacheMinutes := getInt("CACHE_TTL_MINUTES", 10)
	presignedMinutes := getInt("PRESIGNED_URL_TTL_MINUTES", 15)
	useSSL, err := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	if err != nil {
		useSSL = false
	}
	rate, err := strconv.ParseFloat(getEnv("AI_RATE_PER_SECOND", "1"), 64)
	if err != nil || rate <= 0 {
		rate = 1
	}

	apiKey := getEnv("OPENAI_API_KEY", "")
	if apiKey == placeholderAPIKey {
		apiKey = ""
	}

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "5000"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGIN", "*")),
		Location:        loadLocation(getEnv("TIMEZONE", "Local")),
		OpenAIAPIKey:    apiKey,
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AIMaxTokens:     getInt("AI_MAX_TOKENS", 800),
		AIRatePerSec:    rate,
		AIRateBurst:     getInt("AI_RATE_BURST", 5),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", "memory")),
		CacheTTL:        time.Duration(cacheMinutes) * time.Minute,
		MaxUploadSize:   int64(getInt("MAX_UPLOAD_MB", 5)) << 20,
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", "minio:9000"),
		MinIOAccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:     getEnv("MINIO_BUCKET", "study-planner"),
		MinIOUseSSL:     useSSL,
		PresignedURLTTL: time.Duration(presignedMinutes) * time.Minute,
	}
}

// HasAPIKey reports whether an LLM key is configured.
func (c *Config) HasAPIKey() bool {
	return c.OpenAIAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, falling back to local zone: %v", name, err)
		return time.Local
	}
	return loc
}
