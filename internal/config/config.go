package config

import (
	"os"
	"strconv"
	"strings"
)

type PresentationServiceConfig struct {
	Port       string
	RedisCfg   RedisConfig
	MinioCfg   MinioConfig
	AuthCfg    AuthConfig
	StorageCfg StorageConfig
	OpenAICfg  OpenAIConfig
	GeminiCfg  GeminiAPIConfig
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioURL       string
	MinioAccessKey string
	MinioSecretKey string
	MinioLocation  string
	MinioSecure    string
}

type AuthConfig struct {
	JWTSecret       string
	APIKeys         []string
	TokenTTLMinutes int
}

type StorageConfig struct {
	// Backend selects where generated decks live: "local" or "minio".
	Backend string
	Path    string
	Bucket  string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GeminiAPIConfig struct {
	APIKey    string
	ModelName string
}

// SynthesizerProvider returns which AI backend generates slide content
// from extracted document text: "openai" (default) or "gemini".
func (c *PresentationServiceConfig) SynthesizerProvider() string {
	if c.GeminiCfg.APIKey != "" && c.OpenAICfg.APIKey == "" {
		return "gemini"
	}
	return getEnvOrDefault("AI_PROVIDER", "openai")
}

func New() *PresentationServiceConfig {
	return &PresentationServiceConfig{
		Port: getEnvOrDefault("PORT", "8080"),
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		MinioCfg: MinioConfig{
			MinioURL:       getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9000"),
			MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:  getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:    getEnvOrDefault("MINIO_SECURE", "false"),
		},
		AuthCfg: AuthConfig{
			JWTSecret:       getEnvOrDefault("JWT_SECRET", "change-this-in-production"),
			APIKeys:         splitAPIKeys(getEnvOrDefault("API_KEYS", "demo-api-key-12345,client-api-key-67890")),
			TokenTTLMinutes: getEnvIntOrDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		},
		StorageCfg: StorageConfig{
			Backend: getEnvOrDefault("STORAGE_BACKEND", "local"),
			Path:    getEnvOrDefault("STORAGE_PATH", "./storage"),
			Bucket:  getEnvOrDefault("STORAGE_BUCKET", "presentations"),
		},
		OpenAICfg: OpenAIConfig{
			APIKey:  getEnvOrDefault("OPENAI_API_KEY", ""),
			BaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
			Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
		},
		GeminiCfg: GeminiAPIConfig{
			APIKey:    getEnvOrDefault("GEMINI_KEY", ""),
			ModelName: getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-pro"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func splitAPIKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}
