package config

import (
	"os"
	"strings"
	"time"

	"resume-analyzer/internal/shared/telemetry"
)

const (
	defaultLLMBaseURL = "https://api.groq.com/openai/v1"
	defaultLLMModel   = "deepseek-r1-distill-qwen-32b"
	defaultAWSRegion  = "us-east-1"
	defaultTable      = "resume_analyses"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	LLMAPIKey         string
	LLMBaseURL        string
	LLMModel          string
	LLMTimeout        time.Duration
	PersistBackend    string
	DynamoTable       string
	AWSRegion         string
	AWSAccessKeyID    string
	AWSSecretKey      string
	DatabaseURL       string
	ArchiveStoreType  string
	LocalStoreDir     string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	LogLevel          string
	LogFormat         string
	StartupDiagnostic bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	apiKey := getEnv("GROQ_API_KEY", os.Getenv("LLM_API_KEY"))

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LLMAPIKey:         strings.TrimSpace(apiKey),
		LLMBaseURL:        strings.TrimRight(getEnv("LLM_BASE_URL", defaultLLMBaseURL), "/"),
		LLMModel:          getEnv("LLM_MODEL", defaultLLMModel),
		LLMTimeout:        getDuration("LLM_TIMEOUT", 0),
		PersistBackend:    normalizeBackend(getEnv("PERSIST_BACKEND", "none")),
		DynamoTable:       getEnv("DYNAMODB_TABLE", defaultTable),
		AWSRegion:         getEnv("AWS_REGION", defaultAWSRegion),
		AWSAccessKeyID:    os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:      os.Getenv("AWS_SECRET_ACCESS_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ArchiveStoreType:  normalizeStoreType(getEnv("ARCHIVE_STORE", "none")),
		LocalStoreDir:     getEnv("LOCAL_STORE_DIR", "./data"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		StartupDiagnostic: getBool("STARTUP_DIAGNOSTIC", false),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val < 0 {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dynamodb", "dynamo":
		return "dynamodb"
	case "postgres", "pg":
		return "postgres"
	case "memory":
		return "memory"
	default:
		return "none"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "local":
		return "local"
	default:
		return "none"
	}
}
