package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	APIKeyVar         = "OPENAI_API_KEY"
	DefaultOpenAIBase = "https://api.openai.com"
)

type Env struct {
	AppAddr        string
	GinMode        string
	LogMode        string
	AllowedOrigins []string
	OpenAIBaseURL  string
	MetricsEnabled bool
	OtelEnabled    bool
	OtelEndpoint   string
	ServiceName    string
}

// LoadDotEnv reads .env files into the process environment when present.
// Variables already set win over the file.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")), "/")
	if baseURL == "" {
		baseURL = DefaultOpenAIBase
	}

	serviceName := strings.TrimSpace(os.Getenv("OTEL_SERVICE_NAME"))
	if serviceName == "" {
		serviceName = "tripplanbuddy"
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		LogMode:        strings.TrimSpace(os.Getenv("LOG_MODE")),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		OpenAIBaseURL:  baseURL,
		MetricsEnabled: parseBool(os.Getenv("METRICS_ENABLED")),
		OtelEnabled:    parseBool(os.Getenv("OTEL_ENABLED")),
		OtelEndpoint:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		ServiceName:    serviceName,
	}
}

// OpenAIKey reads the completion-service credential at call time so that
// rotating it does not need a restart.
func OpenAIKey() string {
	return strings.TrimSpace(os.Getenv(APIKeyVar))
}

func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
