package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	MTNAPIKey          string
	MTNPayURL          string
	AirtelAPIKey       string
	AirtelPayURL       string
	ProviderTimeout    time.Duration
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitMax       int
	RateLimitWindow    time.Duration
	TrustProxy         bool
	CORSAllowedOrigins []string
	KafkaBrokers       []string
	KafkaTopic         string
	KafkaUsername      string
	KafkaPassword      string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// Missing provider keys are not an error; the caller decides whether to warn.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "3000"),
		MTNAPIKey:          os.Getenv("MTN_API_KEY"),
		MTNPayURL:          getEnv("MTN_PAY_URL", "https://mtn-api-endpoint.com/pay"),
		AirtelAPIKey:       os.Getenv("AIRTEL_API_KEY"),
		AirtelPayURL:       getEnv("AIRTEL_PAY_URL", "https://airtel-api-endpoint.com/pay"),
		ProviderTimeout:    time.Second * time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 0)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitMax:       getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow:    time.Minute * time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)),
		TrustProxy:         getEnvBool("TRUST_PROXY", false),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "donations"),
		KafkaUsername:      os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:      os.Getenv("KAFKA_PASSWORD"),
	}

	if cfg.ProviderTimeout < 0 {
		cfg.ProviderTimeout = 0
	}
	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 100
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = 15 * time.Minute
	}

	return cfg, nil
}

// EventsEnabled reports whether donation events should be published.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
