package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Env         string
	Server      ServerConfig
	Redis       RedisConfig
	MLAPI       MLAPIConfig
	Mock        MockConfig
	Sign        SignConfig
	Translation TranslationConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// MLAPIConfig holds the addresses of the external prediction services
type MLAPIConfig struct {
	URL       string
	LegacyURL string
	Timeout   time.Duration
}

// MockConfig holds the simulated latencies of the mock stubs
type MockConfig struct {
	PredictionDelay       time.Duration
	VoiceDelay            time.Duration
	TranslationVoiceDelay time.Duration
	SignLoadDelay         time.Duration
	SignInferenceDelay    time.Duration
}

// SignConfig holds sign detection settings
type SignConfig struct {
	FrameInterval time.Duration
	RandomSeed    uint64
}

// TranslationConfig holds translation dictionary settings
type TranslationConfig struct {
	DictionaryPath string
}

// RateLimitConfig holds per-client rate limit settings
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// CORSConfig holds allowed origins
type CORSConfig struct {
	AllowedOrigins []string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env: getEnv("ENV", "production"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		MLAPI: MLAPIConfig{
			URL:       strings.TrimRight(getEnv("ML_API_URL", "http://localhost:8001"), "/"),
			LegacyURL: strings.TrimRight(getEnv("LEGACY_ML_API_URL", "http://localhost:8000"), "/"),
			Timeout:   getEnvAsDuration("ML_API_TIMEOUT", 10*time.Second),
		},
		Mock: MockConfig{
			PredictionDelay:       getEnvAsDuration("MOCK_PREDICTION_DELAY", 2*time.Second),
			VoiceDelay:            getEnvAsDuration("MOCK_VOICE_DELAY", 3*time.Second),
			TranslationVoiceDelay: getEnvAsDuration("MOCK_TRANSLATION_VOICE_DELAY", 2*time.Second),
			SignLoadDelay:         getEnvAsDuration("MOCK_SIGN_LOAD_DELAY", 1500*time.Millisecond),
			SignInferenceDelay:    getEnvAsDuration("MOCK_SIGN_INFERENCE_DELAY", 300*time.Millisecond),
		},
		Sign: SignConfig{
			FrameInterval: getEnvAsDuration("SIGN_FRAME_INTERVAL", 33*time.Millisecond),
			RandomSeed:    uint64(getEnvAsInt("SIGN_RANDOM_SEED", 0)),
		},
		Translation: TranslationConfig{
			DictionaryPath: getEnv("TRANSLATION_DICTIONARY_PATH", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 5),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "carebridge"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	if c.Sign.FrameInterval <= 0 {
		return fmt.Errorf("SIGN_FRAME_INTERVAL must be positive, got %s", c.Sign.FrameInterval)
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive (rps=%v burst=%d)", c.RateLimit.RequestsPerSecond, c.RateLimit.Burst)
	}
	return nil
}

// Address returns the listen address of the HTTP server
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
