package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// API
	API APIConfig

	// Pipeline
	Pipeline PipelineConfig

	// Report (scheduled)
	Report ReportConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// APIConfig holds HTTP API limits
type APIConfig struct {
	RateLimit       float64 // 초당 요청 수 (서버 전체)
	RateBurst       int
	MaxUploadBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// PipelineConfig holds pipeline runtime settings
type PipelineConfig struct {
	ConfigPath string // 수치 설정 YAML 경로 (비어 있으면 기본값)
	Horizon    int    // 기본 예측 기간 (개월). 0 이면 파이프라인 설정값 사용
}

// ReportConfig holds scheduled report settings
type ReportConfig struct {
	Schedule  string // cron 표현식 (비어 있으면 비활성)
	InputPath string // 매출 CSV 경로
	OutputDir string
}

// Enabled 리포트 스케줄 활성 여부
func (r ReportConfig) Enabled() bool {
	return r.Schedule != "" && r.InputPath != ""
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// API
		API: APIConfig{
			RateLimit:       getEnvAsFloat("API_RATE_LIMIT", 10),
			RateBurst:       getEnvAsInt("API_RATE_BURST", 20),
			MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5<<20)),
			ReadTimeout:     getEnvAsDuration("API_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("API_WRITE_TIMEOUT", "15s"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", "10s"),
		},

		// Pipeline
		Pipeline: PipelineConfig{
			ConfigPath: getEnv("PIPELINE_CONFIG", ""),
			Horizon:    getEnvAsInt("FORECAST_HORIZON", 0),
		},

		// Report
		Report: ReportConfig{
			Schedule:  getEnv("REPORT_SCHEDULE", ""),
			InputPath: getEnv("REPORT_INPUT", ""),
			OutputDir: getEnv("REPORT_OUTPUT_DIR", "reports"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Pipeline.Horizon < 0 || c.Pipeline.Horizon > 3 {
		return fmt.Errorf("FORECAST_HORIZON must be between 1 and 3 (or unset), got %d", c.Pipeline.Horizon)
	}

	if c.API.RateLimit <= 0 || c.API.RateBurst < 1 {
		return fmt.Errorf("API_RATE_LIMIT must be > 0 and API_RATE_BURST >= 1")
	}

	if c.API.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be > 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{".env"}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
