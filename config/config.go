package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Sanity        SanityConfig
	Revalidate    RevalidateConfig
	Trustpilot    TrustpilotConfig
	Storage       StorageConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

// SanityConfig holds connection parameters for the headless content store.
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
}

// RevalidateConfig holds the shared secret for the content revalidation
// webhook. An empty Secret is not a startup error: the endpoint answers
// 500 until one is configured.
type RevalidateConfig struct {
	Secret string
}

type TrustpilotConfig struct {
	BusinessID string
	APIKey     string
}

type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	ContentTTLSeconds int // Content cache TTL in seconds
	ReviewsTTLSeconds int // Reviews cache TTL in seconds
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://taycraftjoinery.co.uk")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://taycraftjoinery.co.uk,https://www.taycraftjoinery.co.uk")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("SANITY_DATASET", "production")
	v.SetDefault("SANITY_API_VERSION", "2023-08-01")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // OTLP over HTTP, empty disables tracing
	v.SetDefault("O11Y_SERVICE_NAME", "joinery-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "taycraft")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "joinery-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("CONTENT_CACHE_TTL", 3600) // 1 hour in seconds
	v.SetDefault("REVIEWS_CACHE_TTL", 900)  // 15 minutes in seconds

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Sanity: SanityConfig{
			ProjectID:  v.GetString("SANITY_PROJECT_ID"),
			Dataset:    v.GetString("SANITY_DATASET"),
			APIVersion: v.GetString("SANITY_API_VERSION"),
			Token:      v.GetString("SANITY_API_READ_TOKEN"),
		},
		Revalidate: RevalidateConfig{
			Secret: v.GetString("SANITY_REVALIDATE_SECRET"),
		},
		Trustpilot: TrustpilotConfig{
			BusinessID: v.GetString("TRUSTPILOT_BUSINESS_ID"),
			APIKey:     v.GetString("TRUSTPILOT_API_KEY"),
		},
		Storage: StorageConfig{
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			ContentTTLSeconds: v.GetInt("CONTENT_CACHE_TTL"),
			ReviewsTTLSeconds: v.GetInt("REVIEWS_CACHE_TTL"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	// Content store configuration
	if c.Sanity.ProjectID == "" {
		return fmt.Errorf("SANITY_PROJECT_ID is required")
	}
	if c.Sanity.Dataset == "" {
		return fmt.Errorf("SANITY_DATASET is required")
	}

	// Attachment storage is optional, but partial credentials are a
	// misconfiguration rather than "disabled"
	if (c.Storage.AccessKeyID == "") != (c.Storage.SecretAccessKey == "") {
		return fmt.Errorf("STORAGE_ACCESS_KEY_ID and STORAGE_SECRET_ACCESS_KEY must be set together")
	}
	if c.Storage.AccessKeyID != "" && c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET_NAME is required when storage credentials are set")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// StorageEnabled reports whether the attachment object store is configured.
func (c *Config) StorageEnabled() bool {
	return c.Storage.AccessKeyID != "" && c.Storage.SecretAccessKey != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
