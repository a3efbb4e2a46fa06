package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all process-wide settings. It is read once at startup and
// never mutated afterwards.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	MaxRequestBodySize int64

	Vision VisionConfig
}

// VisionConfig addresses the remote vision services: the GCP project and
// region hosting them, the deployed classification endpoint, and the
// maximum accepted decoded image size.
type VisionConfig struct {
	Project      string
	Location     string
	EndpointID   string
	MaxImageSize int
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// PredictionAPIEndpoint returns the regional API host of the prediction
// service.
func (v VisionConfig) PredictionAPIEndpoint() string {
	return fmt.Sprintf("%s-aiplatform.googleapis.com:443", v.Location)
}

// ModelEndpointPath returns the fully qualified resource name of the
// deployed classification endpoint.
func (v VisionConfig) ModelEndpointPath() string {
	return fmt.Sprintf("projects/%s/locations/%s/endpoints/%s", v.Project, v.Location, v.EndpointID)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		Vision: VisionConfig{
			Project:      getEnvOrDefault("GCP_PROJECT", "ck-vertex"),
			Location:     getEnvOrDefault("GCP_LOCATION", "us-central1"),
			EndpointID:   getEnvOrDefault("VERTEX_ENDPOINT_ID", "6057421763162144768"),
			MaxImageSize: int(parseIntOrDefault("MAX_IMAGE_SIZE", 1_500_000)), // 1.5MB
		},
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", cfg.RequestTimeout)
	}
	if cfg.Vision.MaxImageSize <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_SIZE must be > 0 (got %d)", cfg.Vision.MaxImageSize)
	}
	if cfg.Vision.Project == "" || cfg.Vision.Location == "" || cfg.Vision.EndpointID == "" {
		return nil, fmt.Errorf("GCP_PROJECT, GCP_LOCATION and VERTEX_ENDPOINT_ID must be set")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
