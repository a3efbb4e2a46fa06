package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "REQUEST_TIMEOUT", "MAX_REQUEST_BODY_SIZE",
		"GCP_PROJECT", "GCP_LOCATION", "VERTEX_ENDPOINT_ID", "MAX_IMAGE_SIZE"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Expected default address 0.0.0.0:8080, got %s", cfg.ServerAddress())
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout 30s, got %s", cfg.RequestTimeout)
	}
	if cfg.Vision.MaxImageSize != 1_500_000 {
		t.Errorf("Expected default max image size 1500000, got %d", cfg.Vision.MaxImageSize)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "10s")
	t.Setenv("GCP_PROJECT", "my-project")
	t.Setenv("GCP_LOCATION", "europe-west4")
	t.Setenv("VERTEX_ENDPOINT_ID", "12345")
	t.Setenv("MAX_IMAGE_SIZE", "2000000")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("Expected request timeout 10s, got %s", cfg.RequestTimeout)
	}
	if cfg.Vision.MaxImageSize != 2_000_000 {
		t.Errorf("Expected max image size 2000000, got %d", cfg.Vision.MaxImageSize)
	}

	wantEndpoint := "europe-west4-aiplatform.googleapis.com:443"
	if got := cfg.Vision.PredictionAPIEndpoint(); got != wantEndpoint {
		t.Errorf("Expected prediction endpoint %s, got %s", wantEndpoint, got)
	}
	wantPath := "projects/my-project/locations/europe-west4/endpoints/12345"
	if got := cfg.Vision.ModelEndpointPath(); got != wantPath {
		t.Errorf("Expected model endpoint path %s, got %s", wantPath, got)
	}
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}

func TestLoadFromEnv_InvalidMaxImageSize(t *testing.T) {
	t.Setenv("MAX_IMAGE_SIZE", "-1")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for non-positive MAX_IMAGE_SIZE")
	}
}
