package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Cache.TTL != 168*time.Hour {
		t.Errorf("Cache.TTL = %v, want 168h", cfg.Cache.TTL)
	}
	if cfg.Catalog.PageSize != 25 {
		t.Errorf("Catalog.PageSize = %d, want 25", cfg.Catalog.PageSize)
	}
	if cfg.Matching.MinScoreThreshold != 0.55 {
		t.Errorf("Matching.MinScoreThreshold = %v, want 0.55", cfg.Matching.MinScoreThreshold)
	}
	if cfg.Matching.EnableDebugLogging {
		t.Error("Matching.EnableDebugLogging = true, want false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KASICHKA_SERVER_PORT", "9090")
	t.Setenv("KASICHKA_CATALOG_BASE_URL", "https://catalog.example.com")
	t.Setenv("KASICHKA_CATALOG_API_KEY", "secret")
	t.Setenv("KASICHKA_MATCHING_MIN_SCORE_THRESHOLD", "0.7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Catalog.BaseURL != "https://catalog.example.com" {
		t.Errorf("Catalog.BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.APIKey != "secret" {
		t.Errorf("Catalog.APIKey = %q", cfg.Catalog.APIKey)
	}
	if cfg.Matching.MinScoreThreshold != 0.7 {
		t.Errorf("Matching.MinScoreThreshold = %v, want 0.7", cfg.Matching.MinScoreThreshold)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Run("catalog URL without key is rejected", func(t *testing.T) {
		t.Setenv("KASICHKA_CATALOG_BASE_URL", "https://catalog.example.com")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() succeeded, want validation error")
		}
		if !strings.Contains(err.Error(), "API key") {
			t.Errorf("error = %v, want API key complaint", err)
		}
	})

	t.Run("out of range threshold is rejected", func(t *testing.T) {
		t.Setenv("KASICHKA_MATCHING_MIN_SCORE_THRESHOLD", "1.5")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() succeeded, want validation error")
		}
	})
}
