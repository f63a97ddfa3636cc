package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: want 8080, got %q", cfg.Port)
	}
	if cfg.StorageDriver != DriverMemory {
		t.Errorf("StorageDriver: want memory, got %q", cfg.StorageDriver)
	}
	if cfg.Auth.AccessTokenTTL != 24*time.Hour {
		t.Errorf("AccessTokenTTL: want 24h, got %s", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled: want false by default")
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development environment by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_DRIVER":        " SQLite ",
		"ACCESS_TOKEN_TTL":      "30m",
		"REDIS_ENABLED":         "true",
		"REDIS_TOKEN_CACHE_TTL": "90s",
		"ENV":                   "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StorageDriver != DriverSQLite {
		t.Errorf("StorageDriver: want sqlite, got %q", cfg.StorageDriver)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Errorf("AccessTokenTTL: want 30m, got %s", cfg.Auth.AccessTokenTTL)
	}
	if !cfg.Redis.Enabled || cfg.Redis.TokenCacheTTL != 90*time.Second {
		t.Errorf("Redis: got %+v", cfg.Redis)
	}
	if cfg.IsDevelopment() {
		t.Error("production must not report development")
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver": {"STORAGE_DRIVER": "cassandra"},
		"zero ttl":       {"ACCESS_TOKEN_TTL": "0s"},
		"bad duration":   {"ACCESS_TOKEN_TTL": "soon"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
