package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ADDRESS", "ENV", "LOG_LEVEL", "LOG_RETENTION_WEEKS",
		"MAX_REQUEST_BODY", "MAX_HEADER_SIZE", "SESSION_SECRET",
		"SESSION_TTL_HOURS", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != "dev" {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("Expected 12h session TTL, got %v", cfg.SessionTTL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("Expected wildcard origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"privileged port", "PORT", "80"},
		{"non-numeric port", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"bad address", "ADDRESS", "not-an-ip"},
		{"unknown env", "ENV", "production"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"retention too long", "LOG_RETENTION_WEEKS", "53"},
		{"body limit too small", "MAX_REQUEST_BODY", "512"},
		{"body limit too large", "MAX_REQUEST_BODY", "209715200"},
		{"session ttl too long", "SESSION_TTL_HOURS", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Expected Load to reject %s=%s", tt.key, tt.value)
			}
		})
	}
}

// TestSessionSecretPolicy verifies the default secret is dev-only.
func TestSessionSecretPolicy(t *testing.T) {
	t.Run("default secret fine in dev", func(t *testing.T) {
		clearEnv(t)
		if _, err := Load(); err != nil {
			t.Errorf("Expected success, got %v", err)
		}
	})

	t.Run("default secret rejected in prod", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "prod")
		if _, err := Load(); err == nil {
			t.Error("Expected the default secret to be rejected in prod")
		}
	})

	t.Run("short secret rejected in prod", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "prod")
		t.Setenv("SESSION_SECRET", "short")
		if _, err := Load(); err == nil {
			t.Error("Expected a short secret to be rejected in prod")
		}
	})

	t.Run("strong secret accepted in prod", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "prod")
		t.Setenv("SESSION_SECRET", "a-strong-secret-of-adequate-length")
		if _, err := Load(); err != nil {
			t.Errorf("Expected success, got %v", err)
		}
	})
}

func TestAllowedOriginsList(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.org, https://staging.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("Expected 2 origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[1] != "https://staging.example.org" {
		t.Errorf("Origins should be trimmed, got %q", cfg.AllowedOrigins[1])
	}
}
