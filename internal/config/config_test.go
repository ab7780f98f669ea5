package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_ADDRESS", "STORE_DRIVER", "STORE_PATH",
		"JWT_SECRET", "TOKEN_TTL",
		"SEED_ADMIN_EMAIL", "SEED_ADMIN_PASSWORD", "SEED_ADMIN_NAME",
		"SEED_TEST_PHARMACY", "SEED_TEST_PHARMACY_EMAIL", "SEED_TEST_PHARMACY_PASSWORD",
		"RESEND_API_KEY", "RESEND_BASE_URL", "EMAIL_FROM", "ADMIN_NOTIFY_EMAIL",
		"NOTIFY_QUEUE_SIZE", "NOTIFY_WORKERS", "LOGS_DIRECTORY",
	} {
		// t.Setenv registers cleanup restoring the original value.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatalf("Load() succeeded without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "super-secret")
	if _, err := Load(); err == nil {
		t.Fatalf("Load() succeeded without SEED_ADMIN_PASSWORD")
	}

	t.Setenv("SEED_ADMIN_PASSWORD", "Adm1n!Pass")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Auth.JWTSecret != "super-secret" || cfg.Seed.AdminPassword != "Adm1n!Pass" {
		t.Fatalf("secrets not loaded: %+v", cfg.Auth)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults() = %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Store.Driver != "memory" || cfg.Store.Path != "courier.db" {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Auth.JWTSecret == "" || cfg.Seed.AdminPassword == "" {
		t.Fatalf("dev defaults not applied: %+v", cfg.Auth)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("token ttl = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Seed.AdminEmail != "admin@example.com" || cfg.Seed.TestPharmacy {
		t.Fatalf("seed defaults = %+v", cfg.Seed)
	}
	if cfg.Email.QueueSize != 256 || cfg.Email.Workers != 2 {
		t.Fatalf("email defaults = %+v", cfg.Email)
	}
	// Admin notifications default to the seed admin address.
	if cfg.Email.AdminAddress != "admin@example.com" {
		t.Fatalf("admin notify = %q", cfg.Email.AdminAddress)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_PATH", "/tmp/test.db")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("SEED_TEST_PHARMACY", "true")
	t.Setenv("ADMIN_NOTIFY_EMAIL", "ops@courier.example")
	t.Setenv("NOTIFY_QUEUE_SIZE", "32")

	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults() = %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Fatalf("address = %q", cfg.Server.Address)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.Path != "/tmp/test.db" {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("token ttl = %v", cfg.Auth.TokenTTL)
	}
	if !cfg.Seed.TestPharmacy {
		t.Fatalf("test pharmacy seed not enabled")
	}
	if cfg.Email.AdminAddress != "ops@courier.example" || cfg.Email.QueueSize != 32 {
		t.Fatalf("email = %+v", cfg.Email)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("NOTIFY_QUEUE_SIZE", "many")
	t.Setenv("SEED_TEST_PHARMACY", "maybe")

	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults() = %v", err)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Email.QueueSize != 256 || cfg.Seed.TestPharmacy {
		t.Fatalf("malformed values not defaulted: ttl=%v queue=%d seed=%v",
			cfg.Auth.TokenTTL, cfg.Email.QueueSize, cfg.Seed.TestPharmacy)
	}
}

func TestStringMasksSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("SEED_ADMIN_PASSWORD", "Adm1n!Pass")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	s := cfg.String()
	if strings.Contains(s, "super-secret") || strings.Contains(s, "Adm1n!Pass") {
		t.Fatalf("String() leaks secrets: %s", s)
	}
}
