package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("REFRESH_TOKEN_TTL", "168h")
	t.Setenv("JWT_ISSUER", "auth-service")
	t.Setenv("PASSWORD_PEPPER", "pepper")
}

func TestLoad_Success(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")
	t.Setenv("ALLOW_CREDENTIALS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("AccessTokenTTL want 15m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 168*time.Hour {
		t.Fatalf("RefreshTokenTTL want 168h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("HTTPAddress default want :8080, got %q", cfg.HTTPAddress)
	}
	if !cfg.AllowCredentials {
		t.Fatal("AllowCredentials want true")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing REFRESH_TOKEN_SECRET, got nil")
	}
}

func TestLoad_BadTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparsable ACCESS_TOKEN_TTL, got nil")
	}
}

func TestLoad_AccessMustBeShorterThanRefresh(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "200h")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when access TTL exceeds refresh TTL, got nil")
	}
}
