package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Session.Timeout != 30*time.Minute {
		t.Errorf("session timeout = %v, want 30m", cfg.Session.Timeout)
	}
	if cfg.Identity.Mode != "local" {
		t.Errorf("identity mode = %q, want local", cfg.Identity.Mode)
	}
}

func TestLoadFrom_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academly.yaml")
	yaml := `
server:
  port: "9090"
session:
  timeout: 15m
  cookie_name: custom_session
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Session.Timeout != 15*time.Minute {
		t.Errorf("session timeout = %v, want 15m", cfg.Session.Timeout)
	}
	if cfg.Session.CookieName != "custom_session" {
		t.Errorf("cookie name = %q, want custom_session", cfg.Session.CookieName)
	}
	// Untouched fields keep defaults.
	if cfg.Logging.Service != "academly-core" {
		t.Errorf("logging service = %q, want academly-core", cfg.Logging.Service)
	}
}

func TestLoadFrom_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academly.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ACADEMLY_PORT", "7070")
	t.Setenv("DATABASE_ADMIN_URL", "postgres://svc@localhost/academly")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.Postgres.AdminDSN != "postgres://svc@localhost/academly" {
		t.Errorf("admin dsn = %q", cfg.Postgres.AdminDSN)
	}
}

func TestLoadFrom_SecureCookie(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Session.SecureCookie {
		t.Error("secure cookie should default to false for local development")
	}

	t.Setenv("ACADEMLY_SESSION_SECURE_COOKIE", "true")
	cfg, err = LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.Session.SecureCookie {
		t.Error("ACADEMLY_SESSION_SECURE_COOKIE=true not applied")
	}
}

func TestValidate_GoTrueModeRequiresURL(t *testing.T) {
	cfg := Defaults()
	cfg.Identity.Mode = "gotrue"
	if err := validate(&cfg); err == nil {
		t.Error("expected error for gotrue mode without url")
	}

	cfg.Identity.GoTrueURL = "https://auth.example.com"
	cfg.Identity.ServiceKey = "service-key"
	if err := validate(&cfg); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestValidate_RejectsUnknownIdentityMode(t *testing.T) {
	cfg := Defaults()
	cfg.Identity.Mode = "saml"
	if err := validate(&cfg); err == nil {
		t.Error("expected error for unknown identity mode")
	}
}

func TestValidate_SessionTimeoutFloor(t *testing.T) {
	cfg := Defaults()
	cfg.Session.Timeout = 10 * time.Second
	if err := validate(&cfg); err == nil {
		t.Error("expected error for sub-minute session timeout")
	}
}
