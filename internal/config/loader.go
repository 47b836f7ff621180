package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "academly.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "ACADEMLY_PORT")
	setString(&cfg.Server.CORSOrigin, "ACADEMLY_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setString(&cfg.Postgres.AdminDSN, "DATABASE_ADMIN_URL")
	setInt32(&cfg.Postgres.MaxConns, "ACADEMLY_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "ACADEMLY_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "ACADEMLY_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "ACADEMLY_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "ACADEMLY_PG_HEALTH_CHECK")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.Identity.Mode, "ACADEMLY_IDENTITY_MODE")
	setString(&cfg.Identity.GoTrueURL, "GOTRUE_URL")
	setString(&cfg.Identity.ServiceKey, "GOTRUE_SERVICE_KEY")
	setDuration(&cfg.Session.Timeout, "ACADEMLY_SESSION_TIMEOUT")
	setInt64(&cfg.Session.MaxSizeMB, "ACADEMLY_SESSION_MAX_SIZE_MB")
	setString(&cfg.Session.CookieName, "ACADEMLY_SESSION_COOKIE")
	setBool(&cfg.Session.SecureCookie, "ACADEMLY_SESSION_SECURE_COOKIE")
	setString(&cfg.Logging.Level, "ACADEMLY_LOG_LEVEL")
	setString(&cfg.Logging.Service, "ACADEMLY_LOG_SERVICE")
	setBool(&cfg.Telemetry.Enabled, "ACADEMLY_OTEL_ENABLED")
	setString(&cfg.Telemetry.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Admin.SeedEmail, "ACADEMLY_ADMIN_EMAIL")
	setString(&cfg.Admin.SeedPassword, "ACADEMLY_ADMIN_PASSWORD")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Session.Timeout < time.Minute {
		return errors.New("session.timeout must be >= 1m")
	}
	switch cfg.Identity.Mode {
	case "local":
	case "gotrue":
		if cfg.Identity.GoTrueURL == "" {
			return errors.New("identity.gotrue_url is required in gotrue mode")
		}
		if cfg.Identity.ServiceKey == "" {
			return errors.New("identity.service_key is required in gotrue mode")
		}
	default:
		return fmt.Errorf("identity.mode must be local or gotrue, got %q", cfg.Identity.Mode)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
