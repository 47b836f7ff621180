// Academly core: the access-control and tenant-administration service for
// the Academly gym management platform.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/academly/academly/internal/adapter/gotrue"
	achttp "github.com/academly/academly/internal/adapter/http"
	"github.com/academly/academly/internal/adapter/local"
	acnats "github.com/academly/academly/internal/adapter/nats"
	"github.com/academly/academly/internal/adapter/otel"
	"github.com/academly/academly/internal/adapter/postgres"
	"github.com/academly/academly/internal/adapter/ristretto"
	"github.com/academly/academly/internal/config"
	"github.com/academly/academly/internal/domain/principal"
	"github.com/academly/academly/internal/logger"
	"github.com/academly/academly/internal/middleware"
	"github.com/academly/academly/internal/port/identity"
	"github.com/academly/academly/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	slog.SetDefault(logger.New(cfg.Logging))

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"identity_mode", cfg.Identity.Mode,
		"session_timeout", cfg.Session.Timeout,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	// Primary pool: regular application queries.
	pool, err := postgres.NewPool(ctx, cfg.Postgres, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	// Elevated pool for the license guard. Falls back to the primary DSN
	// in single-role deployments.
	adminDSN := cfg.Postgres.AdminDSN
	if adminDSN == "" {
		adminDSN = cfg.Postgres.DSN
	}
	adminPool, err := postgres.NewPool(ctx, cfg.Postgres, adminDSN)
	if err != nil {
		return fmt.Errorf("postgres admin: %w", err)
	}
	defer adminPool.Close()

	// NATS audit stream (optional).
	var publisher service.EventPublisher
	if cfg.NATS.URL != "" {
		queue, err := acnats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() { _ = queue.Close() }()
		publisher = queue
		slog.Info("nats connected", "url", cfg.NATS.URL)
	}

	// OpenTelemetry (optional).
	var metrics *otel.Metrics
	if cfg.Telemetry.Enabled {
		shutdown, err := otel.Init(ctx, cfg.Logging.Service, cfg.Telemetry.Endpoint)
		if err != nil {
			return fmt.Errorf("otel: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("otel shutdown failed", "error", err)
			}
		}()
		metrics, err = otel.NewMetrics()
		if err != nil {
			return fmt.Errorf("otel metrics: %w", err)
		}
	}

	// Session store.
	sessionStore, err := ristretto.New(cfg.Session.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer sessionStore.Close()

	// --- Services ---

	store := postgres.NewStore(pool)
	statusReader := postgres.NewStatusReader(adminPool)

	var gateway identity.Gateway
	switch cfg.Identity.Mode {
	case "gotrue":
		gateway = gotrue.NewClient(cfg.Identity.GoTrueURL, cfg.Identity.ServiceKey)
	default:
		gateway = local.NewGateway(store)
	}

	if err := seedSuperAdmin(ctx, cfg, store); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	sessions := service.NewSessionManager(sessionStore, cfg.Session.Timeout)
	license := service.NewLicenseGuard(statusReader)
	auditor := service.NewAuditRecorder(store, publisher)

	handlers := &achttp.Handlers{
		Resolver:      service.NewResolver(store),
		Sessions:      sessions,
		Gateway:       gateway,
		Provisioning:  service.NewProvisioningService(store, gateway, auditor),
		Students:      service.NewStudentService(store, license),
		Activities:    service.NewActivityService(store, license),
		License:       license,
		Metrics:       metrics,
		CookieName:    cfg.Session.CookieName,
		CookieMaxAge:  int(cfg.Session.Timeout / time.Second),
		SecureCookies: cfg.Session.SecureCookie,
	}

	// --- HTTP ---

	r := chi.NewRouter()
	r.Use(achttp.CORS(cfg.Server.CORSOrigin))
	r.Use(achttp.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(achttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	if cfg.Telemetry.Enabled {
		r.Use(otel.HTTPMiddleware(cfg.Logging.Service))
	}
	r.Use(middleware.Session(sessions, cfg.Session.CookieName))

	achttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// seedSuperAdmin creates the initial platform administrator when the
// profiles table is empty. The password only matters for the local
// identity mode; a GoTrue deployment seeds its admin identity upstream
// and this row just mirrors the super-admin flag.
func seedSuperAdmin(ctx context.Context, cfg *config.Config, store *postgres.Store) error {
	count, err := store.CountProfiles(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	p := &principal.Profile{
		ID:         uuid.NewString(),
		Email:      cfg.Admin.SeedEmail,
		FullName:   "Platform Administrator",
		SuperAdmin: true,
	}
	if cfg.Identity.Mode != "gotrue" {
		password := cfg.Admin.SeedPassword
		if password == "" {
			return fmt.Errorf("admin seed password required for the first start in local mode")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		p.PasswordHash = string(hash)
	}

	if err := store.CreateProfile(ctx, p); err != nil {
		return err
	}
	slog.Info("seeded super-admin", "email", p.Email)
	return nil
}
