package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/assets"
	httpapi "github.com/aussiebroadwan/tasks/internal/tasks/http"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/postgres"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application owns every long-lived dependency of the service and their
// start and stop order. Nothing is held in package state.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	hasher  *cryptox.Hasher
	signer  *jwtx.EdDSASigner
	keys    *jwtx.KeySet
	files   assets.Store
	uploads *assets.LocalStore // nil unless STORAGE_BACKEND=local

	credentialService   *service.CredentialService
	sessionService      *service.SessionService
	userService         *service.UserService
	taskService         *service.TaskService
	profileService      *service.ProfileService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router

	closeOnce sync.Once
	closeErr  error
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	return NewWithLogger(cfg, slogx.New(slogx.Config{
		Service: "tasks",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

// NewWithLogger is New with a caller supplied logger.
func NewWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	app := &Application{cfg: cfg, logger: logger}
	ctx := context.Background()

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewHasher(pepper)

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	app.signer, app.keys, err = sessionKeys(cfg, logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initAssets(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router, for tests and embedding.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("tasks service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		// ErrServerClosed means Shutdown is already tearing everything down.
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		_ = app.Close()
		return fmt.Errorf("server failed: %w", err)
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains HTTP traffic, stops background work and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tasks service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	return app.Close()
}

// Close stops background work and releases the store. Use it instead of
// Shutdown when Run was never called. Later calls return the first result.
func (app *Application) Close() error {
	app.closeOnce.Do(func() {
		app.housekeepingService.Stop()
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			app.closeErr = err
			return
		}
		app.logger.Info("tasks service stopped")
	})
	return app.closeErr
}

// initDatabase opens the configured store and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initAssets picks where profile pictures are stored.
func (app *Application) initAssets(ctx context.Context) error {
	switch app.cfg.StorageBackend {
	case "s3":
		s3Store, err := assets.NewS3Store(ctx, assets.S3Config{
			Bucket:    app.cfg.S3Bucket,
			Region:    app.cfg.S3Region,
			Endpoint:  app.cfg.S3Endpoint,
			AccessKey: app.cfg.S3AccessKey,
			SecretKey: app.cfg.S3SecretKey,
			PublicURL: app.cfg.S3PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		app.files = s3Store
		app.logger.Info("profile pictures stored in S3", "bucket", app.cfg.S3Bucket)
	default:
		local, err := assets.NewLocalStore(app.cfg.UploadDir)
		if err != nil {
			return fmt.Errorf("failed to initialize upload dir: %w", err)
		}
		app.files = local
		app.uploads = local
		app.logger.Info("profile pictures stored on disk", "dir", app.cfg.UploadDir)
	}
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.credentialService = &service.CredentialService{
		Store:  app.db,
		Hasher: app.hasher,
	}
	app.sessionService = &service.SessionService{
		Store:       app.db,
		Credentials: app.credentialService,
		Signer:      app.signer,
		Verifier:    jwtx.NewVerifierEdDSA(app.keys, app.cfg.SessionIssuer),
		Issuer:      app.cfg.SessionIssuer,
		TTL:         app.cfg.SessionTTL,
	}
	app.userService = &service.UserService{Store: app.db}
	app.taskService = &service.TaskService{Store: app.db}
	app.profileService = &service.ProfileService{Store: app.db, Assets: app.files}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.keys, BuildVersion, app.db, app.logger)

	router.CredentialService = app.credentialService
	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.TaskService = app.taskService
	router.ProfileService = app.profileService
	router.Assets = app.files
	router.LocalUploads = app.uploads
	router.RateLimits = app.cfg.RateLimits
	router.CookieSecure = app.cfg.CookieSecure
	router.MaxUploadBytes = app.cfg.MaxUploadBytes
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
