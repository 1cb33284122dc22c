package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/cdn"
	httpapi "github.com/aussiebroadwan/folio/internal/backend/http"
	"github.com/aussiebroadwan/folio/internal/backend/revocation"
	"github.com/aussiebroadwan/folio/internal/backend/service"
	"github.com/aussiebroadwan/folio/internal/backend/store"
	"github.com/aussiebroadwan/folio/internal/backend/store/drivers/mongo"
	"github.com/aussiebroadwan/folio/internal/backend/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	startupTimeout = 15 * time.Second
)

// Application encapsulates the resource service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	redis       *redis.Client
	revocations *revocation.List
	images      *cdn.Bucket

	tokens         *authsdk.Client
	verifier       httpx.TokenVerifier
	authService    *service.AuthService
	profileService *service.ProfileService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "backend",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initRevocations(ctx); err != nil {
		app.closeResources()
		return nil, err
	}
	if err := app.initServices(ctx); err != nil {
		app.closeResources()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("backend starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"verifier", app.cfg.VerifierMode,
		"revocation", app.revocations != nil,
		"avatars", app.images != nil,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.closeResources()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down backend...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
		app.closeResources()
		return err
	}

	app.closeResources()
	app.logger.Info("backend stopped")
	return nil
}

// closeResources releases the store and the Redis client.
func (app *Application) closeResources() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}
}

// initDatabase opens the configured store and applies its migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.StoreDriver {
	case DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(app.cfg.DatabaseFile), 0750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	default:
		db, err = mongo.NewStore(app.cfg.MongoURI, app.cfg.MongoDatabase)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s store: %w", app.cfg.StoreDriver, err)
	}
	app.db = db

	if err := db.ApplyMigrations(ctx); err != nil {
		app.closeResources()
		return fmt.Errorf("failed to apply %s migrations: %w", app.cfg.StoreDriver, err)
	}

	app.logger.Info("database migrations applied successfully", "store", app.cfg.StoreDriver)
	return nil
}

// initRevocations connects the revocation list when REDIS_URL is set.
func (app *Application) initRevocations(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		app.logger.Warn("REDIS_URL not set, logout will not revoke tokens")
		return nil
	}

	list, client, err := revocation.Connect(app.cfg.RedisURL)
	if err != nil {
		return err
	}
	app.redis = client
	app.revocations = list

	if err := list.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach revocation list: %w", err)
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices(ctx context.Context) error {
	app.tokens = authsdk.NewClient(app.cfg.TokenServiceURL,
		authsdk.WithAPIKey(app.cfg.TokenServiceKey),
		authsdk.WithTimeout(app.cfg.TokenServiceTimeout),
	)

	// Nil interfaces, not nil pointers, when revocation is off
	var (
		revokedList jwtx.RevocationList
		revoker     service.Revoker
	)
	if app.revocations != nil {
		revokedList = app.revocations
		revoker = app.revocations
	}

	switch app.cfg.VerifierMode {
	case VerifierRemote:
		rv := authsdk.NewRemoteVerifier(app.tokens)
		rv.Revoked = revokedList
		app.verifier = rv
	default:
		lv, err := jwtx.NewLocalVerifier([]byte(app.cfg.AccessSecret), jwtx.VerifyOptions{Issuer: app.cfg.Issuer}, revokedList)
		if err != nil {
			return fmt.Errorf("failed to initialize token verifier: %w", err)
		}
		app.verifier = lv
	}

	app.authService = &service.AuthService{
		Store:       app.db,
		Tokens:      app.tokens,
		Revocations: revoker,
	}
	app.profileService = &service.ProfileService{
		Store:          app.db,
		MaxAvatarBytes: app.cfg.MaxAvatarBytes,
	}

	if cdnCfg, ok := app.cfg.CDN(); ok {
		bucket, err := cdn.NewS3Bucket(ctx, cdnCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize avatar bucket: %w", err)
		}
		app.images = bucket
		app.profileService.Images = bucket
	} else {
		app.logger.Warn("CDN_BUCKET not set, avatar uploads disabled")
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.authService, app.profileService, app.verifier, BuildVersion, app.logger)
	router.SecureCookies = app.cfg.SecureCookies()
	router.MaxAvatarBytes = app.cfg.MaxAvatarBytes

	router.Checks["store"] = app.db.Ping
	router.Checks["token_service"] = func(ctx context.Context) error {
		_, err := app.tokens.GetReadiness(ctx)
		return err
	}
	if app.revocations != nil {
		router.Checks["revocation"] = app.revocations.Ping
	}

	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
