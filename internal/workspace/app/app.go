package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/autosave"
	httpapi "github.com/SadidSD/Productive-Workspace/internal/workspace/http"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/service"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/store"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/store/drivers/sqlite"
	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
	"github.com/SadidSD/Productive-Workspace/pkg/identity"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the workspace service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	verifier identity.Verifier
	clock    clockx.Clock

	workspaceService    *service.WorkspaceService
	inviteService       *service.InviteService
	housekeepingService *service.HousekeepingService
	autosaveManager     *autosave.Manager

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:   cfg,
		clock: clockx.Real(),
		logger: slogx.New(slogx.Config{
			Service: "workspace-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.IdPHS256Secret == "" {
		return nil, fmt.Errorf("IDP_HS256_SECRET is required")
	}
	app.verifier = identity.NewHS256Verifier(cfg.IdPHS256Secret, cfg.IdPIssuer)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("workspace service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application. Open autosave drafts
// are flushed before the store closes so no accepted edit is lost.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down workspace service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.autosaveManager.Shutdown(ctx); err != nil {
		app.logger.Error("error flushing autosave drafts", "error", err)
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("workspace service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.workspaceService = &service.WorkspaceService{
		Store: app.db,
		Clock: app.clock,
	}

	app.inviteService = &service.InviteService{
		Store:     app.db,
		Clock:     app.clock,
		InviteTTL: app.cfg.InviteTTL,
	}

	app.autosaveManager = autosave.NewManager(
		app.db,
		app.clock,
		app.cfg.AutosaveQuietPeriod,
		app.cfg.PersistTimeout,
		app.logger,
	)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.clock,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.WorkspaceService = app.workspaceService
	router.InviteService = app.inviteService
	router.AutosaveManager = app.autosaveManager
	router.HousekeepingService = app.housekeepingService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
