package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/invoice-service/internal/api"
	v1 "github.com/ledgerline/invoice-service/internal/api/v1"
	"github.com/ledgerline/invoice-service/internal/config"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/ledgerline/invoice-service/internal/postgres"
	"github.com/ledgerline/invoice-service/internal/pyroscope"
	"github.com/ledgerline/invoice-service/internal/repository"
	"github.com/ledgerline/invoice-service/internal/sentry"
	"github.com/ledgerline/invoice-service/internal/service"
	"github.com/ledgerline/invoice-service/internal/types"
	"github.com/ledgerline/invoice-service/internal/validator"
	"go.uber.org/fx"
)

// @title Invoice Service API
// @version 1.0
// @description Create and list invoices
// @BasePath /api/v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewInvoiceRepository,
		),
	)

	// Monitoring
	opts = append(opts,
		sentry.Module(),
		pyroscope.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewInvoiceService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			// the package-level validator must exist before the first request
			validator.NewValidator,
			registerDatabaseHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(invoiceService service.InvoiceService, logger *logger.Logger) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(),
		Invoice: v1.NewInvoiceHandler(invoiceService, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentryService *sentry.Service,
	pyroscopeService *pyroscope.Service,
) *gin.Engine {
	if !cfg.Deployment.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, logger, sentryService, pyroscopeService)
}

// registerDatabaseHooks bootstraps the schema on start when enabled and
// closes the pool on stop
func registerDatabaseHooks(lc fx.Lifecycle, cfg *config.Configuration, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Postgres.AutoMigrate {
				return nil
			}
			log.Info("Ensuring database schema...")
			return db.EnsureSchema(ctx)
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Closing database connections...")
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
