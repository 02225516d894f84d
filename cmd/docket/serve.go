package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/BlackWidow29/Entrevista-Docket/internal/repository"
	"github.com/BlackWidow29/Entrevista-Docket/internal/server"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/database"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/jwtutil"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/tracing"
	"github.com/BlackWidow29/Entrevista-Docket/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	skipMigrate bool
	inMemory    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not create the schema on startup")
	serveCmd.Flags().BoolVar(&inMemory, "in-memory", false, "keep records in process memory instead of PostgreSQL")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Info("Starting docket service...", cfg.LogConfig()...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewProvider(ctx, cfg.AppName, cfg.Tracing)
	if err != nil {
		log.Error("Failed to initialize tracing", zap.Error(err))
		return err
	}
	if tp.Enabled() {
		log.Info("Tracing enabled",
			zap.String("exporter", cfg.Tracing.Exporter),
			zap.Float64("sample_rate", cfg.Tracing.SampleRate))
	} else {
		log.Info("Tracing disabled")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	metrics := prometheus.NewMetrics(cfg.Metrics.Prefix, nil)
	log.Info("Prometheus metrics initialized")

	deps := server.Dependencies{
		AppName: cfg.AppName,
		Logger:  log,
		Metrics: metrics,
	}
	if cfg.Auth.Enabled {
		deps.Auth = jwtutil.NewJWTUtil(&cfg.Auth)
		log.Info("Bearer authentication enabled for /api")
	}

	if inMemory {
		store := repository.NewMemoryStore()
		deps.Registries = store.Registries()
		deps.Certificates = store.Certificates()
		log.Warn("Using in-memory store; records are lost on exit")
	} else {
		db, err := database.InitDB(&cfg.DB)
		if err != nil {
			log.Error("Failed to initialize database", zap.Error(err))
			return err
		}
		defer database.Close(db) //nolint:errcheck
		log.Info("Database connection established")

		if !skipMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				log.Error("Migration failed", zap.Error(err))
				return err
			}
			log.Info("Migrations completed")
		}

		opts := []repository.Option{
			repository.WithMetrics(metrics),
			repository.WithTracer(tp.Tracer()),
		}
		deps.Registries = repository.NewRegistryRepository(db, opts...)
		deps.Certificates = repository.NewCertificateRepository(db, opts...)
		deps.Ping = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	e, err := server.New(deps)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}
