package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acharjeesuvo/EvalMind/internal/handler"
	"github.com/acharjeesuvo/EvalMind/internal/imagestore"
	"github.com/acharjeesuvo/EvalMind/internal/metrics"
	"github.com/acharjeesuvo/EvalMind/internal/repository"
	"github.com/acharjeesuvo/EvalMind/internal/server"
	"github.com/acharjeesuvo/EvalMind/internal/service"
	"github.com/acharjeesuvo/EvalMind/internal/session"
)

func serveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the annotation HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *options) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		return err
	}

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Database connection
	db, err := repository.NewPostgresDB(ctx, cfg.Database.DSN(), repository.PoolOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.MigrateDB(db, logger); err != nil {
			logger.Error("Failed to migrate database", zap.Error(err))
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.NewMetrics(registry)
	if err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, cfg.Auth.AnnotatorRole, logger)
	loginLogRepo := repository.NewLoginLogRepository(db, logger)
	itemRepo := repository.NewItemRepository(db, logger)
	annotationRepo := repository.NewAnnotationRepository(db, logger)
	progressRepo := repository.NewProgressRepository(db, logger)

	sessions := session.NewManager()
	go pruneSessions(ctx, sessions, logger)
	tokens := session.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.TokenTTL())

	authService := service.NewAuthService(userRepo, loginLogRepo, sessions, tokens, cfg.Auth.AnnotatorRole, m, logger)
	annotationService := service.NewAnnotationService(itemRepo, annotationRepo, progressRepo, m, logger)

	images := imagestore.New(cfg.Images.Dir)
	if _, err := os.Stat(cfg.Images.Dir); err != nil {
		logger.Warn("Image directory is not accessible; images will be reported missing",
			zap.String("dir", cfg.Images.Dir), zap.Error(err))
	}

	srv := server.NewServer(server.Deps{
		Auth:        handler.NewAuthHandler(authService, logger),
		Annotations: handler.NewAnnotationHandler(annotationService, images, logger),
		Tokens:      tokens,
		Sessions:    sessions,
		Gatherer:    registry,
	}, cfg.Server.Mode, logger)

	if err := srv.Run(ctx, ":"+cfg.Server.Port, cfg.ShutdownTimeout()); err != nil {
		logger.Error("Server failed", zap.Error(err))
		return err
	}

	logger.Info("Application stopped.")
	return nil
}

const sessionPruneInterval = time.Minute

func pruneSessions(ctx context.Context, sessions *session.Manager, logger *zap.Logger) {
	ticker := time.NewTicker(sessionPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(); n > 0 {
				logger.Debug("Expired sessions pruned", zap.Int("count", n))
			}
		}
	}
}
