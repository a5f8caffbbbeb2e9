package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"lexreader/internal/config"
	"lexreader/internal/httpapi"
	"lexreader/internal/repository/postgres"
	"lexreader/internal/service"
	"lexreader/internal/translator"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the vocabulary API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting lexreader API")

	// Load configuration
	cfg, err := config.LoadServer()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return err
	}

	logger.Info("Configuration loaded successfully",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("translator", cfg.Translator.Provider),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database with retries
	db, err := postgres.Connect(ctx, cfg.DSN(), postgres.DefaultConnectOptions, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := postgres.Migrate(db, logger); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	// Initialize repositories
	bookRepo := postgres.NewBookRepo(db)
	wordRepo := postgres.NewWordRepo(db)

	tr, err := translator.New(cfg.Translator, logger)
	if err != nil {
		logger.Error("Failed to create translator", zap.Error(err))
		return err
	}

	// Initialize services
	bookService := service.NewBookService(bookRepo, cfg.HTTP.MaxUploadSize, logger)
	wordService := service.NewWordService(wordRepo, tr, logger)
	statsService := service.NewStatsService(bookRepo, wordRepo, logger)

	api := httpapi.NewServer(bookService, wordService, statsService, httpapi.Options{
		BasePath:       cfg.HTTP.BasePath,
		APIKey:         cfg.HTTP.APIKey,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxUploadSize:  cfg.HTTP.MaxUploadSize,
	}, logger)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: api.Handler(),
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping server...")
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
			return err
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down gracefully", zap.Error(err))
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}
