package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexreader/internal/config"
	"lexreader/internal/gateway"
	"lexreader/internal/handler"
	"lexreader/internal/middleware"
	"lexreader/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram reading bot against the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd)
	},
}

func runBot(cmd *cobra.Command) error {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting lexreader bot")

	// Load configuration
	cfg, err := config.LoadBot()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return err
	}
	client, err := clientConfig(cmd)
	if err != nil {
		logger.Error("Failed to load client config", zap.Error(err))
		return err
	}
	cfg.Client = *client

	gw := gateway.NewClient(cfg.Client.APIURL, cfg.Client.APIKey, cfg.Client.Timeout, logger)
	authService := service.NewAuthService(cfg.BotPassword)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Error("Failed to create bot", zap.Error(err))
		return err
	}

	logger.Info("Telegram bot initialized", zap.String("api_url", cfg.Client.APIURL))

	// Initialize handler
	h := handler.NewHandler(bot, authService, gw, logger)
	h.RegisterHandlers(middleware.AuthMiddleware(authService, logger))

	logger.Info("Handlers registered")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
	return nil
}
