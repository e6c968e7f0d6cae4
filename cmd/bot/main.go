package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-chat-stats/cmd/bot/config"
	"telegram-chat-stats/internal/bot"
	"telegram-chat-stats/internal/log"
	"telegram-chat-stats/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Загрузка конфигурации бота
	cfg, err := config.LoadBotConfig("bot_config.yml")
	if err != nil {
		return fmt.Errorf("failed to load bot config: %w", err)
	}

	// Логгер с маскировкой токена и персональных данных
	logger := log.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)
	if err := tgbotapi.SetLogger(log.NewBotAPILogger(logger)); err != nil {
		return fmt.Errorf("failed to set bot api logger: %w", err)
	}

	if err := cfg.Bot.Validate(); err != nil {
		return fmt.Errorf("failed to validate bot config: %w", err)
	}

	client := server.NewClient(cfg.Bot.BackendURL, cfg.Bot.HTTPTimeout)
	b, err := bot.NewBot(cfg.Bot, client, logger.With(slog.String("component", "bot")))
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	slog.Info("Bot created successfully, starting...", "backend_url", cfg.Bot.BackendURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start возвращается после отмены контекста
	b.Start(ctx)

	slog.Info("Bot stopped gracefully")
	return nil
}
