package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"telegram-chat-stats/internal/adapters/parser"
	"telegram-chat-stats/internal/cache"
	"telegram-chat-stats/internal/core/services"
	"telegram-chat-stats/internal/log"
	"telegram-chat-stats/internal/pkg/config"
	"telegram-chat-stats/internal/pkg/persian"
	"telegram-chat-stats/internal/server"
	"telegram-chat-stats/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run() error {
	configPath := flag.String("config", "", "путь к файлу конфигурации")
	flag.Parse()

	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		// Логгер еще не инициализирован, выводим в stderr
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return err
	}

	// 2. Инициализация логгера
	slog.SetDefault(log.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format))

	// 3. Валидация конфигурации (после инициализации логгера)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	stopwords, err := persian.StopwordsFromFile(cfg.Processing.ExtraStopwordsFile)
	if err != nil {
		return err
	}

	// 4. Инициализация зависимостей
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	reports := cache.NewReportCache()
	analyzer := usecase.NewAnalyzeChatUseCase(cfg,
		parser.NewJsonParser(),
		services.NewExtractionService(),
		services.NewNormalizationService(stopwords),
		services.NewParticipationService(),
		reports,
	)

	// 5. Создание HTTP-сервера
	srv, err := server.New(appCtx, cfg, analyzer, reports)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// 6. Запуск сервера и graceful shutdown
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		slog.Info("Starting server", "addr", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		slog.Info("Signal received, shutting down...")
	case <-serverDone:
		return errors.New("server stopped unexpectedly")
	}

	// Останавливаем фоновую очистку кеша
	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	<-serverDone
	slog.Info("Application exited gracefully")
	return nil
}
