package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// BotAPILogger адаптирует slog.Logger под интерфейс логгера библиотеки
// go-telegram-bot-api/v5 (Println, Printf).
type BotAPILogger struct {
	Logger *slog.Logger
}

// NewBotAPILogger создает адаптер. Сообщения библиотеки проходят через
// маскировщик логгера, поэтому токен в URL запросов не попадает в вывод.
func NewBotAPILogger(logger *slog.Logger) *BotAPILogger {
	return &BotAPILogger{Logger: logger.With(slog.String("component", "tgbotapi"))}
}

// Println реализует метод интерфейса tgbotapi.BotLogger.
func (a *BotAPILogger) Println(v ...interface{}) {
	a.Logger.Debug(strings.TrimSpace(fmt.Sprintln(v...)))
}

// Printf реализует метод интерфейса tgbotapi.BotLogger.
func (a *BotAPILogger) Printf(format string, v ...interface{}) {
	a.Logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
