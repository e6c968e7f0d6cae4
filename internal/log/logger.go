// Package log настраивает slog для приложений: уровень, формат вывода и
// маскировку персональных данных.
package log

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel преобразует строку из конфигурации в уровень slog.
// Неизвестные значения дают info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger создает логгер с маскировкой персональных данных.
// format: "json" или "text".
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewMaskingHandler(handler))
}
