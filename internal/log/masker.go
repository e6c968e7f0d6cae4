package log

import (
	"context"
	"log/slog"
	"regexp"
)

// MaskingHandler - обертка для slog.Handler, которая маскирует персональные
// данные из архивов чатов (адреса e-mail, номера телефонов) и токен бота.
type MaskingHandler struct {
	handler slog.Handler
}

// NewMaskingHandler создает новый обработчик с маскировкой
func NewMaskingHandler(handler slog.Handler) *MaskingHandler {
	return &MaskingHandler{
		handler: handler,
	}
}

var (
	// локальная часть адреса заменяется, домен остается
	emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+-]+@([A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,})`)
	// международный формат: + и от 10 до 16 цифр, возможно с пробелами и дефисами
	phoneRegex = regexp.MustCompile(`\+\d[\d\s-]{8,14}\d`)
	// токен бота вида 123456789:AA..., в том числе внутри URL файлов
	botTokenRegex = regexp.MustCompile(`\d{6,12}:[A-Za-z0-9_-]{30,}`)
)

// mask заменяет найденные персональные данные на маску
func mask(text string) string {
	text = botTokenRegex.ReplaceAllString(text, "***")
	text = emailRegex.ReplaceAllString(text, "***@$1")
	return phoneRegex.ReplaceAllString(text, "+***")
}

// Enabled реализует интерфейс slog.Handler
func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle реализует интерфейс slog.Handler
func (h *MaskingHandler) Handle(ctx context.Context, record slog.Record) error {
	// Clone не копирует атрибуты в отдельный срез, поэтому собираем новую запись
	r := slog.NewRecord(record.Time, record.Level, mask(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(slog.Attr{
			Key:   a.Key,
			Value: maskAttributeValue(a.Value),
		})
		return true
	})

	return h.handler.Handle(ctx, r)
}

// WithAttrs реализует интерфейс slog.Handler
func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		masked[i] = slog.Attr{
			Key:   attr.Key,
			Value: maskAttributeValue(attr.Value),
		}
	}
	return &MaskingHandler{
		handler: h.handler.WithAttrs(masked),
	}
}

// WithGroup реализует интерфейс slog.Handler
func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{
		handler: h.handler.WithGroup(name),
	}
}

// maskAttributeValue рекурсивно маскирует значения атрибутов
func maskAttributeValue(value slog.Value) slog.Value {
	switch value.Kind() {
	case slog.KindString:
		return slog.StringValue(mask(value.String()))
	case slog.KindAny:
		if err, ok := value.Any().(error); ok {
			return slog.StringValue(mask(err.Error()))
		}
		return value
	case slog.KindGroup:
		group := value.Group()
		masked := make([]slog.Attr, len(group))
		for i, attr := range group {
			masked[i] = slog.Attr{
				Key:   attr.Key,
				Value: maskAttributeValue(attr.Value),
			}
		}
		return slog.GroupValue(masked...)
	default:
		return value
	}
}
