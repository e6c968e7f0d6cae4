package parser

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// JsonParser реализует интерфейс Parser для разбора JSON данных.
// Некорректные сообщения и сущности пропускаются, а не прерывают разбор.
type JsonParser struct{}

// NewJsonParser создает новый экземпляр JsonParser.
func NewJsonParser() ports.Parser {
	return &JsonParser{}
}

type rawArchive struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Messages []json.RawMessage `json:"messages"`
}

type rawMessage struct {
	ID               *int              `json:"id"`
	Type             string            `json:"type"`
	Date             string            `json:"date"`
	From             *string           `json:"from"`
	FromID           string            `json:"from_id"`
	Actor            *string           `json:"actor"`
	ActorID          string            `json:"actor_id"`
	ReplyToMessageID *int              `json:"reply_to_message_id"`
	Text             json.RawMessage   `json:"text"`
	TextEntities     []json.RawMessage `json:"text_entities"`
}

type rawEntity struct {
	Type   *string `json:"type"`
	Text   *string `json:"text"`
	Href   string  `json:"href"`
	UserID int64   `json:"user_id"`
}

// Parse преобразует срез байт с JSON в структуру Archive.
func (p *JsonParser) Parse(data []byte) (*domain.Archive, error) {
	var raw rawArchive
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json: %w", err)
	}

	archive := &domain.Archive{
		Name:     raw.Name,
		Type:     raw.Type,
		ID:       raw.ID,
		Messages: make([]domain.Message, 0, len(raw.Messages)),
	}

	for i, rm := range raw.Messages {
		msg, skippedEntities, err := decodeMessage(rm)
		if err != nil {
			archive.Skipped.Messages++
			slog.Warn("Пропущено некорректное сообщение", "index", i, "error", err)
			continue
		}
		if skippedEntities > 0 {
			archive.Skipped.Entities += skippedEntities
			slog.Warn("Пропущены некорректные сущности", "message_id", msg.ID, "count", skippedEntities)
		}
		archive.Messages = append(archive.Messages, msg)
	}

	return archive, nil
}

func decodeMessage(data json.RawMessage) (domain.Message, int, error) {
	var rm rawMessage
	if err := json.Unmarshal(data, &rm); err != nil {
		return domain.Message{}, 0, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if rm.ID == nil {
		return domain.Message{}, 0, fmt.Errorf("message has no id")
	}

	msg := domain.Message{
		ID:               *rm.ID,
		Type:             rm.Type,
		Date:             rm.Date,
		FromID:           rm.FromID,
		ActorID:          rm.ActorID,
		ReplyToMessageID: rm.ReplyToMessageID,
		Text:             rm.Text,
	}
	if rm.From != nil {
		msg.From = *rm.From
	}
	if rm.Actor != nil {
		msg.Actor = *rm.Actor
	}

	skipped := 0
	for _, re := range rm.TextEntities {
		var e rawEntity
		if err := json.Unmarshal(re, &e); err != nil || e.Type == nil || e.Text == nil {
			skipped++
			continue
		}
		msg.TextEntities = append(msg.TextEntities, domain.TextEntity{
			Type:   *e.Type,
			Text:   *e.Text,
			Href:   e.Href,
			UserID: e.UserID,
		})
	}

	return msg, skipped, nil
}
