package domain

import "encoding/json"

// Archive представляет корневую структуру файла экспорта истории чата.
// После загрузки архив не изменяется.
type Archive struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	ID       int64     `json:"id"`
	Messages []Message `json:"messages"`

	// Skipped содержит количество отброшенных при разборе некорректных единиц.
	Skipped SkipStats `json:"-"`
}

// SkipStats считает сообщения и сущности, пропущенные как некорректные.
type SkipStats struct {
	Messages int `json:"messages"`
	Entities int `json:"entities"`
}

// Message представляет одно сообщение в чате.
type Message struct {
	ID               int             `json:"id"`
	Type             string          `json:"type"`
	Date             string          `json:"date"`
	From             string          `json:"from"`
	FromID           string          `json:"from_id"`
	Actor            string          `json:"actor"`
	ActorID          string          `json:"actor_id"`
	ReplyToMessageID *int            `json:"reply_to_message_id,omitempty"`
	Text             json.RawMessage `json:"text"` // Может быть строкой или массивом
	TextEntities     []TextEntity    `json:"text_entities"`
}

// Author возвращает автора сообщения: поле from, а для служебных сообщений
// поле actor. Второе значение false, если автор не определен.
func (m Message) Author() (string, bool) {
	if m.From != "" {
		return m.From, true
	}
	if m.Actor != "" {
		return m.Actor, true
	}
	return "", false
}

// PlainFragments возвращает plain-фрагменты текста сообщения. Источник -
// text_entities; если их нет, разбирается поле text (строка или массив из
// строк и объектов с type/text).
func (m Message) PlainFragments() []string {
	var out []string
	if len(m.TextEntities) > 0 {
		for _, e := range m.TextEntities {
			if e.Kind() == KindPlain {
				out = append(out, e.Text)
			}
		}
		return out
	}
	if len(m.Text) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(m.Text, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(m.Text, &parts); err != nil {
		return nil
	}
	for _, part := range parts {
		if err := json.Unmarshal(part, &s); err == nil {
			out = append(out, s)
			continue
		}
		var e TextEntity
		if err := json.Unmarshal(part, &e); err == nil && e.Kind() == KindPlain {
			out = append(out, e.Text)
		}
	}
	return out
}

// IsReply сообщает, является ли сообщение ответом на другое сообщение.
func (m Message) IsReply() bool {
	return m.ReplyToMessageID != nil
}

// TextEntity представляет "богатую" часть текста (упоминание, ссылка и т.д.).
type TextEntity struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Href   string `json:"href,omitempty"`
	UserID int64  `json:"user_id,omitempty"`
}

// Kind возвращает тип сущности из закрытого перечисления EntityKind.
func (e TextEntity) Kind() EntityKind {
	return ParseEntityKind(e.Type)
}

// Payload возвращает значение сущности, попадающее в категорию.
// Для text_link это адрес ссылки, а не видимый текст.
func (e TextEntity) Payload() string {
	if e.Kind() == KindTextLink && e.Href != "" {
		return e.Href
	}
	return e.Text
}
