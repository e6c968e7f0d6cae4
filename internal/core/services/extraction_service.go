package services

import (
	"strings"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// plainSeparator предшествует каждому plain-фрагменту в склеенном тексте.
const plainSeparator = "  "

// sanitizer заменяет пробелом невидимые соединители, вариационные селекторы
// и модификаторы тона кожи.
var sanitizer = strings.NewReplacer(
	"\u200d", " ",
	"\u200c", " ",
	"\ufe0e", " ",
	"\ufe0f", " ",
	"\U0001f3fb", " ",
	"\U0001f3fc", " ",
	"\U0001f3fd", " ",
	"\U0001f3fe", " ",
	"\U0001f3ff", " ",
)

func sanitize(s string) string {
	return sanitizer.Replace(s)
}

// ExtractionServiceImpl реализует интерфейс ExtractionService.
type ExtractionServiceImpl struct{}

// NewExtractionService создает новый экземпляр ExtractionServiceImpl.
func NewExtractionService() ports.ExtractionService {
	return &ExtractionServiceImpl{}
}

// Extract раскладывает сущности всех сообщений по категориям в порядке
// документа. Plain-фрагменты склеиваются в один текст, каждый с двумя
// пробелами впереди. Сущности неизвестных типов пропускаются.
func (s *ExtractionServiceImpl) Extract(archive *domain.Archive) *domain.ExtractionResult {
	var plain strings.Builder
	categories := make(map[domain.Category][]string, len(domain.AllCategories))

	for _, msg := range archive.Messages {
		for _, entity := range msg.TextEntities {
			kind := entity.Kind()
			if kind == domain.KindPlain {
				plain.WriteString(plainSeparator)
				plain.WriteString(sanitize(entity.Text))
				continue
			}
			category, ok := kind.Category()
			if !ok {
				continue
			}
			categories[category] = append(categories[category], sanitize(entity.Payload()))
		}
	}

	return domain.NewExtractionResult(plain.String(), categories)
}
