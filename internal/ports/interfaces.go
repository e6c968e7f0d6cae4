package ports

import "telegram-chat-stats/internal/domain"

// DataSource определяет интерфейс для получения исходных данных архива.
type DataSource interface {
	// Fetch загружает данные из источника и возвращает их в виде байтового среза.
	Fetch() ([]byte, error)
	// Name возвращает имя источника для сообщений об ошибках (например, путь к файлу).
	Name() string
}

// Parser определяет интерфейс для разбора архива чата.
type Parser interface {
	// Parse преобразует сырые данные в структурированную модель архива.
	Parse(data []byte) (*domain.Archive, error)
}

// ExtractionService раскладывает текстовые сущности архива по категориям.
type ExtractionService interface {
	Extract(archive *domain.Archive) *domain.ExtractionResult
}

// NormalizationService готовит plain-текст для построения облака слов.
type NormalizationService interface {
	// Tokens возвращает токены текста после фильтрации стоп-слов.
	Tokens(text string) []string
	// Display собирает токены в строку, готовую для отрисовки.
	Display(tokens []string) string
}

// ParticipationService строит индексы участия (вопросы и ответы).
type ParticipationService interface {
	BuildIndex(archive *domain.Archive) *domain.ParticipationIndex
}

// Renderer отрисовывает облако слов по подготовленной строке.
type Renderer interface {
	Render(text, fontPath, outPath string) error
}

// CategoryWriter записывает категории извлечения в отдельные артефакты.
type CategoryWriter interface {
	WriteCategories(result *domain.ExtractionResult) error
}

// Exporter определяет интерфейс для вывода итогового отчета.
type Exporter interface {
	Export(report *domain.Report) error
}
