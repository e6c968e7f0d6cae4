package services

import (
	"strings"

	"telegram-chat-stats/internal/pkg/emoji"
	"telegram-chat-stats/internal/pkg/persian"
	"telegram-chat-stats/internal/ports"
)

// NormalizationServiceImpl готовит plain-текст к построению облака слов:
// убирает эмодзи, нормализует персидское письмо, отбрасывает стоп-слова,
// затем переводит буквы в контекстные формы и визуальный порядок.
type NormalizationServiceImpl struct {
	normalizer *persian.Normalizer
	stopwords  persian.StopwordSet
}

// NewNormalizationService создает сервис с заданным набором стоп-слов.
func NewNormalizationService(stopwords persian.StopwordSet) ports.NormalizationService {
	return &NormalizationServiceImpl{
		normalizer: persian.NewNormalizer(),
		stopwords:  stopwords,
	}
}

// Tokens возвращает значимые токены текста в исходном (логическом) порядке.
func (s *NormalizationServiceImpl) Tokens(text string) []string {
	text = emoji.Strip(text)
	text = s.normalizer.Normalize(text)
	return s.stopwords.Filter(persian.Tokenize(text))
}

// Normalize возвращает строку для отрисовки. Пустой вход дает пустую строку.
func (s *NormalizationServiceImpl) Normalize(text string) string {
	return s.Display(s.Tokens(text))
}

// Display переводит уже отфильтрованные токены в контекстные формы
// и визуальный порядок.
func (s *NormalizationServiceImpl) Display(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	out := strings.Join(tokens, " ")
	out = persian.Reshape(out)
	out = persian.StripInvisible(out)
	return persian.Display(out)
}
