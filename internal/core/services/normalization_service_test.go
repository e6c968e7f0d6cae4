package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"telegram-chat-stats/internal/pkg/persian"
)

func TestNormalizationService(t *testing.T) {
	service := NewNormalizationService(persian.NewStopwordSet("و", "از", "؟", "،"))

	t.Run("Пустой текст", func(t *testing.T) {
		assert.Empty(t, service.Tokens(""))
		assert.Equal(t, "", service.Normalize(""))
	})

	t.Run("Токены без эмодзи и стоп-слов", func(t *testing.T) {
		tokens := service.Tokens("  كتاب و دنیا \U0001f600  از")
		assert.Equal(t, []string{"کتاب", "دنیا"}, tokens)
	})

	t.Run("Фильтрация стоп-слов идемпотентна", func(t *testing.T) {
		sw := persian.DefaultStopwords()
		tokens := NewNormalizationService(sw).Tokens("سلام، چطوری؟ من از کتاب ها و دنیا خوشم می آید")
		assert.Equal(t, tokens, sw.Filter(tokens))
		for _, tok := range tokens {
			assert.False(t, sw.Contains(tok), tok)
		}
	})

	t.Run("Текст только из стоп-слов дает пустую строку", func(t *testing.T) {
		assert.Equal(t, "", service.Normalize("و از ؟ \U0001f600"))
	})

	t.Run("Результат в контекстных формах и визуальном порядке", func(t *testing.T) {
		assert.Equal(t, "\ufee1\ufefc\ufeb3", service.Normalize("سلام"))
	})

	t.Run("Display совпадает с Normalize", func(t *testing.T) {
		text := "سلام و کتاب 😀"
		tokens := service.Tokens(text)
		assert.Equal(t, service.Normalize(text), service.Display(tokens))
		assert.Equal(t, "", service.Display(nil))
	})

	t.Run("ZWNJ не остается в результате", func(t *testing.T) {
		out := service.Normalize("کتاب ها")
		assert.NotEmpty(t, out)
		assert.NotContains(t, out, "\u200c")
	})
}
