package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-chat-stats/internal/domain"
)

func TestFileExporter(t *testing.T) {
	t.Run("Повторы записываются один раз", func(t *testing.T) {
		dir := t.TempDir()
		result := domain.NewExtractionResult("", map[domain.Category][]string{
			domain.CategoryHashtag: {"#a", "#b", "#a"},
			domain.CategoryEmail:   {"a@example.com"},
		})

		require.NoError(t, NewFileExporter(dir).WriteCategories(result))

		data, err := os.ReadFile(filepath.Join(dir, "hashtags.txt"))
		require.NoError(t, err)
		assert.Equal(t, "#a\n#b\n", string(data))

		data, err = os.ReadFile(filepath.Join(dir, "emails.txt"))
		require.NoError(t, err)
		assert.Equal(t, "a@example.com\n", string(data))
	})

	t.Run("Файл создается для каждой категории", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		result := domain.NewExtractionResult("  text", nil)

		require.NoError(t, NewFileExporter(dir).WriteCategories(result))

		for _, c := range domain.AllCategories {
			info, err := os.Stat(filepath.Join(dir, CategoryFiles[c]))
			require.NoError(t, err, c)
			assert.Zero(t, info.Size(), c)
		}
	})

	t.Run("Ошибка одного файла не мешает остальным", func(t *testing.T) {
		dir := t.TempDir()
		// каталог на месте файла делает запись невозможной
		require.NoError(t, os.Mkdir(filepath.Join(dir, "bold.txt"), 0o755))

		result := domain.NewExtractionResult("", map[domain.Category][]string{
			domain.CategoryBold:   {"x"},
			domain.CategoryItalic: {"y"},
		})

		err := NewFileExporter(dir).WriteCategories(result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bold.txt")

		data, readErr := os.ReadFile(filepath.Join(dir, "italic.txt"))
		require.NoError(t, readErr)
		assert.Equal(t, "y\n", string(data))
	})

	t.Run("Все категории имеют имя файла", func(t *testing.T) {
		for _, c := range domain.AllCategories {
			assert.NotEmpty(t, CategoryFiles[c], c)
		}
	})
}
