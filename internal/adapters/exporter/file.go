package exporter

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// CategoryFiles задает имя файла для каждой категории.
var CategoryFiles = map[domain.Category]string{
	domain.CategoryEmail:       "emails.txt",
	domain.CategoryHashtag:     "hashtags.txt",
	domain.CategoryLink:        "links.txt",
	domain.CategoryTextLink:    "text_links.txt",
	domain.CategoryMention:     "mentions.txt",
	domain.CategoryMentionName: "mention_names.txt",
	domain.CategoryCode:        "code.txt",
	domain.CategoryBold:        "bold.txt",
	domain.CategoryItalic:      "italic.txt",
}

// FileExporter записывает каждую категорию в отдельный текстовый файл.
// В файле каждое значение встречается один раз, в порядке первого появления.
type FileExporter struct {
	dir string
}

// NewFileExporter создает FileExporter, пишущий в каталог dir.
func NewFileExporter(dir string) ports.CategoryWriter {
	return &FileExporter{dir: dir}
}

// WriteCategories записывает все категории. Ошибка одного файла не мешает
// записи остальных; все ошибки возвращаются вместе.
func (e *FileExporter) WriteCategories(result *domain.ExtractionResult) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", e.dir, err)
	}

	var errs []error
	for _, c := range domain.AllCategories {
		path := filepath.Join(e.dir, CategoryFiles[c])
		if err := writeLines(path, distinct(result.Items(c))); err != nil {
			slog.Error("Не удалось записать файл категории", "category", c, "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		slog.Debug("Файл категории записан", "category", c, "path", path)
	}
	return errors.Join(errs...)
}

func distinct(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func writeLines(path string, lines []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
