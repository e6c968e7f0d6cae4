package source

import (
	"errors"
	"fmt"
	"os"

	"telegram-chat-stats/internal/ports"
)

// ErrNoPath возвращается, если путь к архиву не задан.
var ErrNoPath = errors.New("не указан путь к файлу")

// CliSource реализует интерфейс DataSource для чтения архива из файла,
// указанного в командной строке.
type CliSource struct {
	filePath string
}

// NewCliSource создает новый экземпляр CliSource.
func NewCliSource(filePath string) ports.DataSource {
	return &CliSource{filePath: filePath}
}

// Name возвращает путь к файлу.
func (s *CliSource) Name() string {
	return s.filePath
}

// Fetch читает файл по указанному пути и возвращает его содержимое.
func (s *CliSource) Fetch() ([]byte, error) {
	if s.filePath == "" {
		return nil, ErrNoPath
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", s.filePath, err)
	}

	return data, nil
}
