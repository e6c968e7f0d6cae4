package source

import (
	"errors"

	"telegram-chat-stats/internal/ports"
)

// ErrNoData возвращается MemorySource без данных.
var ErrNoData = errors.New("data not set")

// MemorySource реализует интерфейс DataSource для чтения данных из памяти.
type MemorySource struct {
	data []byte
}

// NewMemorySource создает новый экземпляр MemorySource.
func NewMemorySource(data []byte) ports.DataSource {
	return &MemorySource{data: data}
}

// Name возвращает условное имя источника.
func (s *MemorySource) Name() string {
	return "memory"
}

// Fetch возвращает данные из памяти.
func (s *MemorySource) Fetch() ([]byte, error) {
	if s.data == nil {
		return nil, ErrNoData
	}

	// Возвращаем копию данных, чтобы избежать изменений оригинальных данных
	dataCopy := make([]byte, len(s.data))
	copy(dataCopy, s.data)

	return dataCopy, nil
}
