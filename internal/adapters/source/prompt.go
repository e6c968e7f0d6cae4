package source

import (
	"fmt"
	"strings"

	"telegram-chat-stats/internal/pkg/term"
	"telegram-chat-stats/internal/ports"
)

// Asker задает пользователю вопрос и возвращает ответ.
type Asker interface {
	Ask(prompt string) (string, error)
}

// PromptSource спрашивает путь к архиву у пользователя и читает файл.
type PromptSource struct {
	asker Asker
	path  string
}

// NewPromptSource создает источник, запрашивающий путь через asker.
func NewPromptSource(asker Asker) ports.DataSource {
	return &PromptSource{asker: asker}
}

// NewTerminalSource создает источник, запрашивающий путь в терминале.
func NewTerminalSource() ports.DataSource {
	return NewPromptSource(term.NewTerminal())
}

// Name возвращает путь, введенный при последнем вызове Fetch.
func (s *PromptSource) Name() string {
	return s.path
}

// Fetch запрашивает путь и читает указанный файл.
func (s *PromptSource) Fetch() ([]byte, error) {
	path, err := s.asker.Ask("Enter the chat export file name: ")
	if err != nil {
		return nil, fmt.Errorf("failed to ask for archive path: %w", err)
	}
	s.path = strings.TrimSpace(path)
	return NewCliSource(s.path).Fetch()
}
