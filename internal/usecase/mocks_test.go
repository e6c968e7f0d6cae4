package usecase

import (
	"github.com/stretchr/testify/mock"

	"telegram-chat-stats/internal/domain"
)

type mockParser struct{ mock.Mock }

func (m *mockParser) Parse(data []byte) (*domain.Archive, error) {
	args := m.Called(data)
	if res := args.Get(0); res != nil {
		return res.(*domain.Archive), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockExtractor struct{ mock.Mock }

func (m *mockExtractor) Extract(archive *domain.Archive) *domain.ExtractionResult {
	args := m.Called(archive)
	return args.Get(0).(*domain.ExtractionResult)
}

type mockNormalizer struct{ mock.Mock }

func (m *mockNormalizer) Tokens(text string) []string {
	args := m.Called(text)
	return args.Get(0).([]string)
}

func (m *mockNormalizer) Display(tokens []string) string {
	return m.Called(tokens).String(0)
}

type mockParticipation struct{ mock.Mock }

func (m *mockParticipation) BuildIndex(archive *domain.Archive) *domain.ParticipationIndex {
	args := m.Called(archive)
	return args.Get(0).(*domain.ParticipationIndex)
}

type mockSource struct{ mock.Mock }

func (m *mockSource) Name() string { return "mock.json" }

func (m *mockSource) Fetch() ([]byte, error) {
	args := m.Called()
	if res := args.Get(0); res != nil {
		return res.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockWriter struct{ mock.Mock }

func (m *mockWriter) WriteCategories(result *domain.ExtractionResult) error {
	return m.Called(result).Error(0)
}

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Render(text, fontPath, outPath string) error {
	return m.Called(text, fontPath, outPath).Error(0)
}

type mockExporter struct{ mock.Mock }

func (m *mockExporter) Export(report *domain.Report) error {
	return m.Called(report).Error(0)
}
