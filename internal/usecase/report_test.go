package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"telegram-chat-stats/internal/pkg/config"
)

func TestReportUseCase_Run(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	data := []byte(`{"messages":[]}`)

	newSource := func() *mockSource {
		src := new(mockSource)
		src.On("Fetch").Return(data, nil)
		return src
	}

	t.Run("all artifacts are emitted", func(t *testing.T) {
		m := newAnalyzeMocks()
		m.expectHappyPath(data)
		writer, renderer, exporter := new(mockWriter), new(mockRenderer), new(mockExporter)

		writer.On("WriteCategories", mock.Anything).Return(nil)
		renderer.On("Render", "clean", "/fonts/f.ttf", filepath.Join("out", WordcloudFileName)).Return(nil)
		exporter.On("Export", mock.Anything).Return(nil)

		uc := NewReportUseCase(m.useCase(cfg, nil), writer, renderer, "out", "/fonts/f.ttf", exporter)
		report, err := uc.Run(ctx, newSource())
		require.NoError(t, err)
		assert.Equal(t, "Test Chat", report.ArchiveName)

		writer.AssertExpectations(t)
		renderer.AssertExpectations(t)
		exporter.AssertCalled(t, "Export", report)
	})

	t.Run("artifact failures do not stop the others", func(t *testing.T) {
		m := newAnalyzeMocks()
		m.expectHappyPath(data)
		writer, renderer := new(mockWriter), new(mockRenderer)
		first, second := new(mockExporter), new(mockExporter)

		writer.On("WriteCategories", mock.Anything).Return(errors.New("disk full"))
		renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("empty text"))
		first.On("Export", mock.Anything).Return(errors.New("xlsx failed"))
		second.On("Export", mock.Anything).Return(nil)

		uc := NewReportUseCase(m.useCase(cfg, nil), writer, renderer, "out", "", first, second)
		report, err := uc.Run(ctx, newSource())
		require.NoError(t, err)
		require.NotNil(t, report)

		renderer.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("renderer disabled", func(t *testing.T) {
		m := newAnalyzeMocks()
		m.expectHappyPath(data)
		writer := new(mockWriter)
		writer.On("WriteCategories", mock.Anything).Return(nil)

		uc := NewReportUseCase(m.useCase(cfg, nil), writer, nil, "out", "")
		_, err := uc.Run(ctx, newSource())
		require.NoError(t, err)
		writer.AssertExpectations(t)
	})

	t.Run("load error is fatal", func(t *testing.T) {
		m := newAnalyzeMocks()
		writer := new(mockWriter)
		src := new(mockSource)
		src.On("Fetch").Return(nil, errors.New("missing file"))

		uc := NewReportUseCase(m.useCase(cfg, nil), writer, nil, "out", "")
		report, err := uc.Run(ctx, src)
		require.Error(t, err)
		assert.Nil(t, report)
		writer.AssertNotCalled(t, "WriteCategories", mock.Anything)
	})
}
