package usecase

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// WordcloudFileName - имя файла изображения облака слов в каталоге вывода.
const WordcloudFileName = "wordcloud.png"

// ReportUseCase строит отчет и выдает артефакты: файлы категорий,
// облако слов и отчеты экспортеров.
type ReportUseCase struct {
	analyzer  *AnalyzeChatUseCase
	writer    ports.CategoryWriter
	renderer  ports.Renderer
	exporters []ports.Exporter
	outDir    string
	fontPath  string
}

// NewReportUseCase создает новый экземпляр ReportUseCase.
// renderer может быть nil, тогда облако слов не строится.
func NewReportUseCase(
	analyzer *AnalyzeChatUseCase,
	writer ports.CategoryWriter,
	renderer ports.Renderer,
	outDir, fontPath string,
	exporters ...ports.Exporter,
) *ReportUseCase {
	return &ReportUseCase{
		analyzer:  analyzer,
		writer:    writer,
		renderer:  renderer,
		exporters: exporters,
		outDir:    outDir,
		fontPath:  fontPath,
	}
}

// Run анализирует архив из источника и записывает все артефакты.
// Ошибка возвращается только если архив не удалось загрузить или разобрать;
// сбои отдельных артефактов логируются и не мешают остальным.
func (uc *ReportUseCase) Run(ctx context.Context, ds ports.DataSource) (*domain.Report, error) {
	analysis, err := uc.analyzer.AnalyzeSource(ctx, ds)
	if err != nil {
		return nil, err
	}

	if err := uc.emit(analysis); err != nil {
		slog.Error("Не все артефакты отчета записаны", "error", err)
	}
	return analysis.Report, nil
}

func (uc *ReportUseCase) emit(analysis *Analysis) error {
	var errs []error

	if err := uc.writer.WriteCategories(analysis.Extraction); err != nil {
		errs = append(errs, err)
	}

	if uc.renderer != nil {
		out := filepath.Join(uc.outDir, WordcloudFileName)
		if err := uc.renderer.Render(analysis.Report.CleanText, uc.fontPath, out); err != nil {
			slog.Error("Не удалось построить облако слов", "path", out, "error", err)
			errs = append(errs, err)
		}
	}

	for _, exp := range uc.exporters {
		if err := exp.Export(analysis.Report); err != nil {
			slog.Error("Не удалось экспортировать отчет", "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
