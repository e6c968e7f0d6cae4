package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// ExcelFileName - имя файла отчета об участии.
const ExcelFileName = "participation.xlsx"

// Листы книги отчета.
const (
	SheetQuestioners        = "Questioners"
	SheetRepliers           = "Repliers"
	SheetRepliesToQuestions = "Replies to questions"
	SheetCategories         = "Categories"
)

// ExcelExporter записывает рейтинги участников и количество элементов
// по категориям в книгу XLSX.
type ExcelExporter struct {
	dir string
}

// NewExcelExporter создает ExcelExporter, пишущий в каталог dir.
func NewExcelExporter(dir string) ports.Exporter {
	return &ExcelExporter{dir: dir}
}

// Export сохраняет отчет в dir/participation.xlsx.
func (e *ExcelExporter) Export(report *domain.Report) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", e.dir, err)
	}

	f, err := newWorkbook(report)
	if err != nil {
		return err
	}
	defer closeWorkbook(f)

	path := filepath.Join(e.dir, ExcelFileName)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	slog.Info("Отчет XLSX сохранен", "path", path)
	return nil
}

// WriteWorkbook записывает книгу отчета в w без сохранения на диск.
func WriteWorkbook(w io.Writer, report *domain.Report) error {
	f, err := newWorkbook(report)
	if err != nil {
		return err
	}
	defer closeWorkbook(f)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newWorkbook(report *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		closeWorkbook(f)
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// первый лист новой книги переименовывается, остальные создаются
	if err := f.SetSheetName("Sheet1", SheetQuestioners); err != nil {
		closeWorkbook(f)
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	rankings := []struct {
		sheet   string
		entries []domain.RankedEntry
	}{
		{SheetQuestioners, report.TopQuestioners},
		{SheetRepliers, report.TopRepliers},
		{SheetRepliesToQuestions, report.TopRepliersToQuestions},
	}
	for _, r := range rankings {
		if err := writeRanking(f, r.sheet, r.entries, header); err != nil {
			closeWorkbook(f)
			return nil, err
		}
	}
	if err := writeCategoryCounts(f, report.Counts, header); err != nil {
		closeWorkbook(f)
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func closeWorkbook(f *excelize.File) {
	if err := f.Close(); err != nil {
		slog.Warn("Не удалось закрыть книгу", "error", err)
	}
}

func ensureSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %q: %w", sheet, err)
	}
	if idx >= 0 {
		return nil
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	return nil
}

func writeRanking(f *excelize.File, sheet string, entries []domain.RankedEntry, header int) error {
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}
	if err := writeHeader(f, sheet, header, "#", "Name", "Count"); err != nil {
		return err
	}
	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{i + 1, entry.Name, entry.Count}); err != nil {
			return fmt.Errorf("failed to write row to %q: %w", sheet, err)
		}
	}
	return f.SetColWidth(sheet, "B", "B", 32)
}

func writeCategoryCounts(f *excelize.File, counts map[domain.Category]int, header int) error {
	if err := ensureSheet(f, SheetCategories); err != nil {
		return err
	}
	if err := writeHeader(f, SheetCategories, header, "Category", "Count"); err != nil {
		return err
	}
	for i, c := range domain.AllCategories {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetCategories, cell, &[]interface{}{string(c), counts[c]}); err != nil {
			return fmt.Errorf("failed to write row to %q: %w", SheetCategories, err)
		}
	}
	return f.SetColWidth(SheetCategories, "A", "A", 20)
}

func writeHeader(f *excelize.File, sheet string, style int, titles ...string) error {
	row := make([]interface{}, len(titles))
	for i, t := range titles {
		row[i] = t
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("failed to write header to %q: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(titles), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
