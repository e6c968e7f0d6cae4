// Package usecase связывает загрузку архива, анализ и выдачу результатов.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"telegram-chat-stats/internal/cache"
	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/pkg/config"
	"telegram-chat-stats/internal/ports"
)

// Analysis - результат анализа одного архива.
type Analysis struct {
	Report     *domain.Report
	Extraction *domain.ExtractionResult
}

// Upload - отчет, выданный по загруженному архиву.
type Upload struct {
	ReportID string
	Hash     string
	Report   *domain.Report
	Cached   bool
}

// AnalyzeChatUseCase инкапсулирует анализ архива: разбор, извлечение
// категорий, нормализацию текста и подсчет участия.
type AnalyzeChatUseCase struct {
	topN          int
	cacheTTL      time.Duration
	parser        ports.Parser
	extractor     ports.ExtractionService
	normalizer    ports.NormalizationService
	participation ports.ParticipationService
	reports       *cache.ReportCache
}

// NewAnalyzeChatUseCase создает новый экземпляр AnalyzeChatUseCase.
// reports может быть nil, тогда результаты не кэшируются.
func NewAnalyzeChatUseCase(
	cfg *config.Config,
	parser ports.Parser,
	extractor ports.ExtractionService,
	normalizer ports.NormalizationService,
	participation ports.ParticipationService,
	reports *cache.ReportCache,
) *AnalyzeChatUseCase {
	return &AnalyzeChatUseCase{
		topN:          cfg.Processing.TopN,
		cacheTTL:      cfg.Processing.CacheTTL,
		parser:        parser,
		extractor:     extractor,
		normalizer:    normalizer,
		participation: participation,
		reports:       reports,
	}
}

// AnalyzeSource загружает архив из источника и анализирует его.
func (uc *AnalyzeChatUseCase) AnalyzeSource(ctx context.Context, ds ports.DataSource) (*Analysis, error) {
	data, err := ds.Fetch()
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить архив: %w", err)
	}
	return uc.analyze(ctx, ds.Name(), data)
}

// Analyze разбирает архив и строит отчет.
func (uc *AnalyzeChatUseCase) Analyze(ctx context.Context, data []byte) (*Analysis, error) {
	return uc.analyze(ctx, "", data)
}

func (uc *AnalyzeChatUseCase) analyze(ctx context.Context, name string, data []byte) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archive, err := uc.parser.Parse(data)
	if err != nil {
		if name != "" {
			return nil, fmt.Errorf("не удалось разобрать архив %s: %w", name, err)
		}
		return nil, fmt.Errorf("не удалось разобрать архив: %w", err)
	}
	slog.Info("Разобран архив", "name", archive.Name, "message_count", len(archive.Messages),
		"skipped_messages", archive.Skipped.Messages, "skipped_entities", archive.Skipped.Entities)

	extraction := uc.extractor.Extract(archive)
	slog.Info("Извлечены категории", "items", extraction.Total())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := uc.normalizer.Tokens(extraction.PlainText)
	words := domain.NewTally()
	for _, tok := range tokens {
		words.Add(tok)
	}
	cleanText := uc.normalizer.Display(tokens)

	index := uc.participation.BuildIndex(archive)

	report := &domain.Report{
		ArchiveName:            archive.Name,
		MessageCount:           len(archive.Messages),
		Skipped:                archive.Skipped,
		Extraction:             make(map[domain.Category][]string, len(domain.AllCategories)),
		Counts:                 make(map[domain.Category]int, len(domain.AllCategories)),
		CleanText:              cleanText,
		TopWords:               words.Top(uc.topN),
		TopQuestioners:         index.TopQuestioners(uc.topN),
		TopRepliers:            index.TopRepliers(uc.topN),
		TopRepliersToQuestions: index.TopRepliersToQuestions(uc.topN),
	}
	for _, c := range domain.AllCategories {
		report.Extraction[c] = extraction.Items(c)
		report.Counts[c] = extraction.Count(c)
	}

	slog.Info("Анализ завершен", "distinct_words", words.Len(), "questions", len(index.Questions()))
	return &Analysis{Report: report, Extraction: extraction}, nil
}

// AnalyzeUpload анализирует загруженный архив. Повторная загрузка того же
// содержимого возвращает закэшированный отчет с прежним идентификатором.
func (uc *AnalyzeChatUseCase) AnalyzeUpload(ctx context.Context, data []byte) (*Upload, error) {
	hash := cache.HashBytes(data)
	if uc.reports != nil {
		if e, ok := uc.reports.Get(hash); ok {
			slog.Info("Попадание в кеш", "hash", hash, "report_id", e.ReportID)
			return &Upload{ReportID: e.ReportID, Hash: hash, Report: e.Report, Cached: true}, nil
		}
	}

	analysis, err := uc.Analyze(ctx, data)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if uc.reports != nil {
		uc.reports.Put(hash, id, analysis.Report, uc.cacheTTL)
		slog.Info("Отчет кеширован", "hash", hash, "report_id", id, "ttl", uc.cacheTTL.String())
	}
	return &Upload{ReportID: id, Hash: hash, Report: analysis.Report}, nil
}

// Lookup возвращает ранее построенный отчет по хешу архива.
func (uc *AnalyzeChatUseCase) Lookup(hash string) (*Upload, bool) {
	if uc.reports == nil {
		return nil, false
	}
	e, ok := uc.reports.Get(hash)
	if !ok {
		return nil, false
	}
	return &Upload{ReportID: e.ReportID, Hash: hash, Report: e.Report, Cached: true}, true
}
