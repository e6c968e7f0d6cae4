package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"telegram-chat-stats/internal/adapters/exporter"
	"telegram-chat-stats/internal/adapters/parser"
	"telegram-chat-stats/internal/adapters/render"
	"telegram-chat-stats/internal/adapters/source"
	"telegram-chat-stats/internal/core/services"
	"telegram-chat-stats/internal/log"
	"telegram-chat-stats/internal/pkg/config"
	"telegram-chat-stats/internal/pkg/persian"
	"telegram-chat-stats/internal/ports"
	"telegram-chat-stats/internal/usecase"
)

// Version перезаписывается при сборке через -ldflags.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует разбор аргументов и запуск команды.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatstats [archive.json]",
		Short: "Статистика по экспортированному архиву чата Telegram",
		Long: "chatstats читает result.json из экспорта Telegram Desktop, извлекает ссылки, " +
			"хештеги и упоминания, строит облако слов и рейтинги участников.\n" +
			"Без аргумента путь к архиву запрашивается интерактивно.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}

	cmd.Version = Version
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().StringP("config", "c", "", "путь к файлу конфигурации (по умолчанию config.yml)")
	cmd.Flags().StringP("output", "o", "", "каталог для артефактов отчета")
	cmd.Flags().String("font", "", "TTF-шрифт для облака слов")
	cmd.Flags().Int("top", 0, "размер рейтингов")
	cmd.Flags().Bool("no-render", false, "не строить облако слов")
	cmd.Flags().Bool("xlsx", true, "записать рейтинги в participation.xlsx")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	stopwords, err := persian.StopwordsFromFile(cfg.Processing.ExtraStopwordsFile)
	if err != nil {
		return err
	}

	var ds ports.DataSource
	if len(args) == 1 {
		ds = source.NewCliSource(args[0])
	} else {
		ds = source.NewTerminalSource()
	}

	analyzer := usecase.NewAnalyzeChatUseCase(cfg,
		parser.NewJsonParser(),
		services.NewExtractionService(),
		services.NewNormalizationService(stopwords),
		services.NewParticipationService(),
		nil,
	)

	var renderer ports.Renderer
	if cfg.Output.Render {
		renderer = render.NewWordCloud(
			render.WithSize(cfg.Output.Wordcloud.Width, cfg.Output.Wordcloud.Height),
			render.WithMaxWords(cfg.Output.Wordcloud.MaxWords),
			render.WithBackground(cfg.Output.Wordcloud.Background),
			render.WithLogger(logger),
		)
	}

	exporters := []ports.Exporter{exporter.NewConsoleExporterTo(cmd.OutOrStdout())}
	if cfg.Output.XLSX {
		exporters = append(exporters, exporter.NewExcelExporter(cfg.Output.Dir))
	}

	report := usecase.NewReportUseCase(analyzer,
		exporter.NewFileExporter(cfg.Output.Dir),
		renderer,
		cfg.Output.Dir,
		cfg.Output.FontPath,
		exporters...,
	)

	if _, err := report.Run(cmd.Context(), ds); err != nil {
		return err
	}
	slog.Info("Отчет готов", "output_dir", cfg.Output.Dir)
	return nil
}

// applyFlags переносит явно заданные флаги поверх конфигурации.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Dir, _ = flags.GetString("output")
	}
	if flags.Changed("font") {
		cfg.Output.FontPath, _ = flags.GetString("font")
	}
	if flags.Changed("top") {
		top, err := flags.GetInt("top")
		if err != nil {
			return err
		}
		cfg.Processing.TopN = top
	}
	if flags.Changed("no-render") {
		noRender, _ := flags.GetBool("no-render")
		cfg.Output.Render = !noRender
	}
	if flags.Changed("xlsx") {
		cfg.Output.XLSX, _ = flags.GetBool("xlsx")
	}
	return nil
}
