package exporter

import (
	"fmt"
	"io"
	"os"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// ConsoleExporter реализует интерфейс Exporter для вывода отчета в консоль.
type ConsoleExporter struct {
	out io.Writer
}

// NewConsoleExporter создает новый экземпляр ConsoleExporter, пишущий в stdout.
func NewConsoleExporter() ports.Exporter {
	return &ConsoleExporter{out: os.Stdout}
}

// NewConsoleExporterTo создает ConsoleExporter с произвольным приемником вывода.
func NewConsoleExporterTo(w io.Writer) ports.Exporter {
	return &ConsoleExporter{out: w}
}

// Export выводит рейтинги участников и количество элементов по категориям.
func (e *ConsoleExporter) Export(report *domain.Report) error {
	fmt.Fprintf(e.out, "--- Chat Report: %s ---\n", report.ArchiveName)
	fmt.Fprintf(e.out, "Messages: %d", report.MessageCount)
	if report.Skipped.Messages > 0 || report.Skipped.Entities > 0 {
		fmt.Fprintf(e.out, " (skipped messages: %d, skipped entities: %d)", report.Skipped.Messages, report.Skipped.Entities)
	}
	fmt.Fprintln(e.out)

	printRanking(e.out, "Top questioners", report.TopQuestioners)
	printRanking(e.out, "Top repliers", report.TopRepliers)
	printRanking(e.out, "Top repliers to questions", report.TopRepliersToQuestions)
	printRanking(e.out, "Top words", report.TopWords)

	fmt.Fprintln(e.out, "\n--- Categories ---")
	for _, c := range domain.AllCategories {
		fmt.Fprintf(e.out, "%s: %d\n", c, report.Counts[c])
	}
	return nil
}

func printRanking(w io.Writer, title string, entries []domain.RankedEntry) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	for i, entry := range entries {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, entry.Name, entry.Count)
	}
}
