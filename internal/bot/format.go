package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"telegram-chat-stats/cmd/bot/config"
	"telegram-chat-stats/internal/domain"
)

// maxMessageLength - ограничение Telegram на длину текстового сообщения.
const maxMessageLength = 4096

// formatReport форматирует отчет как HTML-сообщение с таблицами рейтингов.
func formatReport(report *domain.Report, widths config.ColumnWidths) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\n", html.EscapeString(report.ArchiveName))
	fmt.Fprintf(&sb, "Сообщений: %d\n", report.MessageCount)
	if report.Skipped.Messages > 0 || report.Skipped.Entities > 0 {
		fmt.Fprintf(&sb, "Пропущено: сообщений %d, сущностей %d\n", report.Skipped.Messages, report.Skipped.Entities)
	}

	sections := []struct {
		title   string
		entries []domain.RankedEntry
	}{
		{"Задают вопросы", report.TopQuestioners},
		{"Отвечают", report.TopRepliers},
		{"Отвечают на вопросы", report.TopRepliersToQuestions},
		{"Частые слова", report.TopWords},
	}
	for _, s := range sections {
		fmt.Fprintf(&sb, "\n<b>%s</b>\n", s.title)
		if len(s.entries) == 0 {
			sb.WriteString("нет данных\n")
			continue
		}
		sb.WriteString("<pre>")
		writeTable(&sb, s.entries, widths)
		sb.WriteString("</pre>\n")
	}

	sb.WriteString("\n<b>Категории</b>\n")
	for _, c := range domain.AllCategories {
		if n := report.Counts[c]; n > 0 {
			fmt.Fprintf(&sb, "%s: %d\n", c, n)
		}
	}
	return sb.String()
}

// formatPlain - текстовый вариант отчета для отправки файлом.
func formatPlain(report *domain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nMessages: %d\n", report.ArchiveName, report.MessageCount)
	rankings := []struct {
		title   string
		entries []domain.RankedEntry
	}{
		{"Top questioners", report.TopQuestioners},
		{"Top repliers", report.TopRepliers},
		{"Top repliers to questions", report.TopRepliersToQuestions},
		{"Top words", report.TopWords},
	}
	for _, r := range rankings {
		fmt.Fprintf(&sb, "\n%s\n", r.title)
		for i, e := range r.entries {
			fmt.Fprintf(&sb, "%d\t%s\t%d\n", i+1, e.Name, e.Count)
		}
	}
	return sb.String()
}

func writeTable(sb *strings.Builder, entries []domain.RankedEntry, widths config.ColumnWidths) {
	for i, e := range entries {
		name := strings.ReplaceAll(strings.ToValidUTF8(e.Name, ""), "\n", " ")
		count := strconv.Itoa(e.Count)
		nameLines := wrapString(name, widths.Name)

		for j, line := range nameLines {
			num, cnt := "", ""
			if j == 0 {
				num = strconv.Itoa(i+1) + "."
				cnt = count
			}
			fmt.Fprintf(sb, "%-3s %s%s %s%s\n",
				num,
				html.EscapeString(line), generatePadding(line, widths.Name),
				generatePadding(cnt, widths.Count), cnt,
			)
		}
	}
}

// generatePadding вычисляет отступ для строки с учетом поправки на CJK-символы.
func generatePadding(s string, colWidth int) string {
	paddingNeeded := colWidth - runewidth.StringWidth(s)

	// если в строке есть CJK-символы, добавляем один пробел:
	// некоторые клиенты рисуют их шире расчетного
	hasCJK := false
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hangul, unicode.Hiragana, unicode.Katakana) {
			hasCJK = true
			break
		}
	}

	if hasCJK && paddingNeeded >= 0 {
		paddingNeeded++
	}

	if paddingNeeded > 0 {
		return strings.Repeat(" ", paddingNeeded)
	}
	return ""
}

// wrapString переносит строку по словам так, чтобы ширина каждой части не
// превышала width. Слово длиннее width разрывается.
func wrapString(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var currentLine strings.Builder
	for _, word := range words {
		if runewidth.StringWidth(word) > width {
			if currentLine.Len() > 0 {
				lines = append(lines, currentLine.String())
				currentLine.Reset()
			}
			lines = append(lines, breakWord(word, width)...)
			continue
		}

		lineLen := runewidth.StringWidth(currentLine.String())
		if lineLen > 0 && lineLen+1+runewidth.StringWidth(word) > width {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
		}
		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return lines
}

func breakWord(word string, width int) []string {
	var parts []string
	runes := []rune(word)
	for len(runes) > 0 {
		i, w := 0, 0
		for i < len(runes) {
			rw := runewidth.RuneWidth(runes[i])
			if w+rw > width && i > 0 {
				break
			}
			w += rw
			i++
		}
		parts = append(parts, string(runes[:i]))
		runes = runes[i:]
	}
	return parts
}
