package persian

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Display переставляет символы из логического порядка в визуальный
// (алгоритм Unicode Bidirectional), чтобы текст справа налево правильно
// выглядел при отрисовке движком, который рисует строго слева направо.
// Каждая строка обрабатывается как отдельный абзац.
func Display(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = displayLine(line)
	}
	return strings.Join(lines, "\n")
}

func displayLine(line string) string {
	if line == "" {
		return ""
	}

	var p bidi.Paragraph
	if _, err := p.SetString(line, bidi.DefaultDirection(baseDirection(line))); err != nil {
		return line
	}
	order, err := p.Order()
	if err != nil || order.NumRuns() == 0 {
		return line
	}

	runs := make([]string, 0, order.NumRuns())
	for i := range order.NumRuns() {
		run := order.Run(i)
		s := run.String()
		if run.Direction() == bidi.RightToLeft {
			s = bidi.ReverseString(s)
		}
		runs = append(runs, s)
	}
	if baseDirection(line) == bidi.RightToLeft {
		slices.Reverse(runs)
	}
	return strings.Join(runs, "")
}

// baseDirection определяет направление абзаца по первому сильному символу.
// Без сильных символов абзац считается слева направо.
func baseDirection(s string) bidi.Direction {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return bidi.LeftToRight
		case bidi.R, bidi.AL:
			return bidi.RightToLeft
		}
	}
	return bidi.LeftToRight
}
