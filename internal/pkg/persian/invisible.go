package persian

import "strings"

// Символы, которые после начертания остаются в тексте, но шрифт
// облака слов рисует их пустыми квадратами.
var invisibleReplacer = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u2063", "",
	"\u200f", "",
	"\U0001f979", "",
)

// StripInvisible удаляет из текста символы нулевой ширины, метку RLM
// и U+1F979.
func StripInvisible(text string) string {
	return invisibleReplacer.Replace(text)
}
