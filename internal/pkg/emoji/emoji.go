// Package emoji удаляет эмодзи из текста целыми графемными кластерами,
// включая последовательности с ZWJ, модификаторы тона кожи и флаги.
// Принадлежность к эмодзи определяется по таблице Unicode emoji из gomoji.
package emoji

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

const variationEmoji = "\ufe0f"

func known(s string) bool {
	_, err := gomoji.GetInfo(s)
	return err == nil
}

// textPresentation сообщает, что символ по умолчанию рисуется как текст
// (в таблице есть его вариант с U+FE0F), например © или ™.
func textPresentation(s string) bool {
	return !strings.HasSuffix(s, variationEmoji) && known(s+variationEmoji)
}

// IsEmoji сообщает, является ли графемный кластер эмодзи. Символы с текстовым
// представлением по умолчанию считаются эмодзи только вместе с U+FE0F.
func IsEmoji(cluster string) bool {
	if known(cluster) {
		return !textPresentation(cluster)
	}
	// последовательности, которых еще нет в таблице
	for _, r := range cluster {
		if s := string(r); known(s) && !textPresentation(s) {
			return true
		}
	}
	return false
}

// Strip возвращает текст без эмодзи. Остальные символы не меняются.
func Strip(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if cluster := g.Str(); !IsEmoji(cluster) {
			b.WriteString(cluster)
		}
	}
	return b.String()
}
