// Package persian содержит обработку персидского текста: нормализацию,
// токенизацию, стоп-слова, контекстное начертание букв и порядок bidi.
package persian

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	zwnj    = '\u200c'
	kashida = '\u0640'
)

var charMap = map[rune]rune{
	'ك': 'ک',
	'ي': 'ی',
	'ى': 'ی',
	'ە': 'ه',
	'ة': 'ه',
	'%': '\u066a',
	// арабско-индийские и латинские цифры
	'0': '۰', '1': '۱', '2': '۲', '3': '۳', '4': '۴',
	'5': '۵', '6': '۶', '7': '۷', '8': '۸', '9': '۹',
	'\u0660': '۰', '\u0661': '۱', '\u0662': '۲', '\u0663': '۳', '\u0664': '۴',
	'\u0665': '۵', '\u0666': '۶', '\u0667': '۷', '\u0668': '۸', '\u0669': '۹',
}

var (
	reSpaces       = regexp.MustCompile(`[\s\x{00a0}]+`)
	reZWNJRun      = regexp.MustCompile(`\x{200c}{2,}`)
	reZWNJSpace    = regexp.MustCompile(` \x{200c}|\x{200c} `)
	reSpaceBefore  = regexp.MustCompile(` +([.:!،؛؟?»\)\]\}])`)
	reSpaceAfter   = regexp.MustCompile(`([.:!،؛؟?»\)\]\}])(\pL)`)
	reOpenBefore   = regexp.MustCompile(`(\pL)([«\(\[\{])`)
	reOpenAfter    = regexp.MustCompile(`([«\(\[\{]) +`)
	rePrefixMi     = regexp.MustCompile(`(^| )(ن?می) (\pL)`)
	reSuffixPlural = regexp.MustCompile(`(\pL) (ها|های|هایی|هایم|هایت|هایش|تر|ترین|تری)( |$)`)
)

// Normalizer приводит персидский текст к единому написанию: варианты букв
// и цифр, огласовки, кашиде, повторы символов и пробелы вокруг пунктуации.
type Normalizer struct {
	chars transform.Transformer
	// MaxRepeat ограничивает число одинаковых букв подряд.
	MaxRepeat int
}

// NewNormalizer создает нормализатор с настройками по умолчанию.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		chars: transform.Chain(
			norm.NFC,
			runes.Remove(runes.Predicate(isDiacritic)),
			runes.Map(mapChar),
		),
		MaxRepeat: 2,
	}
}

// Normalize возвращает нормализованную копию текста.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	s, _, err := transform.String(n.chars, text)
	if err != nil {
		s = text
	}
	s = squeezeRepeats(s, n.MaxRepeat)
	s = n.fixSpacing(s)
	return s
}

func (n *Normalizer) fixSpacing(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	s = reZWNJRun.ReplaceAllString(s, string(zwnj))
	s = reZWNJSpace.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = reSpaceBefore.ReplaceAllString(s, "$1")
	s = reSpaceAfter.ReplaceAllString(s, "$1 $2")
	s = reOpenBefore.ReplaceAllString(s, "$1 $2")
	s = reOpenAfter.ReplaceAllString(s, "$1")
	s = rePrefixMi.ReplaceAllString(s, "$1$2\u200c$3")
	s = reSuffixPlural.ReplaceAllString(s, "$1\u200c$2$3")
	return strings.Trim(s, " \u200c")
}

// isDiacritic отбирает огласовки (harakat), надстрочный алиф и кашиде.
func isDiacritic(r rune) bool {
	switch {
	case r >= '\u064b' && r <= '\u065f':
		return true
	case r == '\u0670', r == kashida:
		return true
	}
	return false
}

func mapChar(r rune) rune {
	if m, ok := charMap[r]; ok {
		return m
	}
	return r
}

// squeezeRepeats оставляет не больше max одинаковых букв подряд.
// Цифры и пунктуация не трогаются.
func squeezeRepeats(s string, max int) string {
	if max <= 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev && unicode.IsLetter(r) {
			run++
			if run > max {
				continue
			}
		} else {
			prev = r
			run = 1
		}
		b.WriteRune(r)
	}
	return b.String()
}
