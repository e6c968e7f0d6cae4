package persian

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

var wordJoiners = &words.Joiners[string]{
	Middle: []rune{zwnj},
}

// Tokenize разбивает текст на токены по границам слов Unicode (UAX #29).
// Пробельные сегменты отбрасываются, знаки препинания остаются отдельными
// токенами. ZWNJ внутри слова не разрывает его.
func Tokenize(text string) []string {
	var tokens []string
	seg := words.FromString(text)
	seg.Joiners(wordJoiners)
	for seg.Next() {
		tok := strings.TrimFunc(seg.Value(), isIgnorable)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isIgnorable(r rune) bool {
	return unicode.IsSpace(r) || r == zwnj || unicode.Is(unicode.Cf, r)
}
