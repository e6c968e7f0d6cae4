package persian

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/*.txt
var dataFS embed.FS

var stopwordFiles = []string{
	"data/stopwords.txt",
	"data/verbal_stopwords.txt",
	"data/punctuation.txt",
}

// StopwordSet - множество стоп-слов и знаков препинания. Используется
// только для проверки принадлежности.
type StopwordSet struct {
	words map[string]struct{}
}

// NewStopwordSet создает множество из перечисленных слов.
func NewStopwordSet(words ...string) StopwordSet {
	s := StopwordSet{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.add(w)
	}
	return s
}

// DefaultStopwords возвращает встроенный набор: персидские стоп-слова,
// разговорные глагольные формы и пунктуация.
func DefaultStopwords() StopwordSet {
	s := NewStopwordSet()
	for _, name := range stopwordFiles {
		f, err := dataFS.Open(name)
		if err != nil {
			// встроенные файлы присутствуют всегда
			panic(fmt.Sprintf("persian: missing embedded %s: %v", name, err))
		}
		err = s.readFrom(f)
		f.Close()
		if err != nil {
			panic(fmt.Sprintf("persian: failed to read embedded %s: %v", name, err))
		}
	}
	return s
}

// LoadStopwords возвращает копию s, дополненную словами из r
// (по одному на строку, пустые строки и строки с # в начале пропускаются).
func (s StopwordSet) LoadStopwords(r io.Reader) (StopwordSet, error) {
	out := NewStopwordSet()
	for w := range s.words {
		out.add(w)
	}
	if err := out.readFrom(r); err != nil {
		return StopwordSet{}, fmt.Errorf("failed to read stopwords: %w", err)
	}
	return out, nil
}

// StopwordsFromFile возвращает встроенный набор, дополненный словами из
// файла path. Пустой path дает встроенный набор.
func StopwordsFromFile(path string) (StopwordSet, error) {
	base := DefaultStopwords()
	if path == "" {
		return base, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return StopwordSet{}, fmt.Errorf("failed to open stopwords file: %w", err)
	}
	defer f.Close()
	return base.LoadStopwords(f)
}

func (s StopwordSet) readFrom(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || (strings.HasPrefix(line, "#") && len(line) > 1) {
			continue
		}
		s.add(line)
	}
	return sc.Err()
}

func (s StopwordSet) add(w string) {
	if w = strings.TrimSpace(w); w != "" {
		s.words[w] = struct{}{}
	}
}

// Contains сообщает, входит ли токен в множество (точное совпадение).
func (s StopwordSet) Contains(token string) bool {
	_, ok := s.words[token]
	return ok
}

// Len возвращает размер множества.
func (s StopwordSet) Len() int {
	return len(s.words)
}

// Filter возвращает токены, не входящие в множество, сохраняя порядок.
func (s StopwordSet) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !s.Contains(tok) {
			out = append(out, tok)
		}
	}
	return out
}
