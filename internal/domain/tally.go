package domain

import (
	"cmp"
	"slices"
)

// RankedEntry - строка рейтинга: имя и число вхождений.
type RankedEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Tally - счетчик, запоминающий порядок первого появления ключей.
// Порядок используется для разрешения ничьих в рейтинге.
type Tally struct {
	order  []string
	counts map[string]int
}

// NewTally создает пустой счетчик.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add увеличивает счетчик ключа на единицу.
func (t *Tally) Add(key string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// Count возвращает значение счетчика для ключа.
func (t *Tally) Count(key string) int {
	return t.counts[key]
}

// Len возвращает количество различных ключей.
func (t *Tally) Len() int {
	return len(t.order)
}

// Map возвращает копию счетчиков.
func (t *Tally) Map() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// Top возвращает n ключей с наибольшими значениями по убыванию.
// При равенстве раньше идет ключ, встреченный первым.
func (t *Tally) Top(n int) []RankedEntry {
	if n <= 0 {
		return []RankedEntry{}
	}
	entries := make([]RankedEntry, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, RankedEntry{Name: key, Count: t.counts[key]})
	}
	slices.SortStableFunc(entries, func(a, b RankedEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
