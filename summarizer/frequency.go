package summarizer

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const (
	DefaultTopN = 5

	// FallbackPrefix marks summaries computed locally instead of by the
	// remote summarizer.
	FallbackPrefix = "(Fallback) Frequent words: "
)

type WordCount struct {
	Word  string
	Count int
}

// TopWords tokenizes lowercased text into runs of letters, digits and
// underscores and returns the n most frequent tokens. Ties keep the order in
// which tokens first appeared.
func TopWords(text string, n int) []WordCount {
	if n <= 0 {
		n = DefaultTopN
	}

	var counts []WordCount
	index := make(map[string]int)
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
		if i, ok := index[tok]; ok {
			counts[i].Count++
			continue
		}
		index[tok] = len(counts)
		counts = append(counts, WordCount{Word: tok, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// FrequentWords formats TopWords as "word(count), word(count)".
func FrequentWords(text string, n int) string {
	words := TopWords(text, n)
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, fmt.Sprintf("%s(%d)", w.Word, w.Count))
	}
	return strings.Join(parts, ", ")
}

// FallbackSummary is the summary of record when no remote result exists.
func FallbackSummary(text string, n int) string {
	return FallbackPrefix + FrequentWords(text, n)
}

func isSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}
