// Package textproc holds the text primitives shared by the analysis,
// summarization, and visual stages: whitespace normalization, frequency-based
// keyword ranking, sentence splitting, and word truncation.
package textproc

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Normalize collapses all whitespace runs (including line breaks) into
// single spaces and trims the ends.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TruncateWords cuts text to at most maxWords words, appending an ellipsis
// marker when anything was removed.
func TruncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

// ExtractKeywords returns the top n words of text by frequency, lowercased,
// with stopwords and non-alphabetic tokens removed. Ties keep first-seen
// order so the ranking is deterministic.
func ExtractKeywords(text string, n int) []string {
	type entry struct {
		word  string
		count int
		first int
	}

	counts := map[string]*entry{}
	var order []*entry

	for i, raw := range tokenize(text) {
		if !isAlpha(raw) || stopwords[raw] {
			continue
		}
		if e, ok := counts[raw]; ok {
			e.count++
			continue
		}
		e := &entry{word: raw, count: 1, first: i}
		counts[raw] = e
		order = append(order, e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if len(order) > n {
		order = order[:n]
	}
	out := make([]string, len(order))
	for i, e := range order {
		out[i] = e.word
	}
	return out
}

// SplitSentences splits text on sentence-ending punctuation followed by
// whitespace. Trailing unterminated text counts as a final sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			// Consume trailing closers, split at whitespace or end.
			atEnd := i == len(runes)-1
			if atEnd || unicode.IsSpace(runes[i+1]) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// tokenize splits text into lowercase tokens on non-letter/digit boundaries.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// stopwords is a compact English list; keyword ranking only needs to drop
// glue words, not perform real NLP.
var stopwords = func() map[string]bool {
	list := []string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"did", "do", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "he",
		"her", "here", "hers", "him", "his", "how", "i", "if", "in",
		"into", "is", "it", "its", "just", "me", "more", "most", "my",
		"no", "nor", "not", "now", "of", "off", "on", "once", "only",
		"or", "other", "our", "out", "over", "own", "same", "she",
		"should", "so", "some", "such", "than", "that", "the", "their",
		"them", "then", "there", "these", "they", "this", "those",
		"through", "to", "too", "under", "until", "up", "very", "was",
		"we", "were", "what", "when", "where", "which", "while", "who",
		"whom", "why", "will", "with", "you", "your", "yours",
	}
	m := make(map[string]bool, len(list))
	for _, w := range list {
		m[w] = true
	}
	return m
}()
