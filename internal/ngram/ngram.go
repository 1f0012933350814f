// Package ngram holds the text-to-token demos: sliding n-gram windows and a
// bag-of-words count.
package ngram

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MinSize and MaxSize bound the slider on the feature engineering page.
	MinSize = 1
	MaxSize = 4
)

// nonWord matches anything that is neither an ASCII word character nor a
// separator. Separators are ASCII whitespace, \v, the Unicode Z categories and
// U+FEFF.
var nonWord = regexp.MustCompile(`[^\w\s\v\p{Z}\x{FEFF}]`)

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || r == '\uFEFF'
}

// Tokenize lowercases text, strips punctuation and splits on separator runs.
func Tokenize(text string) []string {
	lowered := cases.Lower(language.Und).String(text)
	return strings.FieldsFunc(nonWord.ReplaceAllString(lowered, ""), isSeparator)
}

// Split returns every contiguous window of n tokens joined by a single space.
// The result is empty when n < 1 or n exceeds the number of tokens.
func Split(text string, n int) []string {
	if n < 1 {
		return []string{}
	}

	words := Tokenize(text)
	count := len(words) - n + 1
	if count <= 0 {
		return []string{}
	}

	grams := make([]string, 0, count)
	for i := 0; i < count; i++ {
		grams = append(grams, strings.Join(words[i:i+n], " "))
	}
	return grams
}

// Label names an n-gram size for display.
func Label(n int) string {
	switch n {
	case 1:
		return "Unigrams"
	case 2:
		return "Bigrams"
	case 3:
		return "Trigrams"
	default:
		return strconv.Itoa(n) + "-grams"
	}
}

// Term is one bag-of-words entry.
type Term struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// BagOfWords counts each token of text.
func BagOfWords(text string) map[string]int {
	counts := make(map[string]int)
	for _, word := range Tokenize(text) {
		counts[word]++
	}
	return counts
}

// Vectorize is BagOfWords with terms kept in first-occurrence order.
func Vectorize(text string) []Term {
	counts := BagOfWords(text)

	terms := make([]Term, 0, len(counts))
	for _, word := range Tokenize(text) {
		n, ok := counts[word]
		if !ok {
			continue
		}
		terms = append(terms, Term{Word: word, Count: n})
		delete(counts, word)
	}
	return terms
}
