package ngram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const demo = "Claim your free prize now! Call this number immediately."

func TestSplit_Bigrams(t *testing.T) {
	grams := Split("claim your free prize now call this number immediately", 2)

	assert.Len(t, grams, 8)
	assert.Equal(t, "claim your", grams[0])
	assert.Equal(t, "number immediately", grams[len(grams)-1])
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{
			name: "unigrams strip punctuation",
			text: demo,
			n:    1,
			want: []string{"claim", "your", "free", "prize", "now", "call", "this", "number", "immediately"},
		},
		{
			name: "four-grams",
			text: "one two three four five",
			n:    4,
			want: []string{"one two three four", "two three four five"},
		},
		{
			name: "n equals word count",
			text: "Win Cash",
			n:    2,
			want: []string{"win cash"},
		},
		{
			name: "n exceeds word count",
			text: "win cash",
			n:    3,
			want: []string{},
		},
		{
			name: "whitespace runs collapse",
			text: "  free \t\n prize  ",
			n:    2,
			want: []string{"free prize"},
		},
		{
			name: "underscores and digits are word characters",
			text: "call_now 0800!",
			n:    1,
			want: []string{"call_now", "0800"},
		},
		{
			name: "vertical tab separates",
			text: "free\vprize",
			n:    1,
			want: []string{"free", "prize"},
		},
		{
			name: "unicode line and paragraph separators",
			text: "free\u2028prize\u2029now",
			n:    1,
			want: []string{"free", "prize", "now"},
		},
		{
			name: "byte order mark and no-break space separate",
			text: "\uFEFFclaim\u00A0your\u3000prize",
			n:    2,
			want: []string{"claim your", "your prize"},
		},
		{
			name: "other control characters are stripped",
			text: "fr\u0085ee prize",
			n:    1,
			want: []string{"free", "prize"},
		},
		{
			name: "empty text",
			text: "",
			n:    1,
			want: []string{},
		},
		{
			name: "zero n",
			text: demo,
			n:    0,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text, tt.n))
		})
	}
}

func TestSplit_WindowCount(t *testing.T) {
	words := len(Tokenize(demo))
	for n := MinSize; n <= MaxSize; n++ {
		assert.Len(t, Split(demo, n), max(0, words-n+1), "n=%d", n)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Unigrams", Label(1))
	assert.Equal(t, "Bigrams", Label(2))
	assert.Equal(t, "Trigrams", Label(3))
	assert.Equal(t, "4-grams", Label(4))
}

func TestBagOfWords(t *testing.T) {
	got := BagOfWords("Free, free PRIZE! claim your prize")

	assert.Equal(t, map[string]int{"free": 2, "prize": 2, "claim": 1, "your": 1}, got)
	assert.Empty(t, BagOfWords("   "))
}

func TestVectorize_KeepsFirstOccurrenceOrder(t *testing.T) {
	got := Vectorize("prize free prize claim")

	assert.Equal(t, []Term{
		{Word: "prize", Count: 2},
		{Word: "free", Count: 1},
		{Word: "claim", Count: 1},
	}, got)
	assert.Equal(t, []Term{}, Vectorize(""))
}
