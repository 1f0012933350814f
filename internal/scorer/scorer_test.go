package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantSpam    bool
		wantProb    float64
		wantMatches []string
	}{
		{
			name:        "claim your free prize",
			message:     "Claim your free prize now!",
			wantSpam:    false,
			wantProb:    0.45,
			wantMatches: []string{"free", "prize", "claim"},
		},
		{
			name:        "five keywords",
			message:     "free cash prize guaranteed offer",
			wantSpam:    true,
			wantProb:    0.75,
			wantMatches: []string{"free", "prize", "cash", "guaranteed", "offer"},
		},
		{
			name:        "ham",
			message:     "Hi Alex, see you at the meeting tomorrow at 10am.",
			wantSpam:    false,
			wantProb:    0,
			wantMatches: []string{},
		},
		{
			name:        "empty",
			message:     "",
			wantSpam:    false,
			wantProb:    0,
			wantMatches: []string{},
		},
		{
			name:        "substring match",
			message:     "loaned money",
			wantSpam:    false,
			wantProb:    0.15,
			wantMatches: []string{"loan"},
		},
		{
			name:        "repeated keyword counts once",
			message:     "free free free FREE",
			wantSpam:    false,
			wantProb:    0.15,
			wantMatches: []string{"free"},
		},
		{
			name:        "four keywords sits above the threshold",
			message:     "win cash with our credit offer",
			wantSpam:    true,
			wantProb:    0.6,
			wantMatches: []string{"win", "cash", "offer", "credit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.message)
			assert.Equal(t, tt.wantSpam, got.IsSpam)
			assert.InDelta(t, tt.wantProb, got.Probability, 1e-9)
			assert.Equal(t, tt.wantMatches, got.KeywordsFound)
		})
	}
}

func TestScore_AllKeywordsSaturates(t *testing.T) {
	got := Score(strings.Join(Lexicon(), " "))

	assert.True(t, got.IsSpam)
	assert.Equal(t, MaxProbability, got.Probability)
	assert.Equal(t, Lexicon(), got.KeywordsFound)
}

func TestScore_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Score("free prize"), Score("FREE PRIZE"))
	assert.Equal(t, Score("Congratulations"), Score("cONGRATULATIONS"))
}

func TestScore_DoesNotMutateInput(t *testing.T) {
	msg := "WIN a PRIZE"
	_ = Score(msg)
	assert.Equal(t, "WIN a PRIZE", msg)
}

func TestScore_Monotonic(t *testing.T) {
	message := "hello there"
	prev := Score(message).Probability

	for _, keyword := range Lexicon() {
		message += " " + keyword
		p := Score(message).Probability
		assert.GreaterOrEqual(t, p, prev, "adding %q decreased probability", keyword)
		prev = p
	}
}

func TestProbability(t *testing.T) {
	tests := []struct {
		matches int
		want    float64
	}{
		{0, 0},
		{1, 0.15},
		{3, 0.45},
		{4, 0.6},
		{6, 0.9},
		{7, 0.95},
		{10, 0.95},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Probability(tt.matches), 1e-9, "matches=%d", tt.matches)
	}
}

func TestLexicon_ReturnsCopy(t *testing.T) {
	words := Lexicon()
	words[0] = "changed"

	assert.Equal(t, "free", Lexicon()[0])
	assert.Len(t, Lexicon(), 10)
}
