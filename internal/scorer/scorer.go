// Package scorer implements the keyword heuristic behind the "spam predictor" demo.
// It is a teaching aid, not a classifier: a fixed lexicon, substring matching and a
// saturating linear confidence.
package scorer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Multiplier scales the matched fraction of the lexicon.
	Multiplier = 1.5
	// MaxProbability caps the confidence; the heuristic never reports certainty.
	MaxProbability = 0.95
	// Threshold is the exclusive lower bound for a spam verdict.
	Threshold = 0.5
)

// lexicon is iterated in this order, which is also the order of Result.KeywordsFound.
var lexicon = [...]string{
	"free",
	"win",
	"prize",
	"congratulations",
	"claim",
	"cash",
	"guaranteed",
	"offer",
	"credit",
	"loan",
}

// Result is the verdict for a single message.
type Result struct {
	IsSpam        bool     `json:"isSpam"`
	Probability   float64  `json:"probability"`
	KeywordsFound []string `json:"keywordsFound"`
}

// Lexicon returns a copy of the trigger words in lexicon order.
func Lexicon() []string {
	out := make([]string, len(lexicon))
	copy(out, lexicon[:])
	return out
}

// Score evaluates message against the lexicon. Every lexicon entry counts at most
// once, and entries embedded in longer words match ("loaned" contains "loan").
func Score(message string) Result {
	normalized := cases.Lower(language.Und).String(message)

	found := make([]string, 0, len(lexicon))
	for _, keyword := range lexicon {
		if strings.Contains(normalized, keyword) {
			found = append(found, keyword)
		}
	}

	probability := Probability(len(found))
	return Result{
		IsSpam:        probability > Threshold,
		Probability:   probability,
		KeywordsFound: found,
	}
}

// Probability maps a match count to the confidence min(0.95, matches/size * 1.5).
func Probability(matches int) float64 {
	p := float64(matches) / float64(len(lexicon)) * Multiplier
	return min(MaxProbability, p)
}
