// Package quiz is the "spam or ham?" game from chapter one.
package quiz

// State tracks progress through a fixed list of questions. The zero value is a
// fresh quiz positioned on the first question.
type State struct {
	Current    int    `json:"current"`
	ShowAnswer bool   `json:"showAnswer"`
	Answers    []bool `json:"answers"`
}

// Answer records a guess for the current question and reveals the answer.
// A guess while the answer is already shown is ignored. It reports whether the
// guess was recorded.
func (s *State) Answer(isSpam bool) bool {
	if s.ShowAnswer {
		return false
	}
	s.Answers = append(s.Answers, isSpam)
	s.ShowAnswer = true
	return true
}

// Next moves to the following question. It only advances from a revealed
// answer and never past the last of total questions.
func (s *State) Next(total int) bool {
	if !s.ShowAnswer || s.Current >= total-1 {
		return false
	}
	s.Current++
	s.ShowAnswer = false
	return true
}

func (s *State) Reset() {
	s.Current = 0
	s.ShowAnswer = false
	s.Answers = nil
}

// Complete reports whether the last question has been answered.
func (s *State) Complete(total int) bool {
	return total > 0 && s.Current == total-1 && s.ShowAnswer
}

// Correct counts guesses that match the key.
func (s *State) Correct(key []bool) int {
	n := 0
	for i, guess := range s.Answers {
		if i < len(key) && guess == key[i] {
			n++
		}
	}
	return n
}

// LastCorrect reports whether the guess for the current question matches key.
func (s *State) LastCorrect(key []bool) bool {
	if !s.ShowAnswer || s.Current >= len(s.Answers) || s.Current >= len(key) {
		return false
	}
	return s.Answers[s.Current] == key[s.Current]
}
