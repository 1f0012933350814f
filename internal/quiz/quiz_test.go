package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var key = []bool{true, false, true}

func TestState_FullRun(t *testing.T) {
	var s State

	assert.True(t, s.Answer(true))
	assert.True(t, s.LastCorrect(key))
	assert.False(t, s.Complete(len(key)))

	assert.True(t, s.Next(len(key)))
	assert.True(t, s.Answer(true))
	assert.False(t, s.LastCorrect(key))

	assert.True(t, s.Next(len(key)))
	assert.True(t, s.Answer(true))

	assert.True(t, s.Complete(len(key)))
	assert.Equal(t, 2, s.Correct(key))
	assert.False(t, s.Next(len(key)), "cannot advance past the last question")
}

func TestState_AnswerIgnoredWhileShown(t *testing.T) {
	var s State

	s.Answer(true)
	assert.False(t, s.Answer(false))
	assert.Equal(t, []bool{true}, s.Answers)
}

func TestState_NextRequiresAnswer(t *testing.T) {
	var s State

	assert.False(t, s.Next(len(key)))
	assert.Equal(t, 0, s.Current)
}

func TestState_Reset(t *testing.T) {
	s := State{Current: 2, ShowAnswer: true, Answers: []bool{true, true, true}}

	s.Reset()

	assert.Equal(t, State{}, s)
	assert.Equal(t, 0, s.Correct(key))
}

func TestState_EmptyQuizNeverCompletes(t *testing.T) {
	var s State
	s.Answer(true)

	assert.False(t, s.Complete(0))
	assert.False(t, s.Next(0))
}
