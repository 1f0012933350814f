package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"go.uber.org/zap"

	"spamlab/internal/quiz"
)

// Session keys. Values are stored as JSON strings so any session storage
// backend can hold them.
const (
	quizKey      = "quiz"
	checklistKey = "checklist"
)

// VisitorState loads per-visitor demo state from the session into locals.
type VisitorState struct {
	logger *zap.Logger
}

// NewVisitorState creates a new visitor state middleware instance.
func NewVisitorState(logger *zap.Logger) *VisitorState {
	return &VisitorState{logger: logger}
}

// LoadQuiz puts the visitor's quiz progress in locals, starting a fresh quiz
// when there is none or it cannot be decoded.
func (m *VisitorState) LoadQuiz(c fiber.Ctx) error {
	st := &quiz.State{}
	m.decode(c, quizKey, st)
	c.Locals(quizKey, st)
	return c.Next()
}

// LoadChecklist puts the visitor's ticked checklist items in locals.
func (m *VisitorState) LoadChecklist(c fiber.Ctx) error {
	checked := map[string]bool{}
	m.decode(c, checklistKey, &checked)
	c.Locals(checklistKey, checked)
	return c.Next()
}

func (m *VisitorState) decode(c fiber.Ctx, key string, dst any) {
	sess := session.FromContext(c)
	if sess == nil {
		return
	}
	raw, ok := sess.Get(key).(string)
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		m.logger.Warn("Discarding unreadable session value", zap.String("key", key), zap.Error(err))
		sess.Delete(key)
	}
}

// Quiz returns the state loaded by LoadQuiz, or a fresh one.
func Quiz(c fiber.Ctx) *quiz.State {
	if st, ok := c.Locals(quizKey).(*quiz.State); ok {
		return st
	}
	return &quiz.State{}
}

// SaveQuiz writes st back to the session.
func SaveQuiz(c fiber.Ctx, st *quiz.State) error {
	return save(c, quizKey, st)
}

// Checklist returns the ticked items loaded by LoadChecklist.
func Checklist(c fiber.Ctx) map[string]bool {
	if checked, ok := c.Locals(checklistKey).(map[string]bool); ok {
		return checked
	}
	return map[string]bool{}
}

// SaveChecklist writes checked back to the session.
func SaveChecklist(c fiber.Ctx, checked map[string]bool) error {
	return save(c, checklistKey, checked)
}

func save(c fiber.Ctx, key string, v any) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fmt.Errorf("no session for %s", key)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	sess.Set(key, string(b))
	c.Locals(key, v)
	return nil
}
