package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"spamlab/internal/config"
	"spamlab/internal/content"
	"spamlab/internal/middleware"
	"spamlab/internal/quiz"
)

// QuizHandler drives the chapter one "spam or ham?" quiz.
type QuizHandler struct {
	cfg     *config.Config
	catalog *content.Catalog
	logger  *zap.Logger
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(cfg *config.Config, catalog *content.Catalog, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{cfg: cfg, catalog: catalog, logger: logger}
}

func quizView(st *quiz.State, catalog *content.Catalog) fiber.Map {
	questions := catalog.QuizQuestions()
	key := catalog.QuizKey()

	data := fiber.Map{
		"Total":      len(questions),
		"Number":     st.Current + 1,
		"ShowAnswer": st.ShowAnswer,
	}
	if st.Current < len(questions) {
		data["Question"] = questions[st.Current]
	}

	data["LastCorrect"] = st.LastCorrect(key)
	data["Complete"] = st.Complete(len(questions))
	data["Correct"] = st.Correct(key)
	data["HasNext"] = st.ShowAnswer && st.Current < len(questions)-1
	return data
}

// Show renders the quiz on its own page.
func (h *QuizHandler) Show(c fiber.Ctx) error {
	return c.Render("quiz", MergeBranding(fiber.Map{
		"Title": "Spam or Ham?",
		"Quiz":  quizView(middleware.Quiz(c), h.catalog),
	}, h.cfg))
}

// Answer records the visitor's verdict ("spam" or "ham") for the current question.
func (h *QuizHandler) Answer(c fiber.Ctx) error {
	var isSpam bool
	switch c.FormValue("verdict") {
	case "spam":
		isSpam = true
	case "ham":
	default:
		if isHTMX(c) {
			return htmxError(c, "Choose spam or ham")
		}
		return fiber.NewError(fiber.StatusBadRequest, "Choose spam or ham")
	}

	st := middleware.Quiz(c)
	st.Answer(isSpam)
	return h.respond(c, st)
}

// Next moves to the following question.
func (h *QuizHandler) Next(c fiber.Ctx) error {
	st := middleware.Quiz(c)
	st.Next(len(h.catalog.QuizQuestions()))
	return h.respond(c, st)
}

// Reset starts the quiz over.
func (h *QuizHandler) Reset(c fiber.Ctx) error {
	st := middleware.Quiz(c)
	st.Reset()
	return h.respond(c, st)
}

func (h *QuizHandler) respond(c fiber.Ctx, st *quiz.State) error {
	if err := middleware.SaveQuiz(c, st); err != nil {
		h.logger.Error("Failed to save quiz state", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Could not save your progress")
	}

	if isHTMX(c) {
		return renderPartial(c, "partials/quiz", quizView(st, h.catalog))
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To("/quiz")
}
