package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"spamlab/internal/content"
	"spamlab/internal/counter"
	"spamlab/internal/metrics"
	"spamlab/internal/models"
	"spamlab/internal/ngram"
	"spamlab/internal/scorer"
	"spamlab/internal/simulator"
	"spamlab/internal/validation"
)

// Slider defaults shared with the HTML widgets.
const (
	defaultNgramSize = 1
	defaultFeatures  = 3000
	defaultThreshold = 0.5
)

// SpamCounter reports the simulated "spam sent today" figure.
type SpamCounter interface {
	Count() int64
}

// Handler serves the JSON API.
type Handler struct {
	catalog *content.Catalog
	counter counter.Counter
	spam    SpamCounter
	models  *simulator.ModelSimulator
	logger  *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(catalog *content.Catalog, c counter.Counter, spam SpamCounter, models *simulator.ModelSimulator, logger *zap.Logger) *Handler {
	return &Handler{catalog: catalog, counter: c, spam: spam, models: models, logger: logger}
}

// decodeMessage reads a {"message": "..."} body. It returns the message, or
// the reason the body was rejected.
func decodeMessage(c fiber.Ctx) (message, problem string) {
	var body validation.MessageRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return "", "invalid request body"
	}
	if err := validation.Struct(body); err != nil {
		return "", "message: " + validation.FormatValidationError(err)["message"]
	}
	if ok, msg := validation.ValidateMessage(body.Message); !ok {
		return "", msg
	}
	return body.Message, ""
}

// Score runs the keyword heuristic over a message.
func (h *Handler) Score(c fiber.Ctx) error {
	message, problem := decodeMessage(c)
	if problem != "" {
		return jsonError(c, fiber.StatusBadRequest, problem)
	}

	result := scorer.Score(message)
	metrics.RecordPrediction(result.IsSpam, result.KeywordsFound)
	return jsonSuccess(c, result)
}

// Ngrams splits text (the demo sentence by default) into n-grams.
func (h *Handler) Ngrams(c fiber.Ctx) error {
	n, ok, msg := validation.ParseNgramSize(c.Query("n"), defaultNgramSize)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	text := c.Query("text", h.catalog.DemoSentence)
	grams := ngram.Split(text, n)
	return jsonSuccess(c, models.NgramsResponse{
		Text:   text,
		N:      n,
		Label:  ngram.Label(n),
		Count:  len(grams),
		Ngrams: grams,
	})
}

// Vectorize returns the bag-of-words for a message.
func (h *Handler) Vectorize(c fiber.Ctx) error {
	message, problem := decodeMessage(c)
	if problem != "" {
		return jsonError(c, fiber.StatusBadRequest, problem)
	}

	terms := ngram.Vectorize(message)
	return jsonSuccess(c, models.VectorResponse{
		Message:    message,
		Vocabulary: len(terms),
		Terms:      terms,
	})
}

// Counter returns the contact form submission count.
func (h *Handler) Counter(c fiber.Ctx) error {
	n, err := h.counter.Get(c.Context())
	if err != nil && !errors.Is(err, counter.ErrInvalidValue) {
		h.logger.Error("Failed to read submission counter", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to read counter")
	}
	return jsonSuccess(c, models.CounterResponse{Count: n})
}

// IncrementCounter records one simulated submission.
func (h *Handler) IncrementCounter(c fiber.Ctx) error {
	n, err := h.counter.Increment(c.Context())
	if err != nil {
		h.logger.Error("Failed to increment submission counter", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to update counter")
	}
	return jsonSuccess(c, models.CounterResponse{Count: n})
}

// SpamCount returns the spam ticker value.
func (h *Handler) SpamCount(c fiber.Ctx) error {
	return jsonSuccess(c, models.SpamCountResponse{Count: h.spam.Count()})
}

// SimulateModel returns model comparison metrics.
func (h *Handler) SimulateModel(c fiber.Ctx) error {
	features, ok, msg := validation.ParseFeatures(c.Query("features"), defaultFeatures)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	result, err := h.models.Simulate(c.Query("model", simulator.NaiveBayes), features)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return jsonSuccess(c, result)
}

// SimulateConfusion returns the confusion matrix at a threshold.
func (h *Handler) SimulateConfusion(c fiber.Ctx) error {
	t, ok, msg := validation.ParseThreshold(c.Query("threshold"), defaultThreshold)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	m, err := simulator.Confusion(t)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return jsonSuccess(c, m)
}

// SimulateThreshold returns the precision/recall trade-off at a threshold.
func (h *Handler) SimulateThreshold(c fiber.Ctx) error {
	t, ok, msg := validation.ParseThreshold(c.Query("threshold"), defaultThreshold)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	tuning, err := simulator.Tune(t)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return jsonSuccess(c, tuning)
}

// Chapters lists chapter summaries.
func (h *Handler) Chapters(c fiber.Ctx) error {
	chapters := h.catalog.Chapters()
	out := make([]models.ChapterSummary, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, models.ChapterSummary{
			Number:      ch.Number,
			Slug:        ch.Slug,
			Title:       ch.Title,
			Description: ch.Description,
			URL:         "/chapter/" + strconv.Itoa(ch.Number),
		})
	}
	return jsonSuccess(c, out)
}

// Chapter returns one chapter including its prose.
func (h *Handler) Chapter(c fiber.Ctx) error {
	n, err := content.ParseChapterID(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "chapter not found")
	}

	ch, err := h.catalog.Chapter(n)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "chapter not found")
	}
	return jsonSuccess(c, ch)
}

// Samples returns dataset samples filtered by label.
func (h *Handler) Samples(c fiber.Ctx) error {
	samples, err := h.catalog.Samples(c.Query("label", content.FilterAll))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "label must be all, ham or spam")
	}
	return jsonSuccess(c, samples)
}

// Resources returns the grouped reading list.
func (h *Handler) Resources(c fiber.Ctx) error {
	return jsonSuccess(c, h.catalog.Resources())
}

// Lexicon returns the scorer's trigger words.
func (h *Handler) Lexicon(c fiber.Ctx) error {
	return jsonSuccess(c, scorer.Lexicon())
}
