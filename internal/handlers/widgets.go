package handlers

import (
	"errors"
	"fmt"
	"math"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"spamlab/internal/content"
	"spamlab/internal/counter"
	"spamlab/internal/metrics"
	"spamlab/internal/ngram"
	"spamlab/internal/scorer"
	"spamlab/internal/simulator"
	"spamlab/internal/validation"
)

// Widget defaults match the initial slider positions on each chapter.
const (
	defaultNgramSize = 1
	defaultFeatures  = 3000
	defaultThreshold = 0.5
)

// WidgetHandler serves the htmx fragments behind the interactive demos.
type WidgetHandler struct {
	catalog *content.Catalog
	counter counter.Counter
	spam    SpamCounter
	models  *simulator.ModelSimulator
	logger  *zap.Logger
}

// NewWidgetHandler creates a new widget handler.
func NewWidgetHandler(catalog *content.Catalog, c counter.Counter, spam SpamCounter, models *simulator.ModelSimulator, logger *zap.Logger) *WidgetHandler {
	return &WidgetHandler{catalog: catalog, counter: c, spam: spam, models: models, logger: logger}
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func ngramView(text string, n int) fiber.Map {
	grams := ngram.Split(text, n)
	return fiber.Map{
		"Text":   text,
		"N":      n,
		"Label":  ngram.Label(n),
		"Ngrams": grams,
		"Count":  len(grams),
		"Sizes":  []int{1, 2, 3, 4},
	}
}

func vectorView(message string) fiber.Map {
	terms := ngram.Vectorize(message)
	return fiber.Map{
		"Message":    message,
		"Terms":      terms,
		"Vocabulary": len(terms),
		"Show":       message != "",
	}
}

func predictView(message string, result *scorer.Result) fiber.Map {
	data := fiber.Map{"Message": message, "Lexicon": scorer.Lexicon()}
	if result != nil {
		data["Result"] = result
		data["Percent"] = fmt.Sprintf("%.0f%%", result.Probability*100)
		data["Width"] = int(math.Round(result.Probability * 100))
	}
	return data
}

func samplesView(samples []content.Sample, filter string) fiber.Map {
	if filter == "" {
		filter = content.FilterAll
	}
	return fiber.Map{
		"Samples": samples,
		"Filter":  filter,
		"Filters": []string{content.FilterAll, content.FilterHam, content.FilterSpam},
	}
}

func modelView(result simulator.ModelResult) fiber.Map {
	models := make([]fiber.Map, 0, len(simulator.Models()))
	for _, id := range simulator.Models() {
		models = append(models, fiber.Map{"ID": id, "Name": simulator.ModelName(id), "Selected": id == result.Model})
	}
	return fiber.Map{
		"Result":      result,
		"Models":      models,
		"MinFeatures": simulator.MinFeatures,
		"MaxFeatures": simulator.MaxFeatures,
		"Step":        simulator.FeaturesStep,
	}
}

func confusionView(m simulator.ConfusionMatrix) fiber.Map {
	return fiber.Map{
		"Matrix":    m,
		"Threshold": fmt.Sprintf("%.2f", m.Threshold),
		"Precision": percent(m.Precision),
		"Recall":    percent(m.Recall),
		"F1":        percent(m.F1),
		"Accuracy":  percent(m.Accuracy),
	}
}

func tuningView(t simulator.Tuning) fiber.Map {
	return fiber.Map{
		"Tuning":    t,
		"Threshold": fmt.Sprintf("%.1f", t.Threshold),
		"Precision": percent(t.Precision),
		"Recall":    percent(t.Recall),
		"F1":        percent(t.F1),
	}
}

// Predict scores the submitted message.
func (h *WidgetHandler) Predict(c fiber.Ctx) error {
	message := c.FormValue("message")
	if ok, msg := validation.ValidateMessage(message); !ok {
		return htmxError(c, msg)
	}

	result := scorer.Score(message)
	metrics.RecordPrediction(result.IsSpam, result.KeywordsFound)
	return renderPartial(c, "partials/predict", predictView(message, &result))
}

// Ngrams re-splits the demo sentence (or the submitted text) at the chosen size.
func (h *WidgetHandler) Ngrams(c fiber.Ctx) error {
	n, ok, msg := validation.ParseNgramSize(c.Query("n"), defaultNgramSize)
	if !ok {
		return htmxError(c, msg)
	}
	text := c.Query("text", h.catalog.DemoSentence)
	return renderPartial(c, "partials/ngrams", ngramView(text, n))
}

// Vectorize shows the bag-of-words for the submitted message.
func (h *WidgetHandler) Vectorize(c fiber.Ctx) error {
	message := c.FormValue("message")
	if ok, msg := validation.ValidateMessage(message); !ok {
		return htmxError(c, msg)
	}
	return renderPartial(c, "partials/vectorizer", vectorView(message))
}

// Samples filters the dataset explorer.
func (h *WidgetHandler) Samples(c fiber.Ctx) error {
	filter := c.Query("label", content.FilterAll)
	samples, err := h.catalog.Samples(filter)
	if err != nil {
		return htmxError(c, "Unknown filter")
	}
	return renderPartial(c, "partials/samples", samplesView(samples, filter))
}

// Model re-runs the model comparison simulator.
func (h *WidgetHandler) Model(c fiber.Ctx) error {
	features, ok, msg := validation.ParseFeatures(c.Query("features"), defaultFeatures)
	if !ok {
		return htmxError(c, msg)
	}

	result, err := h.models.Simulate(c.Query("model", simulator.NaiveBayes), features)
	if errors.Is(err, simulator.ErrUnknownModel) {
		return htmxError(c, "Unknown model")
	}
	if err != nil {
		return htmxError(c, err.Error())
	}
	return renderPartial(c, "partials/model", modelView(result))
}

// Confusion recomputes the confusion matrix for a threshold.
func (h *WidgetHandler) Confusion(c fiber.Ctx) error {
	t, ok, msg := validation.ParseThreshold(c.Query("threshold"), defaultThreshold)
	if !ok {
		return htmxError(c, msg)
	}
	m, err := simulator.Confusion(t)
	if err != nil {
		return htmxError(c, err.Error())
	}
	return renderPartial(c, "partials/confusion", confusionView(m))
}

// Threshold shows the precision/recall trade-off for a threshold.
func (h *WidgetHandler) Threshold(c fiber.Ctx) error {
	t, ok, msg := validation.ParseThreshold(c.Query("threshold"), defaultThreshold)
	if !ok {
		return htmxError(c, msg)
	}
	tuning, err := simulator.Tune(t)
	if err != nil {
		return htmxError(c, err.Error())
	}
	return renderPartial(c, "partials/threshold", tuningView(tuning))
}

// Counter renders the submission counter badge.
func (h *WidgetHandler) Counter(c fiber.Ctx) error {
	return renderPartial(c, "partials/counter", fiber.Map{
		"Submissions": submissionCount(c, h.counter, h.logger),
	})
}

// SpamCount renders the ticking spam figure.
func (h *WidgetHandler) SpamCount(c fiber.Ctx) error {
	return renderPartial(c, "partials/spam_count", fiber.Map{
		"SpamCount": h.spam.Count(),
	})
}

// submissionCount reads the counter for display. Failures are logged and
// shown as zero.
func submissionCount(c fiber.Ctx, cnt counter.Counter, logger *zap.Logger) int64 {
	n, err := cnt.Get(c.Context())
	if err != nil {
		logger.Warn("Failed to read submission counter", zap.Error(err))
		return 0
	}
	return n
}
