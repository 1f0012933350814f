package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"spamlab/internal/config"
	"spamlab/internal/content"
	"spamlab/internal/counter"
	"spamlab/internal/middleware"
	"spamlab/internal/scorer"
	"spamlab/internal/simulator"
)

// PageHandler renders the landing page, chapters and other static pages.
type PageHandler struct {
	cfg     *config.Config
	catalog *content.Catalog
	counter counter.Counter
	spam    SpamCounter
	models  *simulator.ModelSimulator
	logger  *zap.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config, catalog *content.Catalog, c counter.Counter, spam SpamCounter, models *simulator.ModelSimulator, logger *zap.Logger) *PageHandler {
	return &PageHandler{cfg: cfg, catalog: catalog, counter: c, spam: spam, models: models, logger: logger}
}

// Index renders the landing page.
func (h *PageHandler) Index(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(fiber.Map{
		"Title":       "Home",
		"Chapters":    h.catalog.Chapters(),
		"SpamCount":   h.spam.Count(),
		"Submissions": submissionCount(c, h.counter, h.logger),
	}, h.cfg))
}

// About renders the about page.
func (h *PageHandler) About(c fiber.Ctx) error {
	return c.Render("about", MergeBranding(fiber.Map{
		"Title":       "About",
		"Submissions": submissionCount(c, h.counter, h.logger),
	}, h.cfg))
}

// Chapters renders the chapter index.
func (h *PageHandler) Chapters(c fiber.Ctx) error {
	return c.Render("chapters", MergeBranding(fiber.Map{
		"Title":    "Chapters",
		"Chapters": h.catalog.Chapters(),
	}, h.cfg))
}

// Chapter renders one chapter with the demos it embeds. Anything other than
// 1 through 8 is a 404.
func (h *PageHandler) Chapter(c fiber.Ctx) error {
	n, err := content.ParseChapterID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
	}

	ch, err := h.catalog.Chapter(n)
	if errors.Is(err, content.ErrChapterNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
	}
	if err != nil {
		return err
	}

	prev, next := h.catalog.Neighbours(n)
	data := fiber.Map{
		"Title":   ch.Title,
		"Chapter": ch,
		"Prev":    prev,
		"Next":    next,
	}

	if err := h.widgetData(c, ch, data); err != nil {
		return err
	}

	return c.Render("chapter", MergeBranding(data, h.cfg))
}

// widgetData fills in the initial state of every demo the chapter embeds.
func (h *PageHandler) widgetData(c fiber.Ctx, ch content.Chapter, data fiber.Map) error {
	for _, w := range ch.Widgets {
		switch w {
		case "quiz":
			data["Quiz"] = quizView(middleware.Quiz(c), h.catalog)
		case "explorer":
			samples, _ := h.catalog.Samples(content.FilterAll)
			data["Samples"] = samplesView(samples, content.FilterAll)
		case "ngram":
			data["Ngrams"] = ngramView(h.catalog.DemoSentence, defaultNgramSize)
		case "vectorizer":
			data["Vector"] = vectorView("")
		case "simulator":
			result, err := h.models.Simulate(simulator.NaiveBayes, defaultFeatures)
			if err != nil {
				return err
			}
			data["Model"] = modelView(result)
		case "confusion":
			m, err := simulator.Confusion(defaultThreshold)
			if err != nil {
				return err
			}
			data["Confusion"] = confusionView(m)
		case "predictor":
			data["Predict"] = predictView("", nil)
		case "threshold":
			t, err := simulator.Tune(defaultThreshold)
			if err != nil {
				return err
			}
			data["Tuning"] = tuningView(t)
		case "checklist":
			data["Checklist"] = checklistView(ch.Number, h.catalog.Checklist(), middleware.Checklist(c))
		default:
			h.logger.Warn("Unknown widget in content", zap.String("widget", w), zap.Int("chapter", ch.Number))
		}
	}
	return nil
}

// Resources renders the extra reading page.
func (h *PageHandler) Resources(c fiber.Ctx) error {
	return c.Render("resources", MergeBranding(fiber.Map{
		"Title":  "Resources",
		"Groups": h.catalog.Resources(),
	}, h.cfg))
}

// Lexicon lists the predictor's trigger words; linked from chapter five.
func (h *PageHandler) Lexicon(c fiber.Ctx) error {
	return c.Render("lexicon", MergeBranding(fiber.Map{
		"Title":      "Predictor keywords",
		"Lexicon":    scorer.Lexicon(),
		"Multiplier": scorer.Multiplier,
		"Cap":        scorer.MaxProbability,
		"Threshold":  scorer.Threshold,
	}, h.cfg))
}
