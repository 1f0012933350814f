package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spamlab/internal/content"
	"spamlab/internal/counter"
	"spamlab/internal/handlers"
	"spamlab/internal/handlers/api"
	"spamlab/internal/middleware"
	"spamlab/internal/simulator"
)

// Deps are the services the routes are built from.
type Deps struct {
	Catalog *content.Catalog
	Counter counter.Counter
	Spam    handlers.SpamCounter
	Models  *simulator.ModelSimulator
	Mailer  handlers.Mailer
	Checks  map[string]handlers.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(d Deps) {
	visitor := middleware.NewVisitorState(s.Log)

	pageHandler := handlers.NewPageHandler(s.Cfg, d.Catalog, d.Counter, d.Spam, d.Models, s.Log)
	quizHandler := handlers.NewQuizHandler(s.Cfg, d.Catalog, s.Log)
	checklistHandler := handlers.NewChecklistHandler(d.Catalog, s.Log)
	contactHandler := handlers.NewContactHandler(s.Cfg, d.Counter, d.Mailer, s.Log)
	widgetHandler := handlers.NewWidgetHandler(d.Catalog, d.Counter, d.Spam, d.Models, s.Log)
	healthHandler := handlers.NewHealthHandler(d.Checks, s.Log)
	apiHandler := api.NewHandler(d.Catalog, d.Counter, d.Spam, d.Models, s.Log)

	// Health checks (unauthenticated, before everything else)
	s.App.Get("/healthz", healthHandler.Liveness)
	s.App.Get("/readyz", healthHandler.Readiness)

	if s.Cfg.MetricsEnabled {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Pages
	s.App.Get("/", pageHandler.Index)
	s.App.Get("/about", pageHandler.About)
	s.App.Get("/chapters", pageHandler.Chapters)
	s.App.Get("/chapter/:id", visitor.LoadQuiz, visitor.LoadChecklist, pageHandler.Chapter)
	s.App.Get("/resources", pageHandler.Resources)
	s.App.Get("/lexicon", pageHandler.Lexicon)

	// Chapter one quiz
	s.App.Get("/quiz", visitor.LoadQuiz, quizHandler.Show)
	s.App.Post("/quiz/answer", visitor.LoadQuiz, quizHandler.Answer)
	s.App.Post("/quiz/next", visitor.LoadQuiz, quizHandler.Next)
	s.App.Post("/quiz/reset", visitor.LoadQuiz, quizHandler.Reset)

	// Deployment checklist (chapter seven)
	s.App.Post("/chapter/:id/checklist/:item", visitor.LoadChecklist, checklistHandler.Toggle)

	// Contact form
	s.App.Get("/contact", contactHandler.Show)
	s.App.Post("/contact", contactHandler.Submit)
	s.App.Get("/thank-you", contactHandler.ThankYou)

	// HTMX widget fragments
	widgets := s.App.Group("/widgets")
	widgets.Post("/predict", widgetHandler.Predict)
	widgets.Get("/ngrams", widgetHandler.Ngrams)
	widgets.Post("/vectorize", widgetHandler.Vectorize)
	widgets.Get("/samples", widgetHandler.Samples)
	widgets.Get("/model", widgetHandler.Model)
	widgets.Get("/confusion", widgetHandler.Confusion)
	widgets.Get("/threshold", widgetHandler.Threshold)
	widgets.Get("/counter", widgetHandler.Counter)
	widgets.Get("/spam-count", widgetHandler.SpamCount)

	// JSON API
	v1 := s.App.Group("/api")
	v1.Post("/score", apiHandler.Score)
	v1.Get("/ngrams", apiHandler.Ngrams)
	v1.Post("/vectorize", apiHandler.Vectorize)
	v1.Get("/counter", apiHandler.Counter)
	v1.Post("/counter", apiHandler.IncrementCounter)
	v1.Get("/spam-count", apiHandler.SpamCount)
	v1.Get("/simulate/model", apiHandler.SimulateModel)
	v1.Get("/simulate/confusion", apiHandler.SimulateConfusion)
	v1.Get("/simulate/threshold", apiHandler.SimulateThreshold)
	v1.Get("/chapters", apiHandler.Chapters)
	v1.Get("/chapters/:id", apiHandler.Chapter)
	v1.Get("/samples", apiHandler.Samples)
	v1.Get("/resources", apiHandler.Resources)
	v1.Get("/lexicon", apiHandler.Lexicon)
}
