package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"spamlab/internal/config"
	"spamlab/internal/counter"
	"spamlab/internal/email"
	"spamlab/internal/validation"
)

// ContactHandler serves the simulated contact form.
type ContactHandler struct {
	cfg       *config.Config
	counter   counter.Counter
	mailer    Mailer
	templates *email.Templates
	logger    *zap.Logger
	delay     time.Duration
}

// NewContactHandler creates a new contact handler. mailer may be nil.
func NewContactHandler(cfg *config.Config, c counter.Counter, mailer Mailer, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		cfg:       cfg,
		counter:   c,
		mailer:    mailer,
		templates: email.NewTemplates(cfg),
		logger:    logger,
		delay:     cfg.ContactDelay,
	}
}

// Show renders the empty contact form.
func (h *ContactHandler) Show(c fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, validation.ContactForm{}, nil, "")
}

func (h *ContactHandler) renderForm(c fiber.Ctx, status int, form validation.ContactForm, errs map[string]string, notice string) error {
	return c.Status(status).Render("contact", MergeBranding(fiber.Map{
		"Title":       "Contact",
		"Form":        form,
		"Errors":      errs,
		"Notice":      notice,
		"Submissions": submissionCount(c, h.counter, h.logger),
	}, h.cfg))
}

// Submit accepts a contact form post. After an artificial delay it bumps the
// submission counter, forwards the message when SMTP is configured, and
// redirects to the thank-you page.
func (h *ContactHandler) Submit(c fiber.Ctx) error {
	form := validation.ContactForm{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Message: c.FormValue("message"),
	}
	form.Normalize()

	if err := validation.Struct(form); err != nil {
		return h.renderForm(c, fiber.StatusUnprocessableEntity, form, validation.FormatValidationError(err), "")
	}

	if err := sleepCtx(c.Context(), h.delay); err != nil {
		return err
	}

	n, err := h.counter.Increment(c.Context())
	if err != nil {
		h.logger.Error("Failed to record contact submission", zap.Error(err))
		return h.renderForm(c, fiber.StatusServiceUnavailable, form, nil,
			"There was an error submitting your message. Please try again later.")
	}

	ref := uuid.NewString()
	h.logger.Info("Contact form submitted", zap.String("ref", ref), zap.Int64("submissions", n))
	h.forward(form, ref)

	return c.Redirect().Status(fiber.StatusSeeOther).To("/thank-you?ref=" + ref)
}

// forward mails the submission to the site owner. Delivery problems are logged
// by the mailer and never reach the visitor.
func (h *ContactHandler) forward(form validation.ContactForm, ref string) {
	if h.mailer == nil || !h.mailer.IsEnabled() || h.cfg.ContactRecipient == "" {
		return
	}

	subject, htmlBody, textBody := h.templates.ContactMessage(email.Contact{
		Name:      form.Name,
		Email:     form.Email,
		Message:   form.Message,
		Reference: ref,
	})
	h.mailer.SendAsync(email.Message{
		To:       []string{h.cfg.ContactRecipient},
		ReplyTo:  form.Email,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// ThankYou renders the post-submission page.
func (h *ContactHandler) ThankYou(c fiber.Ctx) error {
	data := fiber.Map{
		"Title":       "Thank you",
		"Submissions": submissionCount(c, h.counter, h.logger),
	}
	if ref, err := uuid.Parse(c.Query("ref")); err == nil {
		data["Ref"] = ref.String()
	}
	return c.Render("thank_you", MergeBranding(data, h.cfg))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
