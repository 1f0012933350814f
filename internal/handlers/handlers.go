package handlers

import (
	"context"
	"html"

	"github.com/gofiber/fiber/v3"

	"spamlab/internal/email"
)

// SpamCounter reports the simulated "spam sent today" figure.
type SpamCounter interface {
	Count() int64
}

// Mailer forwards contact form messages.
type Mailer interface {
	IsEnabled() bool
	SendAsync(msg email.Message)
}

// Pinger is a dependency the readiness endpoint checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// isHTMX reports whether the request came from an htmx swap.
func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// htmxError returns an error message as HTML that HTMX will display.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	return c.SendString(`<div class="notice notice-error">` + html.EscapeString(message) + `</div>`)
}

// renderPartial renders a view without the site layout.
func renderPartial(c fiber.Ctx, name string, data fiber.Map) error {
	return c.Render(name, data, "")
}
