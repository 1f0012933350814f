package email

import (
	"fmt"
	"html"
	"strings"

	"spamlab/internal/config"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #1f2937; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #7c3aed; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { background: #faf5ff; padding: 20px; border: 1px solid #e9d5ff; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        blockquote { margin: 0; padding-left: 12px; border-left: 3px solid #c4b5fd; white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer">
        <p>Sent by the contact form on <a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, t.cfg.BaseURL, html.EscapeString(t.cfg.SiteTitle))
}

// Contact is a visitor's contact form submission.
type Contact struct {
	Name      string
	Email     string
	Message   string
	Reference string
}

// ContactMessage renders a forwarded contact form submission.
func (t *Templates) ContactMessage(c Contact) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Message from %s", t.cfg.SiteTitle, singleLine(c.Name))

	content := fmt.Sprintf(`
        <p>Someone used the contact form.</p>
        <div class="info-box">
            <p><span class="label">Name:</span> %s</p>
            <p><span class="label">Email:</span> <a href="mailto:%s">%s</a></p>
            <p><span class="label">Reference:</span> %s</p>
        </div>
        <blockquote>%s</blockquote>
    `,
		html.EscapeString(c.Name),
		html.EscapeString(c.Email),
		html.EscapeString(c.Email),
		html.EscapeString(c.Reference),
		html.EscapeString(c.Message),
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`New contact form message

Name: %s
Email: %s
Reference: %s

%s

--
%s
%s`,
		c.Name,
		c.Email,
		c.Reference,
		c.Message,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// singleLine keeps user input from injecting extra headers into a subject.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
