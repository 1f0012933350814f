package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"spamlab/internal/config"
)

// Message is one outgoing email.
type Message struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// Service handles sending email.
type Service struct {
	cfg     *config.Config
	logger  *zap.Logger
	enabled bool
	timeout time.Duration
}

// NewService creates a new email service.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	s := &Service{
		cfg:     cfg,
		logger:  logger,
		enabled: cfg.IsEmailEnabled(),
		timeout: 10 * time.Second,
	}

	if s.enabled {
		logger.Info("Email forwarding enabled",
			zap.String("host", cfg.SMTPHost),
			zap.Int("port", cfg.SMTPPort),
			zap.String("tls", cfg.SMTPTLS))
	} else {
		logger.Info("Email forwarding disabled (SMTP not configured)")
	}

	return s
}

// IsEnabled returns true if email is enabled.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// fromHeader formats the From header, with the display name when configured.
func (s *Service) fromHeader() string {
	if s.cfg.SMTPFromName != "" {
		return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.cfg.SMTPFromName), s.cfg.SMTPFrom)
	}
	return s.cfg.SMTPFrom
}

// buildMessage renders msg as a MIME message. Both bodies present gives
// multipart/alternative; a single body is sent as-is.
func (s *Service) buildMessage(msg Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", s.fromHeader())
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	// non-ASCII subjects (a visitor's name) need RFC 2047 encoding
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		boundary := "spamlab-" + uuid.NewString()
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.TextBody)
		b.WriteString("\r\n")

		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.HTMLBody)
		b.WriteString("\r\n")

		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	case msg.HTMLBody != "":
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.HTMLBody)
		b.WriteString("\r\n")
	default:
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.TextBody)
		b.WriteString("\r\n")
	}

	return b.String()
}

// dial opens a client according to the configured TLS mode.
func (s *Service) dial() (*smtp.Client, error) {
	addr := net.JoinHostPort(s.cfg.SMTPHost, strconv.Itoa(s.cfg.SMTPPort))
	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}

	switch s.cfg.SMTPTLS {
	case "tls":
		return smtp.DialTLS(addr, tlsConfig)
	case "none":
		return smtp.Dial(addr)
	default: // "starttls"
		return smtp.DialStartTLS(addr, tlsConfig)
	}
}

// Send delivers msg. It is a no-op when email is disabled or msg has no
// recipients.
func (s *Service) Send(ctx context.Context, msg Message) error {
	if !s.enabled || len(msg.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	client, err := s.dial()
	if err != nil {
		return fmt.Errorf("SMTP dial failed: %w", err)
	}
	defer client.Close()

	client.CommandTimeout = s.timeout
	client.SubmissionTimeout = s.timeout

	if s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != "" {
		auth := sasl.NewPlainClient("", s.cfg.SMTPUsername, s.cfg.SMTPPassword)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}

	if err := client.Mail(s.cfg.SMTPFrom, nil); err != nil {
		return fmt.Errorf("SMTP MAIL failed: %w", err)
	}

	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt, nil); err != nil {
			return fmt.Errorf("SMTP RCPT failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}

	if _, err := w.Write([]byte(s.buildMessage(msg))); err != nil {
		w.Close()
		return fmt.Errorf("SMTP write failed: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("SMTP close failed: %w", err)
	}

	if err := client.Quit(); err != nil {
		s.logger.Warn("SMTP QUIT failed", zap.Error(err))
	}
	return nil
}

// SendAsync sends msg in the background. Failures are logged, never returned.
func (s *Service) SendAsync(msg Message) {
	if !s.enabled || len(msg.To) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*s.timeout)
		defer cancel()

		if err := s.Send(ctx, msg); err != nil {
			s.logger.Error("Failed to send email", zap.Strings("to", msg.To), zap.Error(err))
			return
		}
		s.logger.Info("Email sent", zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	}()
}
