package server

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/gofiber/template/html/v3"
	"go.uber.org/zap"

	"spamlab/internal/config"
	"spamlab/internal/handlers"
	"spamlab/internal/handlers/api"
	assets "spamlab/static"
	"spamlab/views"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config
	Log *zap.Logger
}

// New creates a new server with middleware configured. storage backs sessions
// and the rate limiter; nil keeps both in memory.
func New(cfg *config.Config, log *zap.Logger, storage fiber.Storage) *Server {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	engine.Reload(cfg.IsDev())
	engine.AddFunc("commas", commas)

	app := fiber.New(fiber.Config{
		AppName:      cfg.SiteTitle,
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: errorHandler(cfg, log),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Stream: zap.NewStdLog(log.Named("http")).Writer(),
	}))

	// CORS middleware
	corsOrigins := cfg.BaseURL
	if cfg.CORSOrigins != "" {
		corsOrigins = cfg.CORSOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Cookie encryption middleware
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: deriveEncryptionKey(cfg.SessionSecret),
	}))

	// Session middleware holds quiz progress and the deployment checklist
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		Storage:        storage,
		CookieSecure:   cfg.TLSEnabled || !cfg.IsDev(),
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		IdleTimeout:    24 * time.Hour,
	})
	app.Use(sessionMiddleware)

	// Rate limiting middleware - 100 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Next:       skipLimiter,
		Max:        100,
		Expiration: 1 * time.Minute,
		Storage:    storage,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return api.Error(c, fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		},
	}))

	// Static files
	app.Get("/static/*", static.New("", static.Config{
		FS:     assets.FS,
		MaxAge: 3600,
	}))

	return &Server{
		App: app,
		Cfg: cfg,
		Log: log,
	}
}

// skipLimiter exempts health checks, metrics, static assets and the polling widgets.
func skipLimiter(c fiber.Ctx) bool {
	p := c.Path()
	switch {
	case p == "/healthz", p == "/readyz", p == "/metrics":
		return true
	case strings.HasPrefix(p, "/static/"):
		return true
	case p == "/widgets/spam-count", p == "/widgets/counter":
		return true
	}
	return false
}

// errorHandler renders the error page, or the JSON envelope for /api routes.
func errorHandler(cfg *config.Config, log *zap.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("Request failed", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		}

		// unmatched routes surface as the generic ErrNotFound
		if errors.Is(err, fiber.ErrNotFound) || (code == fiber.StatusNotFound && message == fiber.ErrNotFound.Message) {
			message = "Page not found"
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return api.Error(c, code, message)
		}

		return c.Status(code).Render("error", handlers.MergeBranding(fiber.Map{
			"Title":   "Error",
			"Code":    code,
			"Message": message,
		}, cfg))
	}
}

// Start starts the server with the configured address and TLS settings.
func (s *Server) Start() error {
	listenConfig := fiber.ListenConfig{
		DisableStartupMessage: !s.Cfg.IsDev(),
	}
	if s.Cfg.TLSEnabled {
		listenConfig.CertFile = s.Cfg.TLSCertFile
		listenConfig.CertKeyFile = s.Cfg.TLSKeyFile
		listenConfig.TLSConfigFunc = func(tc *tls.Config) {
			tc.MinVersion = tls.VersionTLS12
		}
		s.Log.Info("Starting server with TLS", zap.String("addr", s.Cfg.ServerAddr))
	} else {
		s.Log.Info("Starting server", zap.String("addr", s.Cfg.ServerAddr))
	}
	return s.App.Listen(s.Cfg.ServerAddr, listenConfig)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}

// deriveEncryptionKey derives a 32-byte encryption key from the session secret.
func deriveEncryptionKey(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(hash[:])
}
