package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"spamlab/internal/config"
)

// Site is the per-page chrome shared by every template: title, tagline,
// footer line and copyright year.
type Site struct {
	Title   string
	Tagline string
	Footer  string
	Year    int
}

func siteFor(cfg *config.Config, now time.Time) Site {
	return Site{
		Title:   cfg.SiteTitle,
		Tagline: cfg.SiteTagline,
		Footer:  cfg.SiteFooter,
		Year:    now.Year(),
	}
}

// MergeBranding adds the site chrome to data. Keys already set by the
// handler win.
func MergeBranding(data fiber.Map, cfg *config.Config) fiber.Map {
	site := siteFor(cfg, time.Now())
	for k, v := range map[string]any{
		"SiteTitle":   site.Title,
		"SiteTagline": site.Tagline,
		"SiteFooter":  site.Footer,
		"Year":        site.Year,
	} {
		if _, ok := data[k]; !ok {
			data[k] = v
		}
	}
	return data
}
