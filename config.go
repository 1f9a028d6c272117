package vedicweb

import (
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
)

// SiteConfig holds all configuration for a vedicweb site.
type SiteConfig struct {
	Name        string // Site name (default "Vedic Sages")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr string // Listen address (default ":3000")

	// Content API (Sanity-compatible read endpoint).
	ContentProjectID  string // Required: project identifier
	ContentDataset    string // Dataset name (default "production")
	ContentAPIVersion string // API version date (default set by content package)

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	AnalyticsEnabled      bool   // Enable analytics (default true via env)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")
	AnalyticsStatsToken   string // Bearer token guarding the stats endpoint

	// Contact channels shown in the footer and used by the contact endpoint.
	ContactPhone   string // E.164 phone, e.g. "+919876543210"
	ContactEmail   string
	WhatsAppNumber string // Digits only, e.g. "919876543210"
	TelegramHandle string
	TwitterHandle  string
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Vedic Sages"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDataset == "" {
		c.ContentDataset = "production"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.WhatsAppNumber == "" && c.ContactPhone != "" {
		c.WhatsAppNumber = strings.TrimPrefix(c.ContactPhone, "+")
	}
}

// ConfigFromEnv builds a SiteConfig from environment variables, loading a
// .env file first when one is present.
func ConfigFromEnv() SiteConfig {
	_ = godotenv.Load()
	return SiteConfig{
		Name:        EnvOr("SITE_NAME", "Vedic Sages"),
		URL:         EnvOr("SITE_URL", "http://localhost:3000"),
		Description: EnvOr("SITE_DESCRIPTION", ""),
		Author:      EnvOr("SITE_AUTHOR", ""),

		Addr: EnvOr("ADDR", ":3000"),

		ContentProjectID:  MustEnv("CONTENT_PROJECT_ID"),
		ContentDataset:    EnvOr("CONTENT_DATASET", "production"),
		ContentAPIVersion: EnvOr("CONTENT_API_VERSION", ""),

		SessionSecret: MustEnv("SESSION_SECRET"),
		CookieSecure:  EnvOr("COOKIE_SECURE", "") == "true",

		AnalyticsEnabled:      EnvOr("ANALYTICS_ENABLED", "true") == "true",
		AnalyticsDatabasePath: EnvOr("ANALYTICS_DB_PATH", "data/analytics.db"),
		AnalyticsStatsToken:   EnvOr("ANALYTICS_STATS_TOKEN", ""),

		ContactPhone:   EnvOr("CONTACT_PHONE", ""),
		ContactEmail:   EnvOr("CONTACT_EMAIL", ""),
		WhatsAppNumber: EnvOr("WHATSAPP_NUMBER", ""),
		TelegramHandle: EnvOr("TELEGRAM_HANDLE", ""),
		TwitterHandle:  EnvOr("TWITTER_HANDLE", ""),
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the default structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}
