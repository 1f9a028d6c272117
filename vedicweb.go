// Package vedicweb is a multilingual marketing site engine built with Go,
// Echo, and templ. It serves localized pages backed by a hosted content API,
// resolves image references to CDN or screenshot-proxy URLs, and ships
// panchang, recommendation, and contact features out of the box.
//
// Users provide their own templ components via the ViewFuncs struct, and
// vedicweb handles the handler logic, middleware, localization, and
// analytics.
package vedicweb

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/vedicsages/vedicweb/analytics"
	"github.com/vedicsages/vedicweb/content"
	"github.com/vedicsages/vedicweb/i18n"
	"github.com/vedicsages/vedicweb/images"
	"github.com/vedicsages/vedicweb/recommend"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, optional
}

// PageData is the per-request context every view receives: the site config,
// the resolved language, and a translator bound to it.
type PageData struct {
	Site      SiteConfig
	Lang      i18n.Language
	T         func(key string) string
	Path      string
	Meta      PageMeta
	CSRFToken string
}

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets
// users own and customize all templates.
type ViewFuncs struct {
	Home            func(p PageData, recent []content.RecentPost, pn content.Panchang, usingSample bool) templ.Component
	Services        func(p PageData) templ.Component
	BlogIndex       func(p PageData, posts []content.Post, activeCategory string) templ.Component
	Post            func(p PageData, post content.Post, recent []content.RecentPost) templ.Component
	Contact         func(p PageData) templ.Component
	Recommendations func(p PageData, raashis, nakshatras, western []string) templ.Component
	Panchang        func(p PageData, pn content.Panchang, usingSample bool) templ.Component
	NotFound        func(p PageData) templ.Component
	ServerError     func(p PageData) templ.Component
}

// App is the central vedicweb application. It wires together the content
// service, image resolver, localization, recommendation engine, analytics,
// and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *content.Service
	Images  *images.Resolver
	Dict    *i18n.Dictionary
	Engine  *recommend.Engine
	Views   ViewFuncs

	log              *slog.Logger
	contactLimiter   *analytics.Limiter
	analyticsStore   *analytics.Store
	analyticsHandler *analytics.Handler
	customRoutes     []func(*App)
	staticDir        string
}

// New creates a new vedicweb App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		log:       slog.Default(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the content service, localization, analytics, middleware,
// and routes, then starts the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.ContentProjectID == "" {
		return fmt.Errorf("vedicweb: ContentProjectID is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("vedicweb: SessionSecret is required")
	}

	client := content.NewClient(content.Config{
		ProjectID:  a.Config.ContentProjectID,
		Dataset:    a.Config.ContentDataset,
		APIVersion: a.Config.ContentAPIVersion,
	})
	a.Content = content.NewService(client, content.WithLogger(a.log))

	a.Images = images.NewResolver(images.CDN{
		ProjectID: a.Config.ContentProjectID,
		Dataset:   a.Config.ContentDataset,
	})

	dict, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("vedicweb: load locales: %w", err)
	}
	a.Dict = dict

	engine, err := recommend.New()
	if err != nil {
		return fmt.Errorf("vedicweb: load recommendation data: %w", err)
	}
	a.Engine = engine

	a.contactLimiter = analytics.NewLimiter(5, time.Minute)
	defer a.contactLimiter.Stop()

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("vedicweb: init analytics: %w", err)
		}
		a.analyticsStore = store
		if err := analytics.InitSalt(store); err != nil {
			return fmt.Errorf("vedicweb: init analytics salt: %w", err)
		}
		stopRetention := store.StartRetention(365, 24*time.Hour)
		defer stopRetention()
		a.analyticsHandler = analytics.NewHandler(store, a.log, a.Config.AnalyticsStatsToken)
		defer a.analyticsHandler.Close()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded engine assets served under /public/, falling through to the
	// user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/analytics.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/site.webmanifest", a.handleManifest)

	// Pages
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/services/", a.handleServices)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/contact/", a.handleContact)
	e.GET("/recommendations/", a.handleRecommendations)
	e.GET("/panchang/", a.handlePanchang)

	// JSON API
	api := e.Group("/api")
	api.GET("/blog-posts", a.handleAPIPosts)
	api.GET("/blog-post", a.handleAPIPost)
	api.GET("/panchang", a.handleAPIPanchang)
	api.POST("/recommendations", a.handleAPIRecommendations)
	api.POST("/contact", a.handleAPIContact)

	if a.analyticsHandler != nil {
		api.POST("/analytics/collect", a.analyticsHandler.Collect)
		api.GET("/analytics/stats", a.analyticsHandler.Stats)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("vedicweb: required environment variable %s is not set", key)
	}
	return v
}

// pageData assembles the per-request view context for c.
func (a *App) pageData(c echo.Context, meta PageMeta) PageData {
	lang := CurrentLocale(c)
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	if meta.URL == "" {
		meta.URL = BuildURL(a.Config.URL, c.Request().URL.Path)
	}
	return PageData{
		Site:      a.Config,
		Lang:      lang,
		T:         a.Dict.Func(lang),
		Path:      c.Request().URL.Path,
		Meta:      meta,
		CSRFToken: CsrfToken(c),
	}
}
