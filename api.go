package vedicweb

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vedicsages/vedicweb/content"
	"github.com/vedicsages/vedicweb/recommend"
)

// apiPost is the wire shape for a post, with image references already
// resolved to URLs so clients never see raw asset records.
type apiPost struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Excerpt     string          `json:"excerpt,omitempty"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	PublishedAt string          `json:"publishedAt,omitempty"`
	Author      string          `json:"author,omitempty"`
	Body        []content.Block `json:"body,omitempty"`
}

func (a *App) toAPIPost(p content.Post, withBody bool) apiPost {
	out := apiPost{
		ID:       p.ID,
		Title:    p.Title,
		Slug:     p.Slug.Current,
		Excerpt:  p.Excerpt,
		Category: p.Category,
		ImageURL: a.Images.CardPostURL(p.ImageValue(), p.ExternalImageURL),
		Author:   p.Author,
	}
	if !p.PublishedAt.IsZero() {
		out.PublishedAt = p.PublishedAt.Format(time.RFC3339)
	}
	if withBody {
		out.Body = p.Body
	}
	return out
}

// handleAPIPosts returns the post list, optionally filtered by category.
// The response posts array is always present, never null.
func (a *App) handleAPIPosts(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")

	var (
		posts []content.Post
		err   error
	)
	switch {
	case category == "" || category == "all":
		posts, err = a.Content.Posts(ctx)
	case content.ValidCategory(category):
		posts, err = a.Content.PostsByCategory(ctx, category)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}
	if err != nil {
		a.log.Error("api: list posts failed", "category", category, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to load blog posts right now.")
	}

	out := make([]apiPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, a.toAPIPost(p, false))
	}
	return c.JSON(http.StatusOK, map[string]any{"posts": out})
}

// handleAPIPost returns one post by slug plus the recent-post sidebar in a
// single response. The two reads are independent and run concurrently. A
// missing post is not an error: the post field is null and the client
// renders its own not-found state.
func (a *App) handleAPIPost(c echo.Context) error {
	slug := strings.TrimSpace(c.QueryParam("slug"))
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slug is required")
	}
	ctx := c.Request().Context()

	var (
		wg      sync.WaitGroup
		post    *content.Post
		postErr error
		recent  []content.RecentPost
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		post, postErr = a.Content.PostBySlug(ctx, slug)
	}()
	go func() {
		defer wg.Done()
		var err error
		if recent, err = a.Content.RecentPosts(ctx); err != nil {
			a.log.Error("api: recent posts failed", "error", err)
			recent = []content.RecentPost{}
		}
	}()
	wg.Wait()

	if postErr != nil {
		a.log.Error("api: get post failed", "slug", slug, "error", postErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to load this article right now.")
	}

	body := map[string]any{"post": nil, "recentPosts": recent}
	if post != nil {
		body["post"] = a.toAPIPost(*post, true)
	}
	return c.JSON(http.StatusOK, body)
}

// handleAPIPanchang returns today's panchang, falling back to the most
// recent entry and finally to sample data.
func (a *App) handleAPIPanchang(c echo.Context) error {
	pn, usingSample := a.Content.TodayPanchang(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"panchang":    pn,
		"usingSample": usingSample,
	})
}

type recommendationRequest struct {
	Mode      string `json:"mode"`
	Nakshatra string `json:"nakshatra"`
	Raashi    string `json:"raashi"`
	Zodiac    string `json:"zodiac"`
}

// handleAPIRecommendations generates gemstone and color guidance from either
// vedic inputs or a western sun sign.
func (a *App) handleAPIRecommendations(c echo.Context) error {
	var req recommendationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	mode := recommend.ModeVedic
	if strings.EqualFold(req.Mode, "western") {
		mode = recommend.ModeWestern
	}

	result, err := a.Engine.Generate(recommend.Request{
		Mode:      mode,
		Nakshatra: req.Nakshatra,
		Raashi:    req.Raashi,
		Zodiac:    req.Zodiac,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

type contactRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// handleAPIContact validates a contact form submission and returns the
// WhatsApp link that carries the composed message. Rate limited per IP.
func (a *App) handleAPIContact(c echo.Context) error {
	if !a.contactLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and message are required")
	}
	if len(req.Message) > 2000 {
		return echo.NewHTTPError(http.StatusBadRequest, "message too long")
	}

	text := "Hello, I am " + req.Name + ". " + req.Message
	return c.JSON(http.StatusOK, map[string]string{
		"whatsappUrl": WhatsAppLink(a.Config.WhatsAppNumber, text),
	})
}
