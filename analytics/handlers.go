package analytics

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vedicsages/vedicweb/i18n"
)

const sessionCookie = "vw_session"

// Handler serves the collect and stats endpoints.
type Handler struct {
	store      *Store
	limiter    *Limiter
	log        *slog.Logger
	statsToken string
}

// NewHandler wires the analytics endpoints. statsToken, when non-empty,
// protects the stats endpoint with a bearer token.
func NewHandler(store *Store, log *slog.Logger, statsToken string) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		store:      store,
		limiter:    NewLimiter(30, time.Minute),
		log:        log,
		statsToken: statsToken,
	}
}

// Close stops the handler's rate limiter.
func (h *Handler) Close() {
	h.limiter.Stop()
}

type collectRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
	Locale   string `json:"locale"`
}

// Collect records one page view. It honors Do Not Track, drops crawler
// traffic and rate limits per hashed IP. The response is always 204 so the
// client script never needs to branch.
func (h *Handler) Collect(c echo.Context) error {
	userAgent := c.Request().UserAgent()
	if c.Request().Header.Get("DNT") == "1" || IsBot(userAgent) {
		return c.NoContent(http.StatusNoContent)
	}

	ipHash := HashIP(c.RealIP())
	if !h.limiter.Allow(ipHash) {
		return c.NoContent(http.StatusNoContent)
	}

	var req collectRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" || len(req.Path) > 512 || !strings.HasPrefix(req.Path, "/") {
		return c.NoContent(http.StatusNoContent)
	}
	if len(req.Referrer) > 1024 {
		req.Referrer = req.Referrer[:1024]
	}

	lang, ok := i18n.Parse(req.Locale)
	if !ok {
		lang = i18n.Default
	}

	visit := Visit{
		VisitorID: VisitorID(c.RealIP(), userAgent),
		SessionID: h.sessionID(c),
		IPHash:    ipHash,
		Path:      req.Path,
		Referrer:  req.Referrer,
		Locale:    string(lang),
		Device:    DeviceClass(userAgent),
		Timestamp: time.Now().UTC(),
	}
	if err := h.store.RecordVisit(visit); err != nil {
		h.log.Error("record visit", "error", err, "path", visit.Path)
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats returns aggregated analytics for ?period=day|week|month|year.
func (h *Handler) Stats(c echo.Context) error {
	if h.statsToken != "" {
		auth := c.Request().Header.Get("Authorization")
		if auth != "Bearer "+h.statsToken {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
	}
	period := c.QueryParam("period")
	if period == "" {
		period = "month"
	}
	stats, err := h.store.GetStats(period)
	if err != nil {
		h.log.Error("load stats", "error", err, "period", period)
		return echo.NewHTTPError(http.StatusInternalServerError, "stats unavailable")
	}
	return c.JSON(http.StatusOK, stats)
}

// sessionID returns the visitor's session cookie, minting one when absent.
func (h *Handler) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   1800,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
