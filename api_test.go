package vedicweb

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedicsages/vedicweb/analytics"
	"github.com/vedicsages/vedicweb/content"
	"github.com/vedicsages/vedicweb/i18n"
	"github.com/vedicsages/vedicweb/images"
	"github.com/vedicsages/vedicweb/recommend"
)

// fakeContent serves canned query results keyed by a substring of the GROQ
// query, standing in for the hosted content API.
func fakeContent(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		for needle, result := range responses {
			if strings.Contains(query, needle) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"result":` + result + `}`))
				return
			}
		}
		w.Write([]byte(`{"result":null}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// failingContent simulates a content store outage: every query fails.
func failingContent(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, backendURL string) *App {
	t.Helper()
	cfg := SiteConfig{
		Name:             "Vedic Sages",
		URL:              "https://example.com",
		ContentProjectID: "p1",
		SessionSecret:    "secret",
		WhatsAppNumber:   "919876543210",
	}
	cfg.setDefaults()

	client := content.NewClient(content.Config{
		ProjectID: "p1",
		Dataset:   "production",
		BaseURL:   backendURL,
	})

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		log:     slog.Default(),
		Content: content.NewService(client, content.WithRetryPolicy(content.RetryPolicy{MaxAttempts: 1})),
		Images:  images.NewResolver(images.CDN{ProjectID: "p1", Dataset: "production"}),
		Dict:    i18n.MustLoad(),
		Engine:  recommend.MustNew(),
	}
	a.contactLimiter = analytics.NewLimiter(2, time.Minute)
	t.Cleanup(a.contactLimiter.Stop)
	return a
}

func doJSON(t *testing.T, a *App, method, target, body string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	err := handler(c)
	if err != nil {
		a.Echo.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAPIPostReturnsPostAndRecent(t *testing.T) {
	srv := fakeContent(t, map[string]string{
		`slug.current == $slug`: `{"_id":"post-1","title":"Saturn Transits","slug":{"current":"saturn-transits"},"excerpt":"Shani","category":"vedic-knowledge","publishedAt":"2025-03-01T00:00:00Z"}`,
		`[0..4]`:                `[{"_id":"post-2","title":"Navagraha","slug":{"current":"navagraha"},"category":"remedies"}]`,
	})
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodGet, "/api/blog-post?slug=saturn-transits", "", a.handleAPIPost)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Post        apiPost              `json:"post"`
		RecentPosts []content.RecentPost `json:"recentPosts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Saturn Transits", body.Post.Title)
	assert.Equal(t, "saturn-transits", body.Post.Slug)
	require.Len(t, body.RecentPosts, 1)
	assert.Equal(t, "Navagraha", body.RecentPosts[0].Title)
}

func TestAPIPostRequiresSlug(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodGet, "/api/blog-post", "", a.handleAPIPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIPostUnknownSlugReturnsNullPost(t *testing.T) {
	srv := fakeContent(t, map[string]string{
		`[0..4]`: `[{"_id":"post-2","title":"Navagraha","slug":{"current":"navagraha"}}]`,
	})
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodGet, "/api/blog-post?slug=nope", "", a.handleAPIPost)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Post        *apiPost             `json:"post"`
		RecentPosts []content.RecentPost `json:"recentPosts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Post)
	require.Len(t, body.RecentPosts, 1)
	assert.Equal(t, "Navagraha", body.RecentPosts[0].Title)
}

func TestAPIPostFailsClosedOnStoreError(t *testing.T) {
	srv := failingContent(t)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodGet, "/api/blog-post?slug=saturn-transits", "", a.handleAPIPost)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unable to load this article right now.")
}

func TestAPIPostsAlwaysReturnsArray(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodGet, "/api/blog-posts", "", a.handleAPIPosts)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"posts":[]}`, rec.Body.String())
}

func TestAPIPostsFailClosedOnStoreError(t *testing.T) {
	srv := failingContent(t)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodGet, "/api/blog-posts", "", a.handleAPIPosts)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unable to load blog posts right now.")
}

func TestAPIPostsRejectsUnknownCategory(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodGet, "/api/blog-posts?category=astrology", "", a.handleAPIPosts)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIPanchangFallsBackToSample(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodGet, "/api/panchang", "", a.handleAPIPanchang)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Panchang    content.Panchang `json:"panchang"`
		UsingSample bool             `json:"usingSample"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.UsingSample)
	assert.NotEmpty(t, body.Panchang.Tithi)
}

func TestAPIRecommendationsVedic(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodPost, "/api/recommendations",
		`{"mode":"vedic","nakshatra":"Ashwini","raashi":"Mesha"}`, a.handleAPIRecommendations)
	require.Equal(t, http.StatusOK, rec.Code)

	var result recommend.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Mesha", result.Raashi)
	assert.NotEmpty(t, result.Syllables)
}

func TestAPIRecommendationsRejectsUnknownRaashi(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodPost, "/api/recommendations",
		`{"mode":"vedic","raashi":"Pluto"}`, a.handleAPIRecommendations)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIContactBuildsWhatsAppLink(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodPost, "/api/contact",
		`{"name":"Asha","message":"I would like a reading"}`, a.handleAPIContact)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["whatsappUrl"], "https://wa.me/919876543210?text=")
	assert.Contains(t, body["whatsappUrl"], "Asha")
}

func TestAPIContactRateLimits(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	payload := `{"name":"Asha","message":"hello"}`
	for i := 0; i < 2; i++ {
		rec := doJSON(t, a, http.MethodPost, "/api/contact", payload, a.handleAPIContact)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := doJSON(t, a, http.MethodPost, "/api/contact", payload, a.handleAPIContact)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAPIContactEnforcesCSRF(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)
	a.setupMiddleware()
	a.setupRoutes()

	payload := `{"name":"Asha","message":"hello"}`

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-CSRF-Token", "tok-123")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "tok-123"})
	rec = httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The rest of the API stays token-exempt.
	req = httptest.NewRequest(http.MethodPost, "/api/recommendations",
		strings.NewReader(`{"mode":"vedic","nakshatra":"Ashwini","raashi":"Mesha"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIContactValidatesInput(t *testing.T) {
	srv := fakeContent(t, nil)
	a := newTestApp(t, srv.URL)

	rec := doJSON(t, a, http.MethodPost, "/api/contact", `{"name":"","message":""}`, a.handleAPIContact)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreferredLanguage(t *testing.T) {
	assert.Equal(t, i18n.Hindi, preferredLanguage("hi-IN,hi;q=0.9,en;q=0.8"))
	assert.Equal(t, i18n.Kannada, preferredLanguage("kn"))
	assert.Equal(t, i18n.English, preferredLanguage("fr-FR,de;q=0.7"))
	assert.Equal(t, i18n.English, preferredLanguage(""))
}
