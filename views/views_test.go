package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	vedicweb "github.com/vedicsages/vedicweb"
	"github.com/vedicsages/vedicweb/content"
	"github.com/vedicsages/vedicweb/i18n"
	"github.com/vedicsages/vedicweb/images"
)

func testPageData(t *testing.T, lang i18n.Language) vedicweb.PageData {
	t.Helper()
	dict := i18n.MustLoad()
	return vedicweb.PageData{
		Site: vedicweb.SiteConfig{
			Name:           "Vedic Sages",
			URL:            "https://example.com",
			ContactPhone:   "+919876543210",
			WhatsAppNumber: "919876543210",
		},
		Lang: lang,
		T:    dict.Func(lang),
		Path: "/",
		Meta: vedicweb.PageMeta{Title: "Vedic Sages", OGType: "website"},
	}
}

func mustRender(t *testing.T, cmp templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestHomeRendersLocalizedShell(t *testing.T) {
	v := Default(images.NewResolver(images.CDN{ProjectID: "p1", Dataset: "production"}))
	p := testPageData(t, i18n.English)

	html := mustRender(t, v.Home(p, []content.RecentPost{
		{Title: "Muhurta Basics", Slug: content.Slug{Current: "muhurta-basics"}},
	}, content.SamplePanchang(time.Now()), true))

	for _, want := range []string{
		`<html lang="en">`,
		"Decode Your Cosmic Destiny",
		`href="/blog/muhurta-basics/"`,
		"Sample data shown",
		"lang-switcher",
		`?lang=hi`,
		"wa.me/919876543210",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("home HTML missing %q", want)
		}
	}
}

func TestHomeUsesHindiTranslations(t *testing.T) {
	v := Default(images.NewResolver(images.CDN{ProjectID: "p1", Dataset: "production"}))
	p := testPageData(t, i18n.Hindi)

	html := mustRender(t, v.Home(p, nil, content.Panchang{}, false))
	if !strings.Contains(html, `<html lang="hi">`) {
		t.Error("expected hi lang attribute")
	}
	if strings.Contains(html, "Sample data shown") {
		t.Error("sample notice should not render without the sample flag")
	}
}

func TestBlogIndexEscapesTitles(t *testing.T) {
	v := Default(images.NewResolver(images.CDN{ProjectID: "p1", Dataset: "production"}))
	p := testPageData(t, i18n.English)

	posts := []content.Post{{
		Title: `Mars <script>alert("x")</script>`,
		Slug:  content.Slug{Current: "mars"},
	}}
	html := mustRender(t, v.BlogIndex(p, posts, ""))
	if strings.Contains(html, "<script>alert") {
		t.Error("post title was not escaped")
	}
	if !strings.Contains(html, "?category=remedies") {
		t.Error("expected category filter links")
	}
}

func TestPostRendersBodyAndJSONLD(t *testing.T) {
	v := Default(images.NewResolver(images.CDN{ProjectID: "p1", Dataset: "production"}))
	p := testPageData(t, i18n.English)

	post := content.Post{
		Title:       "Saturn Transits",
		Slug:        content.Slug{Current: "saturn-transits"},
		Excerpt:     "What Shani's movement means.",
		PublishedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Body: []content.Block{
			{Type: "block", Style: "h2", Children: []content.Span{{Type: "span", Text: "Overview"}}},
		},
	}
	html := mustRender(t, v.Post(p, post, nil))
	for _, want := range []string{"<h2>Overview</h2>", "BlogPosting", "Saturn Transits", `datetime="2025-03-01"`} {
		if !strings.Contains(html, want) {
			t.Errorf("post HTML missing %q", want)
		}
	}
}

func TestContactCarriesCSRFToken(t *testing.T) {
	v := Default(images.NewResolver(images.CDN{ProjectID: "p1", Dataset: "production"}))
	p := testPageData(t, i18n.English)
	p.CSRFToken = "tok-123"

	html := mustRender(t, v.Contact(p))
	for _, want := range []string{
		`<meta name="csrf-token" content="tok-123"/>`,
		`<input type="hidden" name="_csrf" value="tok-123"/>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("contact HTML missing %q", want)
		}
	}
}

func TestRecommendationsListsOptions(t *testing.T) {
	v := Default(images.NewResolver(images.CDN{ProjectID: "p1", Dataset: "production"}))
	p := testPageData(t, i18n.English)

	html := mustRender(t, v.Recommendations(p, []string{"Mesha"}, []string{"Ashwini"}, []string{"Aries"}))
	for _, want := range []string{`<option value="Mesha">`, `<option value="Ashwini">`, `<option value="Aries">`} {
		if !strings.Contains(html, want) {
			t.Errorf("recommendations HTML missing %q", want)
		}
	}
}
