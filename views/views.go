package views

import (
	"bytes"
	"html"

	"github.com/a-h/templ"

	vedicweb "github.com/vedicsages/vedicweb"
	"github.com/vedicsages/vedicweb/content"
	"github.com/vedicsages/vedicweb/images"
	"github.com/vedicsages/vedicweb/portabletext"
)

// Default returns the stock site templates wired to the given image resolver.
func Default(resolver *images.Resolver) vedicweb.ViewFuncs {
	v := &defaultViews{images: resolver}
	return vedicweb.ViewFuncs{
		Home:            v.home,
		Services:        v.services,
		BlogIndex:       v.blogIndex,
		Post:            v.post,
		Contact:         v.contact,
		Recommendations: v.recommendations,
		Panchang:        v.panchang,
		NotFound:        v.notFound,
		ServerError:     v.serverError,
	}
}

type defaultViews struct {
	images *images.Resolver
}

// blockImageURL resolves an embedded post-body image block, preferring the
// uploaded asset over an external URL.
func blockImageURL(resolver *images.Resolver) portabletext.ImageURLFunc {
	return func(b content.Block) string {
		if b.Asset != nil && b.Asset.Ref != "" {
			return resolver.InlineURL(map[string]any{
				"asset": map[string]any{"_ref": b.Asset.Ref},
			})
		}
		return images.NormalizeExternalURL(b.ExternalURL, 1200)
	}
}

func (v *defaultViews) home(p vedicweb.PageData, recent []content.RecentPost, pn content.Panchang, usingSample bool) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="hero">`)
		buf.WriteString(`<h1>` + html.EscapeString(p.T("heroTitle")) + `</h1>`)
		buf.WriteString(`<p class="hero-subtitle">` + html.EscapeString(p.T("heroSubtitle")) + `</p>`)
		buf.WriteString(`<p class="hero-description">` + html.EscapeString(p.T("heroDescription")) + `</p>`)
		buf.WriteString(`<div class="hero-actions">`)
		buf.WriteString(`<a class="btn btn-primary" href="/contact/">` + html.EscapeString(p.T("getReading")) + `</a>`)
		buf.WriteString(`<a class="btn" href="/services/">` + html.EscapeString(p.T("exploreServices")) + `</a>`)
		buf.WriteString(`</div></section>`)

		writeServiceCards(buf, p)
		writePanchangCard(buf, p, pn, usingSample)

		buf.WriteString(`<section class="recent-posts"><h2>` + html.EscapeString(p.T("recentPosts")) + `</h2><ul>`)
		for _, post := range recent {
			buf.WriteString(`<li><a href="/blog/` + html.EscapeString(post.Slug.Current) + `/">` +
				html.EscapeString(post.Title) + `</a></li>`)
		}
		buf.WriteString(`</ul></section>`)

		writeCTA(buf, p)
	})
}

// service cards share their translation keys between the home preview and
// the services page.
var serviceKeys = [][2]string{
	{"nameSuggestion", "nameSuggestionDesc"},
	{"luckyNumber", "luckyNumberDesc"},
	{"luckyColor", "luckyColorDesc"},
	{"gemstones", "gemstonesDesc"},
	{"birthChartAnalysis", "birthChartAnalysisDesc"},
}

func writeServiceCards(buf *bytes.Buffer, p vedicweb.PageData) {
	buf.WriteString(`<section class="services"><h2>` + html.EscapeString(p.T("servicesTitle")) + `</h2>`)
	buf.WriteString(`<p>` + html.EscapeString(p.T("servicesSubtitle")) + `</p><div class="service-grid">`)
	for _, keys := range serviceKeys {
		buf.WriteString(`<article class="service-card"><h3>` + html.EscapeString(p.T(keys[0])) + `</h3>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T(keys[1])) + `</p></article>`)
	}
	buf.WriteString(`</div></section>`)
}

func writeCTA(buf *bytes.Buffer, p vedicweb.PageData) {
	buf.WriteString(`<section class="cta"><h2>` + html.EscapeString(p.T("ctaTitle")) + `</h2>`)
	buf.WriteString(`<p>` + html.EscapeString(p.T("ctaDescription")) + `</p>`)
	buf.WriteString(`<a class="btn btn-primary" href="/contact/">` + html.EscapeString(p.T("bookConsultation")) + `</a>`)
	if p.Site.ContactPhone != "" {
		buf.WriteString(`<a class="btn" href="` + vedicweb.TelLink(p.Site.ContactPhone) + `">` +
			html.EscapeString(p.T("callExpert")) + `</a>`)
	}
	buf.WriteString(`</section>`)
}

func (v *defaultViews) services(p vedicweb.PageData) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>` + html.EscapeString(p.T("servicesPageTitle")) + `</h1>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T("servicesPageSubtitle")) + `</p>`)
		writeServiceCards(buf, p)
		writeCTA(buf, p)
	})
}

func (v *defaultViews) blogIndex(p vedicweb.PageData, posts []content.Post, activeCategory string) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>` + html.EscapeString(p.T("blogTitle")) + `</h1>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T("blogSubtitle")) + `</p>`)

		buf.WriteString(`<nav class="category-filter"><a`)
		if activeCategory == "" {
			buf.WriteString(` class="active"`)
		}
		buf.WriteString(` href="/blog/">` + html.EscapeString(p.T("allCategories")) + `</a>`)
		for _, cat := range content.Categories {
			buf.WriteString(`<a`)
			if cat == activeCategory {
				buf.WriteString(` class="active"`)
			}
			buf.WriteString(` href="/blog/?category=` + cat + `">` + html.EscapeString(categoryLabel(cat)) + `</a>`)
		}
		buf.WriteString(`</nav>`)

		if len(posts) == 0 {
			buf.WriteString(`<p class="empty">` + html.EscapeString(p.T("noPosts")) + `</p>`)
			return
		}
		buf.WriteString(`<div class="post-grid">`)
		for _, post := range posts {
			writePostCard(buf, p, v.images, post)
		}
		buf.WriteString(`</div>`)
	})
}

func writePostCard(buf *bytes.Buffer, p vedicweb.PageData, resolver *images.Resolver, post content.Post) {
	href := `/blog/` + html.EscapeString(post.Slug.Current) + `/`
	buf.WriteString(`<article class="post-card">`)
	if src := resolver.CardPostURL(post.ImageValue(), post.ExternalImageURL); src != "" {
		alt := images.Alt(post.ImageValue(), post.Title)
		buf.WriteString(`<a href="` + href + `"><img loading="lazy" src="` + html.EscapeString(src) +
			`" alt="` + html.EscapeString(alt) + `"/></a>`)
	}
	buf.WriteString(`<h3><a href="` + href + `">` + html.EscapeString(post.Title) + `</a></h3>`)
	if post.Excerpt != "" {
		buf.WriteString(`<p>` + html.EscapeString(post.Excerpt) + `</p>`)
	}
	buf.WriteString(`<a class="read-more" href="` + href + `">` + html.EscapeString(p.T("readMore")) + `</a>`)
	buf.WriteString(`</article>`)
}

// categoryLabel prettifies a category slug for display.
func categoryLabel(cat string) string {
	out := make([]byte, 0, len(cat))
	upper := true
	for i := 0; i < len(cat); i++ {
		c := cat[i]
		if c == '-' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

func (v *defaultViews) post(p vedicweb.PageData, post content.Post, recent []content.RecentPost) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<script type="application/ld+json">` + vedicweb.BlogPostingJsonLD(post, p.Site) + `</script>`)
		buf.WriteString(`<article class="post">`)
		buf.WriteString(`<a class="back-link" href="/blog/">` + html.EscapeString(p.T("backToBlog")) + `</a>`)
		buf.WriteString(`<h1>` + html.EscapeString(post.Title) + `</h1>`)
		if !post.PublishedAt.IsZero() {
			buf.WriteString(`<time datetime="` + post.PublishedAt.Format("2006-01-02") + `">` +
				post.PublishedAt.Format("January 2, 2006") + `</time>`)
		}
		if src := v.images.FeaturedPostURL(post.ImageValue(), post.ExternalImageURL); src != "" {
			alt := images.Alt(post.ImageValue(), post.Title)
			buf.WriteString(`<img class="featured" src="` + html.EscapeString(src) +
				`" alt="` + html.EscapeString(alt) + `"/>`)
		}
		buf.WriteString(`<div class="post-body">`)
		buf.WriteString(portabletext.HTML(post.Body, blockImageURL(v.images)))
		buf.WriteString(`</div></article>`)

		if len(recent) > 0 {
			buf.WriteString(`<aside class="recent-posts"><h2>` + html.EscapeString(p.T("recentPosts")) + `</h2><ul>`)
			for _, r := range recent {
				if r.Slug.Current == post.Slug.Current {
					continue
				}
				buf.WriteString(`<li><a href="/blog/` + html.EscapeString(r.Slug.Current) + `/">` +
					html.EscapeString(r.Title) + `</a></li>`)
			}
			buf.WriteString(`</ul></aside>`)
		}
	})
}

func (v *defaultViews) contact(p vedicweb.PageData) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>` + html.EscapeString(p.T("contactPageTitle")) + `</h1>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T("contactPageSubtitle")) + `</p>`)

		buf.WriteString(`<dl class="contact-channels">`)
		if p.Site.ContactPhone != "" {
			buf.WriteString(`<dt>` + html.EscapeString(p.T("phone")) + `</dt>`)
			buf.WriteString(`<dd><a href="` + vedicweb.TelLink(p.Site.ContactPhone) + `">` +
				html.EscapeString(p.Site.ContactPhone) + `</a></dd>`)
		}
		if p.Site.WhatsAppNumber != "" {
			buf.WriteString(`<dt>` + html.EscapeString(p.T("whatsapp")) + `</dt>`)
			buf.WriteString(`<dd><a href="` + html.EscapeString(vedicweb.WhatsAppLink(p.Site.WhatsAppNumber, p.T("whatsappGreeting"))) +
				`" target="_blank" rel="noopener noreferrer">WhatsApp</a></dd>`)
		}
		buf.WriteString(`</dl>`)

		buf.WriteString(`<section class="hours"><h2>` + html.EscapeString(p.T("operatingHours")) + `</h2>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T("mondayToSaturday")) + `</p>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T("sunday")) + `</p></section>`)

		buf.WriteString(`<form class="contact-form" data-endpoint="/api/contact">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(p.CSRFToken) + `"/>`)
		buf.WriteString(`<input name="name" required/>`)
		buf.WriteString(`<textarea name="message" required></textarea>`)
		buf.WriteString(`<button type="submit">` + html.EscapeString(p.T("sendMessage")) + `</button>`)
		buf.WriteString(`</form>`)
	})
}

func (v *defaultViews) recommendations(p vedicweb.PageData, raashis, nakshatras, western []string) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>` + html.EscapeString(p.T("recommendations")) + `</h1>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T("recommendationsHeroSubtitle")) + `</p>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T("recommendationsMethodHint")) + `</p>`)

		buf.WriteString(`<form class="recommend-form" data-endpoint="/api/recommendations">`)
		buf.WriteString(`<fieldset><legend>` + html.EscapeString(p.T("recommendationsVedicBirthChart")) + `</legend>`)
		writeSelect(buf, "nakshatra", p.T("recommendationsChooseNakshatra"), nakshatras)
		writeSelect(buf, "raashi", p.T("recommendationsChooseRaashi"), raashis)
		buf.WriteString(`</fieldset>`)
		buf.WriteString(`<fieldset><legend>` + html.EscapeString(p.T("recommendationsWesternZodiac")) + `</legend>`)
		writeSelect(buf, "zodiac", p.T("recommendationsSelectSunSign"), western)
		buf.WriteString(`</fieldset>`)
		buf.WriteString(`<button type="submit">` + html.EscapeString(p.T("generate")) + `</button>`)
		buf.WriteString(`</form>`)
		buf.WriteString(`<blockquote class="quote">` + html.EscapeString(p.T("recommendationsQuote")) + `</blockquote>`)
		writeCTA(buf, p)
	})
}

func writeSelect(buf *bytes.Buffer, name, label string, options []string) {
	buf.WriteString(`<label>` + html.EscapeString(label) + `<select name="` + name + `">`)
	buf.WriteString(`<option value=""></option>`)
	for _, opt := range options {
		buf.WriteString(`<option value="` + html.EscapeString(opt) + `">` + html.EscapeString(opt) + `</option>`)
	}
	buf.WriteString(`</select></label>`)
}

func (v *defaultViews) panchang(p vedicweb.PageData, pn content.Panchang, usingSample bool) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>` + html.EscapeString(p.T("panchangPageTitle")) + `</h1>`)
		buf.WriteString(`<p>` + html.EscapeString(p.T("panchangPageSubtitle")) + `</p>`)
		writePanchangCard(buf, p, pn, usingSample)
	})
}

func writePanchangCard(buf *bytes.Buffer, p vedicweb.PageData, pn content.Panchang, usingSample bool) {
	buf.WriteString(`<section class="panchang-card"><h2>` + html.EscapeString(p.T("panchangTitle")) + `</h2>`)
	if usingSample {
		buf.WriteString(`<p class="sample-notice">` + html.EscapeString(p.T("sampleDataNotice")) + `</p>`)
	}
	rows := [][2]string{
		{p.T("tithi"), pn.Tithi},
		{p.T("vara"), pn.Vara},
		{p.T("nakshatra"), pn.Nakshatra},
		{p.T("yoga"), pn.Yoga},
		{p.T("karana"), pn.Karana},
		{p.T("sunrise"), pn.Sunrise},
		{p.T("sunset"), pn.Sunset},
	}
	buf.WriteString(`<dl class="panchang-grid">`)
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		buf.WriteString(`<dt>` + html.EscapeString(row[0]) + `</dt><dd>` + html.EscapeString(row[1]) + `</dd>`)
	}
	buf.WriteString(`</dl>`)
	if pn.SpecialEvent != "" {
		buf.WriteString(`<p class="special-event">` + html.EscapeString(pn.SpecialEvent) + `</p>`)
	}
	buf.WriteString(`</section>`)
}

func (v *defaultViews) notFound(p vedicweb.PageData) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>404</h1><p>Page not found.</p><a href="/">` + html.EscapeString(p.T("home")) + `</a>`)
	})
}

func (v *defaultViews) serverError(p vedicweb.PageData) templ.Component {
	return page(p, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>500</h1><p>Something went wrong. Please try again later.</p>`)
	})
}
