// Package views provides the default templ components for a vedicweb site.
// Applications can use Default() as-is or replace individual ViewFuncs
// entries with their own components.
package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	vedicweb "github.com/vedicsages/vedicweb"
	"github.com/vedicsages/vedicweb/i18n"
)

// navItem pairs a route with its translation key.
type navItem struct {
	href string
	key  string
}

var navItems = []navItem{
	{"/", "home"},
	{"/services/", "services"},
	{"/blog/", "blog"},
	{"/panchang/", "panchang"},
	{"/recommendations/", "recommendations"},
	{"/contact/", "contact"},
}

// page wraps a body writer in the site shell: head, nav, footer, and the
// floating WhatsApp button.
func page(p vedicweb.PageData, body func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeHead(&buf, p)
		writeNav(&buf, p)
		buf.WriteString(`<main class="site-main">`)
		body(&buf)
		buf.WriteString(`</main>`)
		writeFooter(&buf, p)
		buf.WriteString(`</body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer, p vedicweb.PageData) {
	title := p.Meta.Title
	if title == "" {
		title = p.Site.Name
	}
	buf.WriteString(`<!DOCTYPE html><html lang="` + string(p.Lang) + `"><head>`)
	buf.WriteString(`<meta charset="utf-8"/>`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	buf.WriteString(`<title>` + html.EscapeString(title) + `</title>`)
	if p.Meta.Description != "" {
		buf.WriteString(`<meta name="description" content="` + html.EscapeString(p.Meta.Description) + `"/>`)
	}
	if p.Meta.URL != "" {
		buf.WriteString(`<link rel="canonical" href="` + html.EscapeString(p.Meta.URL) + `"/>`)
		buf.WriteString(`<meta property="og:url" content="` + html.EscapeString(p.Meta.URL) + `"/>`)
	}
	buf.WriteString(`<meta property="og:title" content="` + html.EscapeString(title) + `"/>`)
	if p.Meta.Description != "" {
		buf.WriteString(`<meta property="og:description" content="` + html.EscapeString(p.Meta.Description) + `"/>`)
	}
	buf.WriteString(`<meta property="og:type" content="` + html.EscapeString(p.Meta.OGType) + `"/>`)
	if p.Meta.Image != "" {
		buf.WriteString(`<meta property="og:image" content="` + html.EscapeString(p.Meta.Image) + `"/>`)
	}
	if p.CSRFToken != "" {
		buf.WriteString(`<meta name="csrf-token" content="` + html.EscapeString(p.CSRFToken) + `"/>`)
	}
	buf.WriteString(`<link rel="manifest" href="/site.webmanifest"/>`)
	buf.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
	buf.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
	buf.WriteString(`<script type="application/ld+json">` + vedicweb.WebsiteJsonLD(p.Site) + `</script>`)
	buf.WriteString(`<script src="/public/analytics.js" defer></script>`)
	buf.WriteString(`</head><body>`)
}

func writeNav(buf *bytes.Buffer, p vedicweb.PageData) {
	buf.WriteString(`<header class="site-header"><nav class="site-nav">`)
	buf.WriteString(`<a class="brand" href="/">` + html.EscapeString(p.Site.Name) + `</a>`)
	buf.WriteString(`<ul class="nav-links">`)
	for _, item := range navItems {
		class := ""
		if item.href == p.Path {
			class = ` class="active"`
		}
		buf.WriteString(`<li><a` + class + ` href="` + item.href + `">` +
			html.EscapeString(p.T(item.key)) + `</a></li>`)
	}
	buf.WriteString(`</ul>`)
	writeLanguageSwitcher(buf, p)
	buf.WriteString(`</nav></header>`)
}

// writeLanguageSwitcher renders one link per supported language, switching
// via the ?lang= query parameter on the current path.
func writeLanguageSwitcher(buf *bytes.Buffer, p vedicweb.PageData) {
	buf.WriteString(`<ul class="lang-switcher">`)
	for _, lang := range i18n.Languages {
		class := ""
		if lang == p.Lang {
			class = ` class="active"`
		}
		buf.WriteString(`<li><a` + class + ` href="` + p.Path + `?lang=` + string(lang) + `">` +
			languageLabel(lang) + `</a></li>`)
	}
	buf.WriteString(`</ul>`)
}

func languageLabel(lang i18n.Language) string {
	switch lang {
	case i18n.Hindi:
		return "हिंदी"
	case i18n.Kannada:
		return "ಕನ್ನಡ"
	default:
		return "English"
	}
}

func writeFooter(buf *bytes.Buffer, p vedicweb.PageData) {
	buf.WriteString(`<footer class="site-footer"><div class="footer-contact">`)
	if p.Site.ContactPhone != "" {
		buf.WriteString(`<a href="` + vedicweb.TelLink(p.Site.ContactPhone) + `">` +
			html.EscapeString(p.Site.ContactPhone) + `</a>`)
	}
	if p.Site.ContactEmail != "" {
		buf.WriteString(`<a href="` + vedicweb.MailtoLink(p.Site.ContactEmail, "") + `">` +
			html.EscapeString(p.Site.ContactEmail) + `</a>`)
	}
	if p.Site.TelegramHandle != "" {
		buf.WriteString(`<a href="` + vedicweb.TelegramLink(p.Site.TelegramHandle) + `" target="_blank" rel="noopener noreferrer">Telegram</a>`)
	}
	buf.WriteString(`</div><p class="footer-note">` + html.EscapeString(p.T("footerTagline")) + `</p></footer>`)
	if p.Site.WhatsAppNumber != "" {
		buf.WriteString(`<a class="whatsapp-float" aria-label="WhatsApp" target="_blank" rel="noopener noreferrer" href="` +
			html.EscapeString(vedicweb.WhatsAppLink(p.Site.WhatsAppNumber, p.T("whatsappGreeting"))) + `">WhatsApp</a>`)
	}
}
