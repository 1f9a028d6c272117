package vedicweb

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// staticPages lists the site's fixed routes included in the sitemap.
var staticPages = []string{"", "services", "blog", "contact", "recommendations", "panchang"}

func (a *App) handleSitemap(c echo.Context) error {
	base := a.Config.URL

	urls := make([]sitemapURL, 0, len(staticPages))
	for _, page := range staticPages {
		if page == "" {
			urls = append(urls, sitemapURL{Loc: BuildURL(base)})
			continue
		}
		urls = append(urls, sitemapURL{Loc: BuildURL(base, page)})
	}
	for _, slug := range a.Content.PostSlugsOrEmpty(c.Request().Context()) {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "blog", slug)})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
