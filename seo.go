package vedicweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " +
		a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

func (a *App) handleManifest(c echo.Context) error {
	m := webManifest{
		Name:            a.Config.Name,
		ShortName:       a.Config.Name,
		Description:     a.Config.Description,
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#fdf6e3",
		ThemeColor:      "#7c2d12",
		Icons: []manifestIcon{
			{Src: "/public/icon-192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/public/icon-512.png", Sizes: "512x512", Type: "image/png"},
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/manifest+json")
	return c.JSON(http.StatusOK, m)
}
