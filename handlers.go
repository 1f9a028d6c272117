package vedicweb

import (
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/vedicsages/vedicweb/content"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()

	// Recent posts and the panchang are independent fetches.
	var (
		wg          sync.WaitGroup
		recent      []content.RecentPost
		pn          content.Panchang
		usingSample bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		recent = a.Content.RecentPostsOrEmpty(ctx)
	}()
	go func() {
		defer wg.Done()
		pn, usingSample = a.Content.TodayPanchang(ctx)
	}()
	wg.Wait()

	p := a.pageData(c, PageMeta{
		Title:       a.Config.Name,
		Description: a.Config.Description,
	})
	return Render(c, a.Views.Home(p, recent, pn, usingSample))
}

func (a *App) handleServices(c echo.Context) error {
	p := a.pageData(c, PageMeta{Title: a.Config.Name + " | Services"})
	return Render(c, a.Views.Services(p))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")

	var posts []content.Post
	if content.ValidCategory(category) {
		posts = a.Content.PostsByCategoryOrEmpty(ctx, category)
	} else {
		category = ""
		posts = a.Content.PostsOrEmpty(ctx)
	}

	p := a.pageData(c, PageMeta{Title: a.Config.Name + " | Blog"})
	return Render(c, a.Views.BlogIndex(p, posts, category))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	post := a.Content.PostBySlugOrNil(ctx, slug)
	if post == nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.pageData(c, PageMeta{Title: "Not Found"})))
	}
	recent := a.Content.RecentPostsOrEmpty(ctx)

	p := a.pageData(c, PageMeta{
		Title:       post.Title + " | " + a.Config.Name,
		Description: post.Excerpt,
		URL:         BuildURL(a.Config.URL, "blog", post.Slug.Current),
		OGType:      "article",
		Image:       a.Images.FeaturedPostURL(post.ImageValue(), post.ExternalImageURL),
	})
	return Render(c, a.Views.Post(p, *post, recent))
}

func (a *App) handleContact(c echo.Context) error {
	p := a.pageData(c, PageMeta{Title: a.Config.Name + " | Contact"})
	return Render(c, a.Views.Contact(p))
}

func (a *App) handleRecommendations(c echo.Context) error {
	p := a.pageData(c, PageMeta{Title: a.Config.Name + " | Recommendations"})
	return Render(c, a.Views.Recommendations(p, a.Engine.Raashis(), a.Engine.Nakshatras(), a.Engine.WesternSigns()))
}

func (a *App) handlePanchang(c echo.Context) error {
	pn, usingSample := a.Content.TodayPanchang(c.Request().Context())
	p := a.pageData(c, PageMeta{Title: a.Config.Name + " | Panchang"})
	return Render(c, a.Views.Panchang(p, pn, usingSample))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error("server error", "error", err, "path", c.Request().URL.Path)
	}

	// API clients get echo's JSON error shape, pages get rendered views.
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	if code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.pageData(c, PageMeta{Title: "Not Found"})))
		return
	}
	if code >= 500 {
		_ = RenderStatus(c, code, a.Views.ServerError(a.pageData(c, PageMeta{Title: "Something went wrong"})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
