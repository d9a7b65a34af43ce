package staticpub

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Serve runs the preview server: pages are rendered live from the content
// tree on every request, so edits show up on refresh without a rebuild.
// When ADMIN_PASSWORD and SESSION_SECRET are set the web editor is mounted
// under /admin/.
func (a *App) Serve() error {
	if err := a.init(); err != nil {
		return err
	}

	adminEnabled := a.Config.AdminPassword != "" && a.Config.SessionSecret != ""
	if !adminEnabled {
		// The session and CSRF middleware still need a key; a throwaway one
		// is fine when the editor is off.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		a.Config.SessionSecret = hex.EncodeToString(buf)
		a.log.Warn("admin editor disabled; set ADMIN_PASSWORD and SESSION_SECRET to enable it")
	}

	a.setupMiddleware()
	a.setupRoutes(adminEnabled)

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.log.Info("serving", "addr", a.Config.Addr, "content", a.Config.ContentDir)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes(adminEnabled bool) {
	e := a.Echo

	e.HTTPErrorHandler = a.httpErrorHandler

	// Published assets come straight from the output tree; Publish keeps it
	// current as posts are viewed.
	e.Static("/blog", a.Config.OutputDir+"/blog")
	e.Static("/", a.Config.StaticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:id/", a.handlePost)

	if adminEnabled {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.GET("/admin/post/:id/", a.handleAdminPost)
		e.GET("/admin/new/", a.handleAdminNew)
		e.POST("/admin/save/", a.handleAdminSave)
		e.DELETE("/admin/post/:id/", a.handleAdminDelete)
	}
}

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) handleHome(c echo.Context) error {
	refs, err := a.Loader.Refs()
	if err != nil {
		return err
	}
	SortRefsByDate(refs)
	return Render(c, a.Views.Home(GroupRefsByYear(refs)))
}

func (a *App) handlePost(c echo.Context) error {
	id := c.Param("id")
	post, err := a.Loader.Post(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if _, err := a.Publisher.Publish(id); err != nil {
		return err
	}
	var body bytes.Buffer
	rewrite := func(dest string) string { return AssetURL(id, dest) }
	if err := a.md.Render(&body, []byte(post.Source), rewrite); err != nil {
		return err
	}
	return Render(c, a.Views.Post(post, body.String()))
}

func (a *App) handleSitemap(c echo.Context) error {
	refs, err := a.Loader.Refs()
	if err != nil {
		return err
	}
	SortRefsByDate(refs)
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), a.Config, refs)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.loadSortedPosts()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteFeed(c.Response(), a.Config, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleRobots(c echo.Context) error {
	content := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, content)
}

// loadSortedPosts resolves every listed post in date-descending order.
func (a *App) loadSortedPosts() ([]Post, error) {
	refs, err := a.Loader.Refs()
	if err != nil {
		return nil, err
	}
	SortRefsByDate(refs)
	posts := make([]Post, 0, len(refs))
	for _, r := range refs {
		post, err := a.Loader.Post(r.ID)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, ErrNotFound) {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error("server error", "err", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
