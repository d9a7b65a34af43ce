package staticpub

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	post, err := a.Loader.Post(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminForm(post, CsrfToken(c)))
}

func (a *App) handleAdminNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post := Post{Date: time.Now().Format("2006-01-02"), Draft: true}
	return Render(c, a.Views.AdminForm(post, CsrfToken(c)))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		id = Slugify(title)
	}
	if id == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	tags := strings.Split(c.FormValue("tags"), ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	fm := Frontmatter{
		Title: title,
		Date:  date,
		Tags:  FilterEmpty(tags),
		Draft: c.FormValue("published") == "",
	}
	// Custom frontmatter keys set outside the editor survive a save.
	if existing, err := a.Loader.Post(id); err == nil {
		fm.Custom = existing.Custom
	}
	if err := a.writeSource(id, fm, c.FormValue("content")); err != nil {
		return err
	}
	if err := a.afterMutation(c); err != nil {
		return err
	}
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if !a.Store.Exists(id) {
		return c.NoContent(http.StatusNotFound)
	}
	if err := os.RemoveAll(filepath.Join(a.Store.Root(), id)); err != nil {
		return err
	}
	if err := a.afterMutation(c); err != nil {
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

// afterMutation runs after any content edit: the cache is cleared and the
// static output regenerated, so the published tree Echo serves never lags
// behind the content tree.
func (a *App) afterMutation(c echo.Context) error {
	if err := a.cache.Invalidate(); err != nil {
		return err
	}
	return a.Build(c.Request().Context())
}

// The dashboard lists every post, drafts included; hiding an unpublished
// post here would make it uneditable.
func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	refs, err := a.Loader.AllRefs()
	if err != nil {
		return err
	}
	SortRefsByDate(refs)
	return Render(c, a.Views.AdminDashboard(refs, msg, CsrfToken(c)))
}

// writeSource marshals frontmatter and body into the post's index.md,
// creating the source folder when needed. Assets already in the folder are
// untouched.
func (a *App) writeSource(id string, fm Frontmatter, body string) error {
	dir := filepath.Join(a.Store.Root(), id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{ID: id, Op: "create source dir", Err: err}
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(head)
	buf.WriteString("---\n\n")
	buf.WriteString(strings.ReplaceAll(body, "\r\n", "\n"))
	if !strings.HasSuffix(buf.String(), "\n") {
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(dir, documentName), buf.Bytes(), 0o644); err != nil {
		return &IOError{ID: id, Op: "write " + documentName, Err: err}
	}
	return nil
}
