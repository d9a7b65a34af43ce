// Package views provides a default set of templates for staticpub sites.
// Sites wanting a custom look supply their own ViewFuncs instead; nothing in
// the generator depends on this package.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/staticpub"
)

//go:embed templates/*.html
var templateFS embed.FS

// New returns the default ViewFuncs rendered from the embedded templates.
func New(cfg staticpub.SiteConfig) staticpub.ViewFuncs {
	t := template.Must(template.New("").Funcs(template.FuncMap{
		"joinTags": staticpub.JoinTags,
		"readMins": readMins,
	}).ParseFS(templateFS, "templates/*.html"))

	page := func(name string, data any) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return t.ExecuteTemplate(w, name, data)
		})
	}

	return staticpub.ViewFuncs{
		Home: func(groups []staticpub.YearGroup) templ.Component {
			return page("home.html", homeData{Site: cfg, Groups: groups, JsonLD: template.JS(staticpub.WebsiteJsonLD(cfg))})
		},
		Post: func(post staticpub.Post, bodyHTML string) templ.Component {
			return page("post.html", postData{
				Site:   cfg,
				Post:   post,
				Body:   template.HTML(bodyHTML),
				JsonLD: template.JS(staticpub.BlogPostingJsonLD(post, cfg)),
			})
		},
		NotFound: func() templ.Component {
			return page("notfound.html", baseData{Site: cfg})
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return page("admin_login.html", adminLoginData{Site: cfg, ShowError: showError, Csrf: csrfToken})
		},
		AdminDashboard: func(refs []staticpub.PostRef, message string, csrfToken string) templ.Component {
			return page("admin_dashboard.html", adminDashboardData{Site: cfg, Refs: refs, Message: message, Csrf: csrfToken})
		},
		AdminForm: func(post staticpub.Post, csrfToken string) templ.Component {
			return page("admin_form.html", adminFormData{Site: cfg, Post: post, Csrf: csrfToken})
		},
	}
}

type baseData struct {
	Site staticpub.SiteConfig
}

type homeData struct {
	Site   staticpub.SiteConfig
	Groups []staticpub.YearGroup
	JsonLD template.JS
}

type postData struct {
	Site   staticpub.SiteConfig
	Post   staticpub.Post
	Body   template.HTML
	JsonLD template.JS
}

type adminLoginData struct {
	Site      staticpub.SiteConfig
	ShowError bool
	Csrf      string
}

type adminDashboardData struct {
	Site    staticpub.SiteConfig
	Refs    []staticpub.PostRef
	Message string
	Csrf    string
}

type adminFormData struct {
	Site staticpub.SiteConfig
	Post staticpub.Post
	Csrf string
}
