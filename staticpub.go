// Package staticpub is a file-based blog generator built with Go, Echo, and
// templ. Post sources are per-slug folders of Markdown plus assets; staticpub
// parses frontmatter, computes excerpts and reading times, publishes assets,
// and renders a complete static site with an RSS feed and sitemap. A local
// serve mode previews the output and offers a password-protected editor that
// writes back into the content tree.
//
// Users provide their own templ components via the ViewFuncs struct; the
// views package ships workable defaults.
package staticpub

import (
	"log"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	charmlog "github.com/charmbracelet/log"
	"github.com/eringen/staticpub/markdown"
)

// ViewFuncs holds user-provided templ components the generator calls when
// rendering pages. This is the inversion-of-control mechanism that lets
// users own and customize all templates.
type ViewFuncs struct {
	Home           func(groups []YearGroup) templ.Component
	Post           func(post Post, bodyHTML string) templ.Component
	NotFound       func() templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(refs []PostRef, message string, csrfToken string) templ.Component
	AdminForm      func(post Post, csrfToken string) templ.Component
}

// App wires the content pipeline together: source store, loader, asset
// publisher, Markdown renderer, site builder, and the optional preview
// server.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Store     *SourceStore
	Loader    *Loader
	Publisher *Publisher
	Views     ViewFuncs

	cache        Cache
	md           *markdown.Renderer
	log          *charmlog.Logger
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	initialized  bool
}

// New creates a staticpub App with the given configuration and view
// functions. The pipeline itself is initialized lazily by Build or Serve so
// options can still swap the cache.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// init resolves the cache and constructs the pipeline components. Safe to
// call more than once.
func (a *App) init() error {
	if a.initialized {
		return nil
	}
	if a.log == nil {
		a.log = charmlog.Default()
	}
	if a.cache == nil {
		if a.Config.CachePath != "" {
			cache, err := NewBuildCache(a.Config.CachePath)
			if err != nil {
				return err
			}
			a.cache = cache
		} else {
			a.cache = NewMemoryCache()
		}
	}
	a.Store = NewSourceStore(a.Config.ContentDir)
	a.Loader = NewLoader(a.Store, a.cache, a.Config, a.log)
	a.Publisher = NewPublisher(a.Store, a.Config.OutputDir)
	a.md = markdown.New(markdown.WithHighlightStyle(a.Config.HighlightStyle))
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.initialized = true
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("staticpub: required environment variable %s is not set", key)
	}
	return v
}
