package staticpub

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a staticpub site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags
	Author      string `yaml:"author"`      // Author name for JSON-LD

	ContentDir string `yaml:"content_dir"` // Post source folders (default "content")
	OutputDir  string `yaml:"output_dir"`  // Generated site (default "public")
	StaticDir  string `yaml:"static_dir"`  // User static assets copied verbatim (default "static")
	CachePath  string `yaml:"cache_path"`  // SQLite build cache; empty = in-memory

	WordsPerMinute int    `yaml:"words_per_minute"` // Reading speed (default 200)
	ExcerptLength  int    `yaml:"excerpt_length"`   // Excerpt budget in characters (default 280)
	SkipInvalid    bool   `yaml:"skip_invalid"`     // Skip malformed posts in listings instead of failing
	IncludeDrafts  bool   `yaml:"include_drafts"`   // Build posts marked draft: true
	HighlightStyle string `yaml:"highlight_style"`  // Chroma style for code fences (default "dracula")

	Addr          string `yaml:"addr"`          // Listen address for serve mode (default ":3000")
	CookieSecure  bool   `yaml:"cookie_secure"` // Set true when serving over HTTPS
	AdminPassword string `yaml:"-"`             // From ADMIN_PASSWORD; required for the admin editor
	SessionSecret string `yaml:"-"`             // From SESSION_SECRET; required for the admin editor
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.WordsPerMinute == 0 {
		c.WordsPerMinute = 200
	}
	if c.ExcerptLength == 0 {
		c.ExcerptLength = 280
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = "dracula"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
}

// LoadConfig reads a SiteConfig from the YAML file at path, then applies
// environment overrides and defaults. A missing file is fine; env vars and
// defaults carry the whole load in that case.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return SiteConfig{}, err
	}

	cfg.Name = EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = strings.TrimSuffix(EnvOr("SITE_URL", cfg.URL), "/")
	cfg.Description = EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Author = EnvOr("SITE_AUTHOR", cfg.Author)
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true") {
		cfg.CookieSecure = true
	}

	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCache replaces the default in-memory post cache.
func WithCache(c Cache) Option {
	return func(a *App) {
		a.cache = c
	}
}

// WithLogger replaces the default structured logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithCustomRoutes registers additional routes on the Echo instance before
// serve mode starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
