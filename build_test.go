package staticpub_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/staticpub"
	"github.com/eringen/staticpub/views"
)

func writeSite(t *testing.T) staticpub.SiteConfig {
	t.Helper()
	base := t.TempDir()
	cfg := staticpub.SiteConfig{
		Name:       "Test Site",
		URL:        "https://example.com",
		ContentDir: filepath.Join(base, "content"),
		OutputDir:  filepath.Join(base, "public"),
		StaticDir:  filepath.Join(base, "static"),
	}

	posts := map[string]string{
		"first-post":  "---\ntitle: First Post\ndate: 2024-01-15\ntags:\n  - go\n---\n\nHello from the **first** post.\n\n![diagram](diagram.png)\n",
		"second-post": "---\ntitle: Second Post\ndate: 2024-06-01\n---\n\nThe second post body.\n",
	}
	for id, doc := range posts {
		dir := filepath.Join(cfg.ContentDir, id)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(cfg.ContentDir, "first-post", "diagram.png"), []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(cfg.StaticDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.StaticDir, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestBuildGeneratesSite(t *testing.T) {
	cfg := writeSite(t)
	app := staticpub.New(cfg, views.New(cfg))
	defer app.Close()

	if err := app.Build(context.Background()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	read := func(rel string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, rel))
		if err != nil {
			t.Fatalf("missing output file %s: %v", rel, err)
		}
		return string(data)
	}

	index := read("index.html")
	if !strings.Contains(index, "First Post") || !strings.Contains(index, "Second Post") {
		t.Error("index.html missing post titles")
	}
	// Date-descending: the newer post must appear first.
	if strings.Index(index, "Second Post") > strings.Index(index, "First Post") {
		t.Error("index.html posts not in date-descending order")
	}

	post := read("blog/first-post/index.html")
	if !strings.Contains(post, "<strong>first</strong>") {
		t.Error("post page missing rendered body")
	}
	if !strings.Contains(post, `src="/blog/first-post/diagram.png"`) {
		t.Error("post page did not rewrite relative asset URL")
	}

	if got := read("blog/first-post/diagram.png"); got != "\x01\x02\x03" {
		t.Error("asset not published verbatim")
	}

	feed := read("feed.xml")
	if !strings.Contains(feed, "<rss") || !strings.Contains(feed, "https://example.com/blog/second-post/") {
		t.Error("feed.xml incomplete")
	}

	sitemap := read("sitemap.xml")
	if !strings.Contains(sitemap, "https://example.com/blog/first-post/") {
		t.Error("sitemap.xml missing post URL")
	}

	robots := read("robots.txt")
	if !strings.Contains(robots, "Sitemap: https://example.com/sitemap.xml") {
		t.Error("robots.txt missing sitemap line")
	}

	read("404.html")
	if got := read("style.css"); got != "body{}" {
		t.Error("static dir not copied")
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := writeSite(t)
	app := staticpub.New(cfg, views.New(cfg))
	defer app.Close()

	ctx := context.Background()
	if err := app.Build(ctx); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(filepath.Join(cfg.OutputDir, "blog", "first-post", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Build(ctx); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(filepath.Join(cfg.OutputDir, "blog", "first-post", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("rebuild of unchanged source changed output")
	}
}

func TestBuildStrictFailsOnBrokenPost(t *testing.T) {
	cfg := writeSite(t)
	dir := filepath.Join(cfg.ContentDir, "broken")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("no frontmatter\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := staticpub.New(cfg, views.New(cfg))
	defer app.Close()
	if err := app.Build(context.Background()); err == nil {
		t.Fatal("Build succeeded with a malformed post under the strict policy")
	}

	cfg.SkipInvalid = true
	app2 := staticpub.New(cfg, views.New(cfg))
	defer app2.Close()
	if err := app2.Build(context.Background()); err != nil {
		t.Fatalf("Build failed under skip policy: %v", err)
	}
}

func TestBuildWithSQLiteCache(t *testing.T) {
	cfg := writeSite(t)
	cfg.CachePath = filepath.Join(t.TempDir(), "cache.db")

	app := staticpub.New(cfg, views.New(cfg))
	defer app.Close()
	if err := app.Build(context.Background()); err != nil {
		t.Fatalf("Build with sqlite cache failed: %v", err)
	}
	if _, err := os.Stat(cfg.CachePath); err != nil {
		t.Errorf("cache database not created: %v", err)
	}
}
