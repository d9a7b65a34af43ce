package staticpub

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
)

// Build generates the complete static site into the configured output
// directory: the index page grouped by year, one page per post with its
// assets published alongside, the 404 page, the RSS feed, the sitemap, and
// robots.txt, plus a verbatim copy of the static dir. The build is
// deterministic: unchanged sources produce byte-identical output.
func (a *App) Build(ctx context.Context) error {
	if err := a.init(); err != nil {
		return err
	}

	refs, err := a.Loader.Refs()
	if err != nil {
		return err
	}
	SortRefsByDate(refs)

	posts := make([]Post, 0, len(refs))
	for _, r := range refs {
		post, err := a.Loader.Post(r.ID)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}

	if err := os.MkdirAll(a.Config.OutputDir, 0o755); err != nil {
		return err
	}

	a.log.Info("building site", "posts", len(posts), "out", a.Config.OutputDir)

	if err := a.renderToFile(ctx, "index.html", a.Views.Home(GroupRefsByYear(refs))); err != nil {
		return err
	}
	if err := a.renderToFile(ctx, "404.html", a.Views.NotFound()); err != nil {
		return err
	}

	for _, post := range posts {
		if err := a.buildPost(ctx, post); err != nil {
			return err
		}
	}

	if err := a.writeFeed(posts); err != nil {
		return err
	}
	if err := a.writeSitemap(refs); err != nil {
		return err
	}
	if err := a.writeRobots(); err != nil {
		return err
	}
	if err := copyDir(a.Config.StaticDir, a.Config.OutputDir); err != nil {
		return err
	}

	a.log.Info("build complete")
	return nil
}

// buildPost publishes the post's assets and renders its page at
// blog/<id>/index.html, rewriting relative asset links to their published
// URLs.
func (a *App) buildPost(ctx context.Context, post Post) error {
	if _, err := a.Publisher.Publish(post.ID); err != nil {
		return err
	}

	var body bytes.Buffer
	rewrite := func(dest string) string {
		return AssetURL(post.ID, dest)
	}
	if err := a.md.Render(&body, []byte(post.Source), rewrite); err != nil {
		return fmt.Errorf("render %s: %w", post.ID, err)
	}

	page := filepath.Join("blog", post.ID, "index.html")
	return a.renderToFile(ctx, page, a.Views.Post(post, body.String()))
}

// renderToFile renders a templ component into <out>/<rel>, creating parent
// directories as needed.
func (a *App) renderToFile(ctx context.Context, rel string, component templ.Component) error {
	dest := filepath.Join(a.Config.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := component.Render(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", rel, err)
	}
	return f.Close()
}

func (a *App) writeFeed(posts []Post) error {
	f, err := os.Create(filepath.Join(a.Config.OutputDir, "feed.xml"))
	if err != nil {
		return err
	}
	if err := WriteFeed(f, a.Config, posts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *App) writeSitemap(refs []PostRef) error {
	f, err := os.Create(filepath.Join(a.Config.OutputDir, "sitemap.xml"))
	if err != nil {
		return err
	}
	if err := WriteSitemap(f, a.Config, refs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *App) writeRobots() error {
	content := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return os.WriteFile(filepath.Join(a.Config.OutputDir, "robots.txt"), []byte(content), 0o644)
}

// copyDir copies src into dst recursively, preserving the tree. A missing
// src is not an error; not every site has static assets.
func copyDir(src, dst string) error {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		dest := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		in, err := os.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}
