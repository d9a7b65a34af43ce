// Package markdown renders post bodies to HTML with goldmark (GFM, auto
// heading ids, chroma syntax highlighting) and extracts plain text for
// excerpts and word counts.
package markdown

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// RewriteFunc maps a URL found in a post body to the URL that should appear
// in the rendered page. Used to point post-relative asset references at
// their published location.
type RewriteFunc func(string) string

// Renderer converts Markdown to HTML. The zero value is not usable; call New.
type Renderer struct {
	style string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlightStyle sets the chroma style used for fenced code blocks.
func WithHighlightStyle(style string) Option {
	return func(r *Renderer) { r.style = style }
}

// New creates a Renderer with GFM extensions and syntax highlighting.
func New(opts ...Option) *Renderer {
	r := &Renderer{style: "dracula"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes source as HTML to w. When rewrite is non-nil, relative link
// and image destinations are passed through it before rendering; absolute
// URLs and fragments are left alone.
//
// The goldmark engine is built per call so the rewrite closure can differ
// per post without locking.
func (r *Renderer) Render(w io.Writer, source []byte, rewrite RewriteFunc) error {
	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}
	if rewrite != nil {
		parserOptions = append(parserOptions, parser.WithASTTransformers(
			util.Prioritized(&assetTransformer{rewrite: rewrite}, 100),
		))
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	if err := md.Convert(source, w); err != nil {
		return fmt.Errorf("markdown render: %w", err)
	}
	return nil
}

// assetTransformer rewrites relative link/image destinations in the AST.
type assetTransformer struct {
	rewrite RewriteFunc
}

func (t *assetTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = t.apply(v.Destination)
		case *ast.Image:
			v.Destination = t.apply(v.Destination)
		}
		return ast.WalkContinue, nil
	})
}

func (t *assetTransformer) apply(dest []byte) []byte {
	s := string(dest)
	if !IsRelativeURL(s) {
		return dest
	}
	return []byte(t.rewrite(s))
}

// IsRelativeURL reports whether s is a post-relative reference: not
// absolute, not site-rooted, and not a fragment or mail/tel scheme.
func IsRelativeURL(s string) bool {
	if s == "" || strings.HasPrefix(s, "/") || strings.HasPrefix(s, "#") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
