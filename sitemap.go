package staticpub

import (
	"encoding/xml"
	"io"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap renders a sitemap covering the index page and every post.
func WriteSitemap(w io.Writer, cfg SiteConfig, refs []PostRef) error {
	base := cfg.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	for _, r := range refs {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", r.ID),
			LastMod: r.Date,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
