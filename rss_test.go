package staticpub

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
)

func TestWriteFeed(t *testing.T) {
	cfg := SiteConfig{Name: "Site", URL: "https://example.com", Description: "Desc"}
	posts := []Post{
		{ID: "newer", Title: "Newer", Date: "2024-06-01", Excerpt: "Second excerpt."},
		{ID: "older", Title: "Older", Date: "2024-01-15", Excerpt: "First excerpt."},
	}

	var buf bytes.Buffer
	if err := WriteFeed(&buf, cfg, posts); err != nil {
		t.Fatalf("WriteFeed failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, xml.Header) {
		t.Error("feed missing XML header")
	}

	var feed rssXML
	if err := xml.Unmarshal(buf.Bytes(), &feed); err != nil {
		t.Fatalf("feed is not valid XML: %v", err)
	}
	if feed.Version != "2.0" {
		t.Errorf("version = %q", feed.Version)
	}
	if feed.Channel.Title != "Site" || feed.Channel.Description != "Desc" {
		t.Errorf("channel = %+v", feed.Channel)
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(feed.Channel.Items))
	}
	first := feed.Channel.Items[0]
	if first.Title != "Newer" {
		t.Errorf("items not in given order: first = %q", first.Title)
	}
	if first.Link != "https://example.com/blog/newer/" || first.GUID != first.Link {
		t.Errorf("item link/guid = %q/%q", first.Link, first.GUID)
	}
	if first.Description != "Second excerpt." {
		t.Errorf("item description = %q, want the excerpt", first.Description)
	}
	if !strings.HasSuffix(first.PubDate, "+0000") && !strings.Contains(first.PubDate, "Jun") {
		t.Errorf("pubDate = %q, want RFC1123Z", first.PubDate)
	}
}

func TestWriteSitemap(t *testing.T) {
	cfg := SiteConfig{URL: "https://example.com"}
	refs := []PostRef{
		{ID: "a", Date: "2024-06-01"},
		{ID: "b", Date: "2024-01-15"},
	}

	var buf bytes.Buffer
	if err := WriteSitemap(&buf, cfg, refs); err != nil {
		t.Fatalf("WriteSitemap failed: %v", err)
	}

	var set sitemapURLSet
	if err := xml.Unmarshal(buf.Bytes(), &set); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	if len(set.URLs) != 3 {
		t.Fatalf("urls = %d, want index plus 2 posts", len(set.URLs))
	}
	if set.URLs[0].Loc != "https://example.com" {
		t.Errorf("index loc = %q", set.URLs[0].Loc)
	}
	if set.URLs[1].Loc != "https://example.com/blog/a/" || set.URLs[1].LastMod != "2024-06-01" {
		t.Errorf("post url = %+v", set.URLs[1])
	}
}
