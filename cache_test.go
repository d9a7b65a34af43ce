package staticpub

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testPost() Post {
	return Post{
		ID:             "p",
		Title:          "P",
		Date:           "2024-01-01",
		Tags:           []string{"go", "web"},
		Excerpt:        "An excerpt.",
		Source:         "Body.\n",
		CoverAvailable: true,
		TimeToRead:     2 * time.Minute,
		Draft:          false,
		Custom:         map[string]any{"series": "s"},
	}
}

func TestMemoryCacheRoundtrip(t *testing.T) {
	c := NewMemoryCache()
	post := testPost()

	if _, ok := c.Get("p", "h1"); ok {
		t.Fatal("empty cache returned a hit")
	}
	if err := c.Put("p", "h1", post); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok := c.Get("p", "h1")
	if !ok {
		t.Fatal("Get missed after Put")
	}
	if !reflect.DeepEqual(got, post) {
		t.Errorf("Get = %#v, want %#v", got, post)
	}
	if _, ok := c.Get("p", "h2"); ok {
		t.Error("stale hash produced a hit")
	}
	if err := c.Invalidate(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("p", "h1"); ok {
		t.Error("Get hit after Invalidate")
	}
}

func setupBuildCache(t *testing.T) *BuildCache {
	t.Helper()
	c, err := NewBuildCache(filepath.Join(t.TempDir(), "cache", "posts.db"))
	if err != nil {
		t.Fatalf("NewBuildCache failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestBuildCacheRoundtrip(t *testing.T) {
	c := setupBuildCache(t)
	post := testPost()

	if err := c.Put("p", "h1", post); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok := c.Get("p", "h1")
	if !ok {
		t.Fatal("Get missed after Put")
	}
	if !reflect.DeepEqual(got, post) {
		t.Errorf("Get = %#v, want %#v", got, post)
	}
	if got.TimeToRead.Milliseconds() != 120000 {
		t.Errorf("TimeToRead ms = %d, want 120000", got.TimeToRead.Milliseconds())
	}
	if _, ok := c.Get("p", "h2"); ok {
		t.Error("stale hash produced a hit")
	}
}

func TestBuildCacheNestedCustom(t *testing.T) {
	c := setupBuildCache(t)
	post := testPost()
	post.Custom = map[string]any{
		"links": map[string]any{
			"repo":    "https://example.com/repo",
			"mirrors": []any{"https://a.example.com"},
		},
	}

	if err := c.Put("p", "h1", post); err != nil {
		t.Fatalf("Put with nested custom failed: %v", err)
	}
	got, ok := c.Get("p", "h1")
	if !ok {
		t.Fatal("Get missed after Put")
	}
	links, ok := got.Custom["links"].(map[string]any)
	if !ok {
		t.Fatalf("Custom[links] = %T, want map[string]any", got.Custom["links"])
	}
	if links["repo"] != "https://example.com/repo" {
		t.Errorf("links[repo] = %v", links["repo"])
	}
}

func TestBuildCacheReplaceAndInvalidate(t *testing.T) {
	c := setupBuildCache(t)
	post := testPost()

	if err := c.Put("p", "h1", post); err != nil {
		t.Fatal(err)
	}
	post.Title = "Updated"
	if err := c.Put("p", "h2", post); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("p", "h1"); ok {
		t.Error("old hash still hits after replace")
	}
	got, ok := c.Get("p", "h2")
	if !ok || got.Title != "Updated" {
		t.Errorf("Get after replace = %#v, %v", got, ok)
	}

	if err := c.Invalidate(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("p", "h2"); ok {
		t.Error("Get hit after Invalidate")
	}
}

func TestEncodeDecodeTags(t *testing.T) {
	tests := []struct {
		tags    []string
		encoded string
	}{
		{nil, ""},
		{[]string{"go"}, ",go,"},
		{[]string{"go", "web"}, ",go,web,"},
	}
	for _, tt := range tests {
		if got := encodeTags(tt.tags); got != tt.encoded {
			t.Errorf("encodeTags(%v) = %q, want %q", tt.tags, got, tt.encoded)
		}
		if got := decodeTags(tt.encoded); !reflect.DeepEqual(got, tt.tags) {
			t.Errorf("decodeTags(%q) = %v, want %v", tt.encoded, got, tt.tags)
		}
	}
}
