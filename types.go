package staticpub

import "time"

// Frontmatter is the structured metadata block at the top of a post's
// Markdown document. Recognized keys are validated strictly; anything else
// lands in Custom untouched so future content additions don't break parsing.
type Frontmatter struct {
	Title  string         `yaml:"title"`
	Date   string         `yaml:"date"`
	Tags   []string       `yaml:"tags,omitempty"`
	Cover  *bool          `yaml:"cover,omitempty"`
	Draft  bool           `yaml:"draft,omitempty"`
	Custom map[string]any `yaml:",inline"`
}

// PostRef is the lightweight listing-only projection of a post. It never
// carries the body and is rebuilt from the source tree on every enumeration.
type PostRef struct {
	ID         string
	Title      string
	Date       string // YYYY-MM-DD
	TimeToRead time.Duration
}

// Post is the fully resolved record for a single post: frontmatter fields,
// the raw Markdown body, and metadata computed from it.
type Post struct {
	ID             string
	Title          string
	Date           string // YYYY-MM-DD
	Tags           []string
	Excerpt        string
	Source         string // raw Markdown body, frontmatter removed
	CoverAvailable bool
	TimeToRead     time.Duration
	Draft          bool
	Custom         map[string]any
}

// Ref returns the PostRef projection of p. Every Ref field must agree with
// the Post it was derived from.
func (p Post) Ref() PostRef {
	return PostRef{
		ID:         p.ID,
		Title:      p.Title,
		Date:       p.Date,
		TimeToRead: p.TimeToRead,
	}
}

// Link returns the site-relative path of the post's detail page.
func (p Post) Link() string {
	return "/blog/" + p.ID + "/"
}

// Link returns the site-relative path of the post's detail page.
func (r PostRef) Link() string {
	return "/blog/" + r.ID + "/"
}

// ParsedDate returns the post date as a time.Time. Refs produced by the
// loader always carry a parseable date, so the zero time only shows up for
// hand-built values.
func (r PostRef) ParsedDate() time.Time {
	t, _ := time.Parse("2006-01-02", r.Date)
	return t
}

// Year returns the calendar year of the post date, for index grouping.
func (r PostRef) Year() int {
	return r.ParsedDate().Year()
}

// YearGroup is one bucket of the chronological index listing.
type YearGroup struct {
	Year int
	Refs []PostRef
}
