package staticpub

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"

	"github.com/charmbracelet/log"
)

// Loader resolves post source folders into Post and PostRef values. It reads
// through an explicit Cache and applies the single global error policy for
// bulk enumeration: strict by default, skip-and-warn when the site config
// says so.
type Loader struct {
	store         *SourceStore
	cache         Cache
	wordsPerMin   int
	excerptLen    int
	skipInvalid   bool
	includeDrafts bool
	log           *log.Logger
}

// NewLoader creates a Loader over store using the analysis and policy
// settings from cfg. A nil cache gets a fresh MemoryCache; a nil logger gets
// the package default.
func NewLoader(store *SourceStore, cache Cache, cfg SiteConfig, logger *log.Logger) *Loader {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		store:         store,
		cache:         cache,
		wordsPerMin:   cfg.WordsPerMinute,
		excerptLen:    cfg.ExcerptLength,
		skipInvalid:   cfg.SkipInvalid,
		includeDrafts: cfg.IncludeDrafts,
		log:           logger,
	}
}

// Post loads the fully resolved record for one post. Unknown ids fail with
// NotFoundError; malformed posts propagate the parser's error with the id
// attached. Two calls against an unchanged source folder return identical
// values.
func (l *Loader) Post(id string) (Post, error) {
	doc, err := l.store.Document(id)
	if err != nil {
		return Post{}, err
	}
	hash := l.sourceHash(id, doc)
	if post, ok := l.cache.Get(id, hash); ok {
		return post, nil
	}

	fm, body, err := parseDocument(id, doc)
	if err != nil {
		return Post{}, err
	}
	cover := l.store.HasCover(id)
	if fm.Cover != nil {
		cover = *fm.Cover
	}
	post := Post{
		ID:             id,
		Title:          fm.Title,
		Date:           fm.Date,
		Tags:           fm.Tags,
		Excerpt:        Excerpt(body, l.excerptLen),
		Source:         body,
		CoverAvailable: cover,
		TimeToRead:     ReadingTime(body, l.wordsPerMin),
		Draft:          fm.Draft,
		Custom:         fm.Custom,
	}
	if err := l.cache.Put(id, hash, post); err != nil {
		// The cache is an optimization; a failed write costs a re-parse, not
		// a broken build.
		l.log.Warn("post cache write failed", "id", id, "err", err)
	}
	return post, nil
}

// Refs enumerates every post folder and returns one PostRef per post. The
// result is unordered beyond the store's deterministic folder order; callers
// sort before display. Drafts are excluded unless the loader was configured
// to include them.
//
// Under the strict policy any malformed post aborts the enumeration; under
// skip-and-warn it is logged and dropped. I/O failures abort either way.
func (l *Loader) Refs() ([]PostRef, error) {
	return l.refs(l.includeDrafts)
}

// AllRefs enumerates like Refs but always includes drafts, regardless of the
// loader's configuration. The admin dashboard uses this so a freshly saved
// draft stays reachable for editing.
func (l *Loader) AllRefs() ([]PostRef, error) {
	return l.refs(true)
}

func (l *Loader) refs(includeDrafts bool) ([]PostRef, error) {
	ids, err := l.store.List()
	if err != nil {
		return nil, err
	}
	refs := make([]PostRef, 0, len(ids))
	for _, id := range ids {
		post, err := l.Post(id)
		if err != nil {
			if l.skipInvalid && (errors.Is(err, ErrParse) || errors.Is(err, ErrValidation)) {
				l.log.Warn("skipping malformed post", "id", id, "err", err)
				continue
			}
			return nil, err
		}
		if post.Draft && !includeDrafts {
			continue
		}
		refs = append(refs, post.Ref())
	}
	return refs, nil
}

// sourceHash fingerprints everything a resolved Post depends on: the
// document bytes and the presence of a conventional cover asset. A change to
// either stops matching cached entries.
func (l *Loader) sourceHash(id string, doc []byte) string {
	h := sha256.New()
	h.Write(doc)
	h.Write([]byte{0})
	h.Write([]byte(l.store.CoverName(id)))
	return hex.EncodeToString(h.Sum(nil))
}

// SortRefsByDate orders refs newest-first. The sort is stable: posts sharing
// a date keep their relative order.
func SortRefsByDate(refs []PostRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].ParsedDate().After(refs[j].ParsedDate())
	})
}

// GroupRefsByYear buckets date-descending refs into per-year groups for the
// index page, preserving order within each bucket.
func GroupRefsByYear(refs []PostRef) []YearGroup {
	var groups []YearGroup
	for _, r := range refs {
		year := r.Year()
		if len(groups) == 0 || groups[len(groups)-1].Year != year {
			groups = append(groups, YearGroup{Year: year})
		}
		last := &groups[len(groups)-1]
		last.Refs = append(last.Refs, r)
	}
	return groups
}
