package staticpub

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a read-through cache of resolved posts, keyed by post id plus a
// hash of the source document. A source edit changes the hash, so stale
// entries simply stop matching; no TTL is needed for a build-time tool.
//
// The cache is always injected explicitly into the Loader so tests can start
// from a known-empty one.
type Cache interface {
	Get(id, hash string) (Post, bool)
	Put(id, hash string, post Post) error
	Invalidate() error
	Close() error
}

// MemoryCache is the default Cache: a mutex-guarded map that lives for one
// build process.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	hash string
	post Post
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(id, hash string) (Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok || e.hash != hash {
		return Post{}, false
	}
	return e.post, true
}

func (c *MemoryCache) Put(id, hash string, post Post) error {
	c.mu.Lock()
	c.entries[id] = memoryEntry{hash: hash, post: post}
	c.mu.Unlock()
	return nil
}

// Invalidate drops every entry.
func (c *MemoryCache) Invalidate() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Close() error { return nil }

// BuildCache is a SQLite-backed Cache that survives across build processes,
// giving incremental rebuilds on large sites. Entries are keyed the same way
// as MemoryCache, so correctness never depends on persistence.
type BuildCache struct {
	db *sql.DB
}

// NewBuildCache opens (or creates) the cache database at path, ensuring the
// parent directory exists.
func NewBuildCache(path string) (*BuildCache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL plus a busy timeout lets a rebuild triggered from the admin editor
	// overlap a read from an in-flight page render without SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	c := &BuildCache{db: db}
	if err := c.ensureSchema(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *BuildCache) ensureSchema() error {
	_, err := c.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    hash TEXT NOT NULL,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    source TEXT NOT NULL,
    cover INTEGER NOT NULL,
    read_ms INTEGER NOT NULL,
    draft INTEGER NOT NULL,
    custom TEXT NOT NULL
);
`)
	return err
}

func (c *BuildCache) Get(id, hash string) (Post, bool) {
	var (
		title, date, tags, excerpt, source, custom string
		cover, draft                               int
		readMs                                     int64
	)
	err := c.db.QueryRow(
		`SELECT title, date, tags, excerpt, source, cover, read_ms, draft, custom FROM posts WHERE id = ? AND hash = ?`,
		id, hash,
	).Scan(&title, &date, &tags, &excerpt, &source, &cover, &readMs, &draft, &custom)
	if err != nil {
		return Post{}, false
	}
	post := Post{
		ID:             id,
		Title:          title,
		Date:           date,
		Tags:           decodeTags(tags),
		Excerpt:        excerpt,
		Source:         source,
		CoverAvailable: cover == 1,
		TimeToRead:     time.Duration(readMs) * time.Millisecond,
		Draft:          draft == 1,
		Custom:         map[string]any{},
	}
	if custom != "" {
		if err := json.Unmarshal([]byte(custom), &post.Custom); err != nil {
			return Post{}, false
		}
	}
	return post, true
}

func (c *BuildCache) Put(id, hash string, post Post) error {
	custom, err := json.Marshal(post.Custom)
	if err != nil {
		return err
	}
	cover := 0
	if post.CoverAvailable {
		cover = 1
	}
	draft := 0
	if post.Draft {
		draft = 1
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO posts (id, hash, title, date, tags, excerpt, source, cover, read_ms, draft, custom) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, hash, post.Title, post.Date, encodeTags(post.Tags), post.Excerpt, post.Source,
		cover, post.TimeToRead.Milliseconds(), draft, string(custom),
	)
	return err
}

// Invalidate removes every cached post.
func (c *BuildCache) Invalidate() error {
	_, err := c.db.Exec(`DELETE FROM posts`)
	return err
}

// Close closes the underlying database connection.
func (c *BuildCache) Close() error {
	return c.db.Close()
}

// encodeTags stores tags as a comma-delimited string with sentinel commas,
// mirroring decodeTags.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

// decodeTags parses a comma-delimited tag string (e.g. ",go,web,").
func decodeTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
