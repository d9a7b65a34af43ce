package staticpub

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// documentName is the single Markdown document every post folder must contain.
const documentName = "index.md"

// coverExtensions are checked in order when looking for a conventional cover
// asset next to the document.
var coverExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}

// SourceStore reads post source folders from a content directory. Each
// immediate subdirectory is one post; the directory name is the post id.
// The store never writes to the content tree.
type SourceStore struct {
	root string
}

// NewSourceStore creates a SourceStore rooted at dir.
func NewSourceStore(dir string) *SourceStore {
	return &SourceStore{root: dir}
}

// Root returns the content directory the store reads from.
func (s *SourceStore) Root() string { return s.root }

// List returns the ids of all post folders, sorted lexicographically so
// enumeration order is deterministic across builds. Entries without an
// index.md are ignored (scratch dirs, .git, editor droppings).
func (s *SourceStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &IOError{Op: "read content dir", Err: err}
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), documentName)); err != nil {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// Exists reports whether a post folder with the given id is present.
func (s *SourceStore) Exists(id string) bool {
	info, err := os.Stat(filepath.Join(s.root, id, documentName))
	return err == nil && !info.IsDir()
}

// Document returns the raw bytes of the post's Markdown document.
func (s *SourceStore) Document(id string) ([]byte, error) {
	path := filepath.Join(s.root, id, documentName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &IOError{ID: id, Op: "read document", Err: err}
	}
	return data, nil
}

// Assets returns the names of all non-Markdown files in the post folder,
// sorted. These are the files the publisher stages into the output tree.
func (s *SourceStore) Assets(id string) ([]string, error) {
	dir := filepath.Join(s.root, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &IOError{ID: id, Op: "read post dir", Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CoverName returns the filename of the post's conventional cover asset
// ("cover" plus a known image extension), or "" when none exists.
func (s *SourceStore) CoverName(id string) string {
	for _, ext := range coverExtensions {
		name := "cover" + ext
		if info, err := os.Stat(filepath.Join(s.root, id, name)); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// HasCover reports whether the post folder contains a conventional cover asset.
func (s *SourceStore) HasCover(id string) bool {
	return s.CoverName(id) != ""
}
