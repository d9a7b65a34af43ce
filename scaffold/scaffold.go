// Package scaffold creates the starter layout for a new staticpub site: a
// config file, one example post, and an empty static dir.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// Templates contains all scaffold template files. Files use Go text/template
// syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data is the template context for scaffolded files.
type Data struct {
	Name string
	Date string // today, YYYY-MM-DD
}

// Generate writes a new site skeleton into dir, refusing to overwrite an
// existing non-empty directory.
func Generate(dir, name string) error {
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return fmt.Errorf("directory %s is not empty", dir)
	}
	data := Data{
		Name: name,
		Date: time.Now().Format("2006-01-02"),
	}
	return fs.WalkDir(Templates, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel := strings.TrimPrefix(p, "templates/")
		rel = strings.TrimSuffix(rel, ".tmpl")
		dest := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		tmpl, err := template.ParseFS(Templates, p)
		if err != nil {
			return err
		}
		f, err := os.Create(dest)
		if err != nil {
			return err
		}
		if err := tmpl.Execute(f, data); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
