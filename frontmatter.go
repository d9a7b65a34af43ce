package staticpub

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// parseDocument splits a post document into its frontmatter and Markdown
// body, validating the recognized fields. The id is only used to name the
// offending post in errors.
func parseDocument(id string, source []byte) (Frontmatter, string, error) {
	var fm Frontmatter
	body, err := frontmatter.MustParse(bytes.NewReader(source), &fm)
	if err != nil {
		return Frontmatter{}, "", &ParseError{ID: id, Err: err}
	}
	if err := validateFrontmatter(id, fm); err != nil {
		return Frontmatter{}, "", err
	}
	if fm.Custom == nil {
		fm.Custom = map[string]any{}
	}
	for k, v := range fm.Custom {
		fm.Custom[k] = normalizeYAML(v)
	}
	return fm, string(body), nil
}

// normalizeYAML rewrites the map[interface{}]interface{} values the YAML
// decoder produces for nested structures into map[string]any, so Custom is
// always JSON-marshalable for the build cache.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = normalizeYAML(t[i])
		}
		return t
	}
	return v
}

func validateFrontmatter(id string, fm Frontmatter) error {
	if strings.TrimSpace(fm.Title) == "" {
		return &ValidationError{ID: id, Field: "title", Reason: "required and must be non-empty"}
	}
	if fm.Date == "" {
		return &ValidationError{ID: id, Field: "date", Reason: "required"}
	}
	if _, err := time.Parse("2006-01-02", fm.Date); err != nil {
		return &ValidationError{ID: id, Field: "date", Reason: "must be an ISO date (YYYY-MM-DD)"}
	}
	return nil
}
