package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "bold and link",
			source: "**Bold** text with [a link](http://x.com)",
			want:   "Bold text with a link",
		},
		{
			name:   "headings and emphasis",
			source: "# Title\n\nSome *emphasized* prose.",
			want:   "Title Some emphasized prose.",
		},
		{
			name:   "image dropped entirely",
			source: "Before ![alt text](pic.png) after.",
			want:   "Before after.",
		},
		{
			name:   "fenced code excluded",
			source: "Intro.\n\n```go\nfunc main() {}\n```\n\nOutro.",
			want:   "Intro. Outro.",
		},
		{
			name:   "inline code kept",
			source: "Run `go build` now.",
			want:   "Run go build now.",
		},
		{
			name:   "list items",
			source: "- one\n- two\n- three",
			want:   "one two three",
		},
		{
			name:   "blockquote",
			source: "> quoted words",
			want:   "quoted words",
		},
		{
			name:   "soft line breaks become spaces",
			source: "line one\nline two",
			want:   "line one line two",
		},
		{
			name:   "empty",
			source: "",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText([]byte(tt.source)))
		})
	}
}
