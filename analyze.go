package staticpub

import (
	"strings"
	"time"

	"github.com/eringen/staticpub/markdown"
)

// Excerpt produces a plain-text preview of a Markdown body: structure is
// stripped, then the text is truncated to at most maxLen characters, always
// ending on a word boundary. A body shorter than maxLen comes back whole.
func Excerpt(body string, maxLen int) string {
	plain := markdown.PlainText([]byte(body))
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(plain)
	if len(runes) <= maxLen {
		return plain
	}
	// A space right after the cut means the cut already sits on a boundary.
	if runes[maxLen] == ' ' {
		return strings.TrimRight(string(runes[:maxLen]), " ")
	}
	cut := string(runes[:maxLen])
	i := strings.LastIndex(cut, " ")
	if i < 0 {
		return ""
	}
	return strings.TrimRight(cut[:i], " ")
}

// ReadingTime estimates how long a Markdown body takes to read at the given
// reading speed. The word count uses the same plain-text form as Excerpt, so
// fenced code blocks don't inflate the estimate. The result is a whole
// number of minutes, rounded up; an empty body reads in zero time.
func ReadingTime(body string, wordsPerMinute int) time.Duration {
	if wordsPerMinute <= 0 {
		return 0
	}
	words := len(strings.Fields(markdown.PlainText([]byte(body))))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return time.Duration(minutes) * time.Minute
}
