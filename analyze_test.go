package staticpub

import (
	"strings"
	"testing"
	"time"
)

func TestExcerptStripsMarkdown(t *testing.T) {
	body := "**Bold** text with [a link](http://x.com)"
	got := Excerpt(body, 280)
	want := "Bold text with a link"
	if got != want {
		t.Errorf("Excerpt = %q, want %q", got, want)
	}
}

func TestExcerptWordBoundary(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		maxLen int
		want   string
	}{
		{"shorter than budget", "hello world", 280, "hello world"},
		{"cut mid-word", "hello world again", 8, "hello"},
		{"cut on boundary", "hello world again", 11, "hello world"},
		{"cut right before space", "hello world", 5, "hello"},
		{"single long word", "supercalifragilistic", 10, ""},
		{"zero budget", "hello", 0, ""},
		{"empty body", "", 280, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.body, tt.maxLen)
			if got != tt.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.body, tt.maxLen, got, tt.want)
			}
			if len([]rune(got)) > tt.maxLen {
				t.Errorf("Excerpt length %d exceeds budget %d", len([]rune(got)), tt.maxLen)
			}
			if got != "" && strings.HasSuffix(got, " ") {
				t.Errorf("Excerpt %q ends with trailing space", got)
			}
		})
	}
}

func TestExcerptIgnoresCodeFences(t *testing.T) {
	body := "Intro words.\n\n```go\nfunc main() { fmt.Println(\"hidden\") }\n```\n\nOutro words.\n"
	got := Excerpt(body, 280)
	if strings.Contains(got, "hidden") || strings.Contains(got, "func main") {
		t.Errorf("Excerpt leaked code fence content: %q", got)
	}
	if !strings.Contains(got, "Intro words.") || !strings.Contains(got, "Outro words.") {
		t.Errorf("Excerpt lost prose around the fence: %q", got)
	}
}

func TestReadingTimeExactMultiple(t *testing.T) {
	body := strings.Repeat("word ", 200)
	got := ReadingTime(body, 200)
	if got != time.Minute {
		t.Errorf("ReadingTime(200 words, 200 wpm) = %v, want %v", got, time.Minute)
	}
	if got.Milliseconds() != 60000 {
		t.Errorf("ReadingTime ms = %d, want 60000", got.Milliseconds())
	}
}

func TestReadingTimeRoundsUp(t *testing.T) {
	tests := []struct {
		words int
		wpm   int
		want  time.Duration
	}{
		{1, 200, time.Minute},
		{200, 200, time.Minute},
		{201, 200, 2 * time.Minute},
		{399, 200, 2 * time.Minute},
		{400, 200, 2 * time.Minute},
	}
	for _, tt := range tests {
		body := strings.Repeat("word ", tt.words)
		if got := ReadingTime(body, tt.wpm); got != tt.want {
			t.Errorf("ReadingTime(%d words, %d wpm) = %v, want %v", tt.words, tt.wpm, got, tt.want)
		}
	}
}

func TestReadingTimeZeroCases(t *testing.T) {
	if got := ReadingTime("", 200); got != 0 {
		t.Errorf("ReadingTime(empty) = %v, want 0", got)
	}
	if got := ReadingTime("some words here", 0); got != 0 {
		t.Errorf("ReadingTime(wpm=0) = %v, want 0", got)
	}
}

func TestReadingTimeMonotonic(t *testing.T) {
	prev := time.Duration(0)
	for _, n := range []int{0, 1, 50, 200, 201, 1000, 5000} {
		body := strings.Repeat("word ", n)
		got := ReadingTime(body, 200)
		if got < prev {
			t.Fatalf("ReadingTime not monotonic: %d words -> %v after %v", n, got, prev)
		}
		prev = got
	}
}

func TestReadingTimeIgnoresCodeFences(t *testing.T) {
	prose := strings.Repeat("word ", 150)
	fenced := prose + "\n```\n" + strings.Repeat("code ", 500) + "\n```\n"
	if got, want := ReadingTime(fenced, 200), ReadingTime(prose, 200); got != want {
		t.Errorf("ReadingTime with fence = %v, want %v", got, want)
	}
}
