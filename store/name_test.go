package store

import (
	"regexp"
	"strings"
	"testing"
)

// longName is a hashed cdn style name well past 100 characters.
var longName = strings.Repeat("0123456789abcdef", 9) + "-original.png"

var generatedRegexp = regexp.MustCompile(`^image_[0-9a-f]{32}\.jpg$`)

func TestURLToFilename(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"simple", "http://example.com/cat.png", "cat.png"},
		{"nested path", "https://example.com/a/b/c/dog.jpeg", "dog.jpeg"},
		{"query ignored", "http://example.com/img/cat.png?size=large", "cat.png"},
		{"fragment ignored", "http://example.com/img/cat.png#top", "cat.png"},
		{"no extension", "http://example.com/photos/12345", "12345"},
		{"percent encoding kept", "http://example.com/my%20cat.png", "my%20cat.png"},
		{"port", "http://127.0.0.1:8080/x/y.gif", "y.gif"},
		{"unicode kept", "http://example.com/café.png", "café.png"},
		{"unicode in path", "http://example.com/写真/猫.jpg", "猫.jpg"},
		{"long name", "http://cdn.example.com/i/" + longName, longName},
		{"url in query", "http://example.com/img/cat.png?next=http://x/dog.png", "cat.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := URLToFilename(tt.url)
			if got != tt.want {
				t.Errorf("URLToFilename(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestURLToFilenameGenerated(t *testing.T) {
	urls := []string{
		"http://example.com/",
		"http://example.com",
		"http://example.com/gallery/",
		"http://example.com/a/..",
		"http://example.com/.",
		"http://example.com/?q=cat.png",
	}

	for _, u := range urls {
		got := URLToFilename(u)
		if !generatedRegexp.MatchString(got) {
			t.Errorf("URLToFilename(%q) = %q, want generated name", u, got)
		}
	}
}

func TestURLToFilenameSanitizes(t *testing.T) {
	got := URLToFilename("http://example.com/a:b.png")
	if got == "" || strings.Contains(got, ":") {
		t.Errorf("URLToFilename() = %q, want reserved characters replaced", got)
	}
	if !strings.HasSuffix(got, "b.png") {
		t.Errorf("URLToFilename() = %q, want suffix %q", got, "b.png")
	}
}

func TestURLToFilenameNeverTraverses(t *testing.T) {
	urls := []string{
		"http://example.com/..%2F..%2Fetc%2Fpasswd",
		"http://example.com/a/../../b.png",
		"http://example.com/%2E%2E",
	}

	for _, u := range urls {
		got := URLToFilename(u)
		if got == "" || got == "." || got == ".." || strings.ContainsAny(got, `/\`) {
			t.Errorf("URLToFilename(%q) = %q, want a plain filename", u, got)
		}
	}
}

func TestGenerateFilenameUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		name := GenerateFilename()
		if !generatedRegexp.MatchString(name) {
			t.Fatalf("GenerateFilename() = %q, want image_<32 hex>.jpg", name)
		}
		if _, ok := seen[name]; ok {
			t.Fatalf("GenerateFilename() returned %q twice", name)
		}
		seen[name] = struct{}{}
	}
}
