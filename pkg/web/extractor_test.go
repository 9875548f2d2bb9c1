package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Test Article Title</title></head>
<body>
<nav><a href="/home">Home</a><a href="/about">About</a></nav>
<article>
<h1>Test Article Title</h1>
<p>P1 is the first paragraph of this article and it carries enough words to
survive readability scoring because very short fragments are discarded.</p>
<p>P2 is the second paragraph of this article, also long enough that the
readability extraction keeps it in the final text content output.</p>
</article>
<footer>Copyright</footer>
</body>
</html>`

func TestExtractReturnsParagraphs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	extractor := NewExtractor()
	paragraphs, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(paragraphs) == 0 {
		t.Fatal("Expected non-empty paragraph sequence")
	}
	for i, p := range paragraphs {
		if p == "" {
			t.Errorf("Paragraph %d is empty", i)
		}
	}
}

func TestExtractDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor()
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrDownload) {
		t.Fatalf("Expected ErrDownload, got %v", err)
	}
}

func TestExtractUnreachableHost(t *testing.T) {
	extractor := NewExtractor()
	_, err := extractor.Extract(context.Background(), "http://127.0.0.1:1/nothing")
	if !errors.Is(err, ErrDownload) {
		t.Fatalf("Expected ErrDownload for unreachable host, got %v", err)
	}
}

func TestExtractEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head></head><body></body></html>"))
	}))
	defer server.Close()

	extractor := NewExtractor()
	_, err := extractor.Extract(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for empty page")
	}
	if !errors.Is(err, ErrNoContent) && !errors.Is(err, ErrWhitespaceOnly) {
		t.Fatalf("Expected empty-extraction error, got %v", err)
	}
}

func TestTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	extractor := NewExtractor()
	title, err := extractor.Title(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Title failed: %v", err)
	}
	if title != "Test Article Title" {
		t.Errorf("Expected %q, got %q", "Test Article Title", title)
	}
}

func TestExtractTitleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title tag",
			html: "<html><head><title>From Title Tag</title></head><body><p>x</p></body></html>",
			want: "From Title Tag",
		},
		{
			name: "h1 fallback",
			html: "<html><head></head><body><h1>From H1</h1></body></html>",
			want: "From H1",
		},
		{
			name: "og:title fallback",
			html: "<html><head><meta property='og:title' content='From OG'></head><body></body></html>",
			want: "From OG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractTitle(tt.html)
			if err != nil {
				t.Fatalf("extractTitle failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	got := SplitParagraphs("  P1  \n\n\n P2\n   \nP3")
	want := []string{"P1", "P2", "P3"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d paragraphs, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paragraph %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
