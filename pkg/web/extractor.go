package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"summarybot/pkg/httpclient"
)

var (
	// ErrDownload means the page could not be fetched.
	ErrDownload = errors.New("failed to download page")
	// ErrNoContent means readability produced no text at all.
	ErrNoContent = errors.New("extraction yielded no text")
	// ErrWhitespaceOnly means readability produced only whitespace.
	ErrWhitespaceOnly = errors.New("extraction yielded only whitespace")
)

// Extractor downloads an arbitrary web page and extracts its readable article
// text, dropping navigation and boilerplate.
type Extractor struct {
	client *httpclient.HTTPClient
}

// NewExtractor creates a generic web extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		client: httpclient.NewClient(httpclient.BrowserClient),
	}
}

// Extract fetches the page at rawURL and returns its readable content split on
// line breaks into a trimmed, non-empty paragraph sequence.
func (e *Extractor) Extract(ctx context.Context, rawURL string) ([]string, error) {
	html, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, errors.Join(ErrDownload, err)
	}

	parsedURL, _ := url.Parse(rawURL)
	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, errors.Join(ErrNoContent, err)
	}

	text := article.TextContent
	if text == "" {
		return nil, ErrNoContent
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrWhitespaceOnly
	}

	paragraphs := SplitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil, ErrWhitespaceOnly
	}

	return paragraphs, nil
}

// Title fetches the page and extracts a title for attribution, trying
// readability first and then common HTML fallbacks.
func (e *Extractor) Title(ctx context.Context, rawURL string) (string, error) {
	html, err := e.fetch(ctx, rawURL)
	if err != nil {
		return "", errors.Join(ErrDownload, err)
	}
	return extractTitle(html)
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// SplitParagraphs splits extracted text on line breaks into a sequence of
// trimmed, non-empty paragraphs. Also used directly for plain-text input,
// which bypasses extraction entirely.
func SplitParagraphs(text string) []string {
	lines := strings.Split(text, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs
}

// extractTitle extracts the page title from HTML with fallback mechanisms:
// readability, then <title>, <h1> and og:title/meta-title tags.
func extractTitle(html string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err == nil {
		if title := strings.TrimSpace(article.Title); title != "" {
			return title, nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}
	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}
	if title, exists := doc.Find("meta[name='title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	return "", fmt.Errorf("title not found in HTML")
}
