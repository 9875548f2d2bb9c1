package bot

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatSummaryWithSource(t *testing.T) {
	got := FormatSummary("Page Title", "https://example.com/a", "the summary")

	if !strings.HasPrefix(got, "📌 Page Title\n\n") {
		t.Errorf("Expected pinned title prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "\n\n▶ https://example.com/a") {
		t.Errorf("Expected source line suffix, got %q", got)
	}
	if !strings.Contains(got, "the summary") {
		t.Errorf("Summary body missing: %q", got)
	}
}

func TestFormatSummaryPlainText(t *testing.T) {
	got := FormatSummary("短文之摘要", "", "the summary")
	if strings.Contains(got, "▶") {
		t.Errorf("Plain text summary must carry no source line: %q", got)
	}
}

func TestRenderHTMLHeadingsAndEmphasis(t *testing.T) {
	got := RenderHTML("# Title\n\nSome **bold** and *italic* text.")

	if !strings.Contains(got, "<b>Title</b>") {
		t.Errorf("Heading not bolded: %q", got)
	}
	if !strings.Contains(got, "<b>bold</b>") {
		t.Errorf("Strong not rendered: %q", got)
	}
	if !strings.Contains(got, "<i>italic</i>") {
		t.Errorf("Emphasis not rendered: %q", got)
	}
}

func TestRenderHTMLLists(t *testing.T) {
	got := RenderHTML("- first point\n- second point")

	if !strings.Contains(got, "• first point") || !strings.Contains(got, "• second point") {
		t.Errorf("List items not bulleted: %q", got)
	}
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	got := RenderHTML("a < b & c > d")
	if strings.Contains(got, "a < b") {
		t.Errorf("Raw angle brackets must be escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;") || !strings.Contains(got, "&amp;") {
		t.Errorf("Expected escaped entities: %q", got)
	}
}

func TestRenderHTMLCollapsesNewlineRuns(t *testing.T) {
	got := RenderHTML("one\n\n\n\ntwo")
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("Newline runs not collapsed: %q", got)
	}
}

func TestRenderHTMLCode(t *testing.T) {
	got := RenderHTML("run `go version` first")
	if !strings.Contains(got, "<code>go version</code>") {
		t.Errorf("Code span not rendered: %q", got)
	}
}

func TestSplitMessageShortTextUnsplit(t *testing.T) {
	parts := SplitMessage("short", MessageLimit)
	if len(parts) != 1 || parts[0] != "short" {
		t.Errorf("Short text must pass through unchanged: %v", parts)
	}
}

func TestSplitMessagePrefersLineBoundaries(t *testing.T) {
	text := strings.Repeat("aaaaaaaaa\n", 30) // 300 chars in 10-char lines
	parts := SplitMessage(text, 100)

	if len(parts) < 3 {
		t.Fatalf("Expected multiple parts, got %d", len(parts))
	}
	for i, part := range parts {
		if len(part) > 100 {
			t.Errorf("Part %d exceeds limit: %d chars", i, len(part))
		}
		for _, line := range strings.Split(part, "\n") {
			if line != "aaaaaaaaa" && line != "" {
				t.Errorf("Part %d split mid-line: %q", i, line)
			}
		}
	}
}

func TestSplitMessageNeverSplitsRunes(t *testing.T) {
	text := strings.Repeat("繁體中文摘要內容", 200)
	for _, part := range SplitMessage(text, 1000) {
		if !utf8.ValidString(part) {
			t.Fatalf("Part contains a broken rune: %q", part[:16])
		}
		if len(part) > 1000 {
			t.Errorf("Part exceeds limit: %d bytes", len(part))
		}
	}
}

func TestSplitMessageReassembles(t *testing.T) {
	text := strings.Repeat("word ", 2000)
	parts := SplitMessage(text, 4000)

	var total int
	for _, p := range parts {
		total += len(strings.ReplaceAll(p, " ", ""))
	}
	want := len(strings.ReplaceAll(text, " ", ""))
	if total != want {
		t.Errorf("Content lost in split: got %d non-space bytes, want %d", total, want)
	}
}

func TestBatchParagraphs(t *testing.T) {
	paragraphs := []string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
	}

	batches := batchParagraphs(paragraphs, 100)
	if len(batches) != 2 {
		t.Fatalf("Expected 2 batches, got %d", len(batches))
	}
	if len(batches[0]) != 2 || len(batches[1]) != 1 {
		t.Errorf("Unexpected batch shapes: %d and %d", len(batches[0]), len(batches[1]))
	}
}

func TestBatchParagraphsOversizedParagraph(t *testing.T) {
	batches := batchParagraphs([]string{strings.Repeat("x", 500)}, 100)
	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Errorf("Oversized paragraph must form its own batch: %v", len(batches))
	}
}
