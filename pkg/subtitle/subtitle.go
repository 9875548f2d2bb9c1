package subtitle

import (
	"regexp"
	"strings"
)

// Patterns for the timed-caption (WEBVTT) format: the header line, cue timing
// lines and optional numeric cue indices.
var (
	headerPattern = regexp.MustCompile(`(?m)^WEBVTT.*\n?`)
	timingPattern = regexp.MustCompile(`(?m)^\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}.*\n?`)
	indexPattern  = regexp.MustCompile(`(?m)^\d+\n`)
	blankPattern  = regexp.MustCompile(`\n+`)
)

// Normalize strips a timed-caption document down to its plain spoken text:
// the header, cue timing lines and numeric cue indices are removed, and runs
// of blank lines collapse to single newlines. Normalize is idempotent.
func Normalize(captions string) string {
	s := strings.ReplaceAll(captions, "\r\n", "\n")
	s = headerPattern.ReplaceAllString(s, "")
	s = timingPattern.ReplaceAllString(s, "")
	s = blankPattern.ReplaceAllString(s, "\n")
	s = indexPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
