package keywords

import (
	"sort"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// DefaultMax is the default number of keywords returned.
const DefaultMax = 8

// allowedTags are the part-of-speech tags keywords may carry: nouns, proper
// nouns and verbs. Everything else (determiners, pronouns, adpositions,
// numerals) is noise for a keyword list.
var allowedTags = map[string]bool{
	"NN": true, "NNS": true, "NNP": true, "NNPS": true,
	"VB": true, "VBD": true, "VBG": true, "VBN": true, "VBP": true, "VBZ": true,
}

// Extract returns up to max salient keywords from text, ranked by frequency
// over noun/verb/proper-noun tokens. Ties break by first occurrence so the
// output order is deterministic. Returns nil when tagging fails or nothing
// qualifies.
func Extract(text string, max int) []string {
	if max <= 0 {
		max = DefaultMax
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil
	}

	type entry struct {
		display string
		count   int
		first   int
	}
	seen := make(map[string]*entry)

	for i, tok := range doc.Tokens() {
		if !allowedTags[tok.Tag] {
			continue
		}
		word := strings.Trim(tok.Text, ".,!?;:\"'()[]")
		if len([]rune(word)) < 2 {
			continue
		}

		key := strings.ToLower(word)
		if e, ok := seen[key]; ok {
			e.count++
			continue
		}
		seen[key] = &entry{display: word, count: 1, first: i}
	}

	entries := make([]*entry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].first < entries[j].first
	})

	if len(entries) > max {
		entries = entries[:max]
	}

	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.display
	}
	return result
}
