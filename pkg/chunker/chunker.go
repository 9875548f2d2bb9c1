package chunker

import "strings"

// DefaultBudget is the default maximum chunk length in characters.
const DefaultBudget = 2100

// Chunk packs the words of text into ordered chunks of at most budget
// characters, joined by single spaces. Boundaries fall only between words:
// a single word longer than the budget is never split and forms its own
// (oversized) chunk. Joining all chunks with single spaces reproduces the
// whitespace-normalized word sequence of the input.
func Chunk(text string, budget int) []string {
	if budget <= 0 {
		budget = DefaultBudget
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, len(text)/budget+1)
	var current strings.Builder

	for _, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}

		// Appending word plus one separator would exceed the budget:
		// close the current chunk and start a new one with this word.
		if current.Len()+1+len(word) > budget {
			chunks = append(chunks, current.String())
			current.Reset()
			current.WriteString(word)
			continue
		}

		current.WriteByte(' ')
		current.WriteString(word)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
