package domain

import "time"

// Language selects the output language for summaries and user-facing messages.
type Language string

const (
	LangZhTW Language = "zh-TW"
	LangEN   Language = "en"
)

// Supported reports whether the language code is one the bot can answer in.
func (l Language) Supported() bool {
	return l == LangZhTW || l == LangEN
}

// Turn is one follow-up exchange entry (a question or an answer).
type Turn struct {
	Role string
	Text string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationContext holds the most recently ingested content for one session,
// its summary, and a bounded history of follow-up turns. It is owned by exactly
// one session and replaced wholesale whenever a new ingestion completes.
type ConversationContext struct {
	OriginalContent []string
	Summary         string
	Source          string
	CreatedAt       time.Time
	Turns           []Turn
	Language        Language
}
