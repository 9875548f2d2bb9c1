package domain

import "time"

// SummaryResult is the output of one summarization call.
type SummaryResult struct {
	Body     string
	Keywords []string
}

// SummaryRecord is the document persisted to the summaries collection after a
// summary is produced. Persistence is a fire-and-forget side effect; the
// pipeline does not depend on it.
type SummaryRecord struct {
	TelegramID      int64     `bson:"telegram_id" json:"telegram_id"`
	URL             string    `bson:"url,omitempty" json:"url,omitempty"`
	Summary         string    `bson:"summary" json:"summary"`
	OriginalContent []string  `bson:"original_content,omitempty" json:"original_content,omitempty"`
	Language        string    `bson:"language" json:"language"`
	Timestamp       time.Time `bson:"timestamp" json:"timestamp"`
}
