package conversation

import (
	"sync"
	"time"
	"unicode/utf8"

	"summarybot/pkg/classify"
	"summarybot/pkg/domain"
)

// followUpMaxLen is the length ceiling for the follow-up heuristic. Short
// non-URL messages sent while a context is active are treated as questions
// about that context; anything longer is fresh content to summarize. The
// heuristic misclassifies short standalone text pasted mid-conversation, a
// known trade-off.
const followUpMaxLen = 500

// Manager tracks per-session conversation contexts. A session is Idle until
// content is ingested, Active while a context exists, and Idle again after a
// clear. Ingesting new content while Active replaces the context wholesale.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*domain.ConversationContext
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*domain.ConversationContext)}
}

// Store replaces the session's context with a fresh one built from the
// ingested content. Any prior context and its follow-up turns are discarded.
func (m *Manager) Store(sessionID int64, content []string, summary, source string, lang domain.Language) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = &domain.ConversationContext{
		OriginalContent: content,
		Summary:         summary,
		Source:          source,
		CreatedAt:       time.Now(),
		Language:        lang,
	}
}

// Get returns the session's active context, or nil when the session is idle.
func (m *Manager) Get(sessionID int64) *domain.ConversationContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionID]
}

// Clear drops the session's context, returning it to the idle state. Clearing
// an idle session is a no-op.
func (m *Manager) Clear(sessionID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// AppendTurn records a question/answer pair on the session's context. Idle
// sessions are left untouched.
func (m *Manager) AppendTurn(sessionID int64, question, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	conv.Turns = append(conv.Turns,
		domain.Turn{Role: domain.RoleUser, Text: question},
		domain.Turn{Role: domain.RoleAssistant, Text: answer},
	)
}

// IsFollowUp reports whether msg should be answered against the session's
// active context instead of being ingested as new content. True only when the
// session is active, msg is not a URL and msg is shorter than followUpMaxLen.
func (m *Manager) IsFollowUp(sessionID int64, msg string) bool {
	m.mu.Lock()
	_, active := m.sessions[sessionID]
	m.mu.Unlock()

	if !active {
		return false
	}
	if classify.IsURL(msg) {
		return false
	}
	return utf8.RuneCountInString(msg) < followUpMaxLen
}
