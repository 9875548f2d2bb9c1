package conversation

import (
	"strings"
	"testing"

	"summarybot/pkg/domain"
)

func TestIdleSessionNeverFollowsUp(t *testing.T) {
	m := NewManager()
	if m.IsFollowUp(1, "為什麼？") {
		t.Error("Idle session must treat every message as fresh input")
	}
}

func TestShortQuestionIsFollowUpWhenActive(t *testing.T) {
	m := NewManager()
	m.Store(1, []string{"content"}, "summary", "https://example.com", domain.LangZhTW)

	if !m.IsFollowUp(1, "為什麼？") {
		t.Error("Short non-URL message on an active session must be a follow-up")
	}
}

func TestURLIsNeverFollowUp(t *testing.T) {
	m := NewManager()
	m.Store(1, []string{"content"}, "summary", "https://example.com", domain.LangZhTW)

	if m.IsFollowUp(1, "https://youtu.be/abc") {
		t.Error("URL must trigger fresh ingestion even while active")
	}
	if m.IsFollowUp(1, "www.example.com/next") {
		t.Error("Schemeless www URL must trigger fresh ingestion")
	}
}

func TestLongMessageIsNotFollowUp(t *testing.T) {
	m := NewManager()
	m.Store(1, []string{"content"}, "summary", "", domain.LangEN)

	long := strings.Repeat("a", 500)
	if m.IsFollowUp(1, long) {
		t.Error("Message at the length ceiling must be treated as fresh content")
	}
	if !m.IsFollowUp(1, strings.Repeat("a", 499)) {
		t.Error("Message just under the ceiling must be a follow-up")
	}
}

func TestFollowUpLengthCountsCharactersNotBytes(t *testing.T) {
	m := NewManager()
	m.Store(1, []string{"content"}, "summary", "", domain.LangZhTW)

	if !m.IsFollowUp(1, strings.Repeat("為", 200)) {
		t.Error("200-character non-URL message on an active session must be a follow-up")
	}
	if !m.IsFollowUp(1, strings.Repeat("為", 499)) {
		t.Error("499-character message must be a follow-up regardless of byte width")
	}
	if m.IsFollowUp(1, strings.Repeat("為", 500)) {
		t.Error("500-character message must be treated as fresh content")
	}
}

func TestStoreReplacesContextWholesale(t *testing.T) {
	m := NewManager()
	m.Store(1, []string{"first"}, "s1", "", domain.LangZhTW)
	m.AppendTurn(1, "q", "a")

	m.Store(1, []string{"second"}, "s2", "", domain.LangZhTW)

	conv := m.Get(1)
	if conv.Summary != "s2" {
		t.Errorf("Expected replaced summary, got %q", conv.Summary)
	}
	if len(conv.Turns) != 0 {
		t.Errorf("Replacement must discard prior turns, got %d", len(conv.Turns))
	}
}

func TestClearReturnsSessionToIdle(t *testing.T) {
	m := NewManager()
	m.Store(1, []string{"content"}, "s", "", domain.LangEN)
	m.Clear(1)

	if m.Get(1) != nil {
		t.Error("Expected nil context after clear")
	}
	if m.IsFollowUp(1, "why?") {
		t.Error("Cleared session must not follow up")
	}

	m.Clear(2) // clearing an idle session is fine
}

func TestAppendTurnRecordsPairs(t *testing.T) {
	m := NewManager()
	m.Store(1, []string{"content"}, "s", "", domain.LangEN)

	m.AppendTurn(1, "q1", "a1")
	m.AppendTurn(1, "q2", "a2")

	conv := m.Get(1)
	if len(conv.Turns) != 4 {
		t.Fatalf("Expected 4 turns, got %d", len(conv.Turns))
	}
	if conv.Turns[0].Role != domain.RoleUser || conv.Turns[0].Text != "q1" {
		t.Errorf("Unexpected first turn: %+v", conv.Turns[0])
	}
	if conv.Turns[3].Role != domain.RoleAssistant || conv.Turns[3].Text != "a2" {
		t.Errorf("Unexpected last turn: %+v", conv.Turns[3])
	}

	m.AppendTurn(9, "q", "a") // idle session, no-op
	if m.Get(9) != nil {
		t.Error("AppendTurn must not create a session")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager()
	m.Store(1, []string{"one"}, "s1", "", domain.LangZhTW)
	m.Store(2, []string{"two"}, "s2", "", domain.LangEN)

	m.Clear(1)
	if m.Get(2) == nil {
		t.Error("Clearing one session must not affect another")
	}
}
