package store

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned by repositories when a session id is
// unknown or already expired.
var ErrSessionNotFound = errors.New("session not found")

// SearchResult is a single candidate professional extracted from a search
// response. Fields carry Polish placeholders when the source data is missing.
type SearchResult struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Link  string `json:"link"`
}

// Message is one entry of a session transcript.
type Message struct {
	Role      string         `json:"role"` // "user" | "bot"
	Content   string         `json:"content"`
	Results   []SearchResult `json:"results,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Session represents the active conversation state held in memory.
// History is append-only; ThreadID is set at most once per session.
type Session struct {
	ID        string    `json:"id"`
	History   []Message `json:"history"`
	CreatedAt time.Time `json:"created_at"`
	ThreadID  string    `json:"thread_id,omitempty"`

	mu sync.Mutex
}

// NewSession builds a session seeded with the given welcome message.
func NewSession(id, welcome string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		History: []Message{
			{Role: RoleBot, Content: welcome, CreatedAt: now},
		},
	}
}

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Append adds a message to the transcript in arrival order.
func (s *Session) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, msg)
}

// AppendPair records a completed turn (user message + bot reply) atomically
// so two racing turns cannot interleave inside a pair.
func (s *Session) AppendPair(user, bot Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, user, bot)
}

// SetThreadID assigns the external thread handle once. The first writer wins;
// the stored id is returned so racing callers converge on one thread.
func (s *Session) SetThreadID(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ThreadID == "" {
		s.ThreadID = id
	}
	return s.ThreadID
}

// GetThreadID returns the current thread handle, empty if not yet created.
func (s *Session) GetThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ThreadID
}

// Transcript returns a snapshot copy of the history.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.History))
	copy(out, s.History)
	return out
}
