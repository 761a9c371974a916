package chatbot

import (
	"context"
	"errors"

	"handyman-chat-be/pkg/store"
)

// ErrRunTimeout is returned when an assistant run does not reach a terminal
// state within the configured wall-clock bound. It is surfaced separately
// from absorbed failures so the API can report it as its own error.
var ErrRunTimeout = errors.New("assistant run did not complete in time")

// Reply is the outcome of one conversation turn.
type Reply struct {
	Text    string
	Results []store.SearchResult
}

// Engine decides how to answer a user message within a session. The two
// implementations (direct search, delegated assistant) are interchangeable;
// deployment config selects one.
type Engine interface {
	Respond(ctx context.Context, sess *store.Session, message string) (*Reply, error)
}
