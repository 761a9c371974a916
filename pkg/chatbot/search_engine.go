package chatbot

import (
	"context"
	"strings"
	"time"

	"handyman-chat-be/internal/constant"
	"handyman-chat-be/internal/pkg/logger"
	"handyman-chat-be/pkg/search"
	"handyman-chat-be/pkg/store"
)

// SearchEngine answers every substantial message by querying the search
// provider directly and wrapping the hits in a fixed reply.
type SearchEngine struct {
	provider search.Provider
	log      logger.ILogger
}

// Ensure SearchEngine implements Engine
var _ Engine = &SearchEngine{}

func NewSearchEngine(provider search.Provider, log logger.ILogger) *SearchEngine {
	return &SearchEngine{
		provider: provider,
		log:      log,
	}
}

// Respond never returns an error: provider failures arrive pre-absorbed as
// the sentinel result, and every turn still lands in the transcript.
func (e *SearchEngine) Respond(ctx context.Context, sess *store.Session, message string) (*Reply, error) {
	now := time.Now()
	userMsg := store.Message{Role: store.RoleUser, Content: message, CreatedAt: now}

	if len([]rune(strings.TrimSpace(message))) <= 2 {
		sess.AppendPair(userMsg, store.Message{
			Role:      store.RoleBot,
			Content:   constant.ShortInputResponse,
			CreatedAt: now,
		})
		return &Reply{Text: constant.ShortInputResponse, Results: []store.SearchResult{}}, nil
	}

	query := message + " " + constant.SearchKeywords
	results := e.provider.Search(ctx, query)

	if search.IsSentinel(results) {
		e.log.Info("chatbot", "search returned no candidates", map[string]interface{}{
			"session_id": sess.ID,
			"query":      query,
		})
		sess.AppendPair(userMsg, store.Message{
			Role:      store.RoleBot,
			Content:   constant.NoResultsResponse,
			CreatedAt: now,
		})
		return &Reply{Text: constant.NoResultsResponse, Results: []store.SearchResult{}}, nil
	}

	sess.AppendPair(userMsg, store.Message{
		Role:      store.RoleBot,
		Content:   constant.ResultsFoundResponse,
		Results:   results,
		CreatedAt: now,
	})
	return &Reply{Text: constant.ResultsFoundResponse, Results: results}, nil
}
