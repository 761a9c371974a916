package chatbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handyman-chat-be/internal/constant"
	"handyman-chat-be/internal/pkg/logger"
	"handyman-chat-be/pkg/search"
	"handyman-chat-be/pkg/store"
)

// fakeProvider records queries and plays back a scripted result set.
type fakeProvider struct {
	results []store.SearchResult
	queries []string
}

func (f *fakeProvider) Search(ctx context.Context, query string) []store.SearchResult {
	f.queries = append(f.queries, query)
	return f.results
}

func TestShortInputSkipsSearch(t *testing.T) {
	provider := &fakeProvider{}
	engine := NewSearchEngine(provider, logger.NewNopLogger())
	sess := store.NewSession("s1", "witaj")

	for _, msg := range []string{"ok", "a", "  x  ", ""} {
		reply, err := engine.Respond(context.Background(), sess, msg)
		require.NoError(t, err)
		assert.Equal(t, constant.ShortInputResponse, reply.Text)
		assert.Empty(t, reply.Results)
	}

	assert.Empty(t, provider.queries, "provider must never be invoked for short input")
}

func TestQueryIsAugmentedWithKeywords(t *testing.T) {
	provider := &fakeProvider{results: []store.SearchResult{
		{Name: "Hydraulik Nowak", Phone: "601 234 567", Link: "http://example.pl"},
	}}
	engine := NewSearchEngine(provider, logger.NewNopLogger())
	sess := store.NewSession("s1", "witaj")

	reply, err := engine.Respond(context.Background(), sess, "hydraulik Kraków")
	require.NoError(t, err)

	require.Len(t, provider.queries, 1)
	assert.Equal(t, "hydraulik Kraków "+constant.SearchKeywords, provider.queries[0])

	assert.Equal(t, constant.ResultsFoundResponse, reply.Text)
	assert.Equal(t, provider.results, reply.Results)
}

func TestSentinelYieldsNothingFoundWithEmptyResults(t *testing.T) {
	for name, results := range map[string][]store.SearchResult{
		"no results sentinel": search.NoResultsSentinel(),
		"error sentinel":      search.ErrorSentinel(),
	} {
		t.Run(name, func(t *testing.T) {
			engine := NewSearchEngine(&fakeProvider{results: results}, logger.NewNopLogger())
			sess := store.NewSession("s1", "witaj")

			reply, err := engine.Respond(context.Background(), sess, "elektryk Gdańsk")
			require.NoError(t, err)
			assert.Equal(t, constant.NoResultsResponse, reply.Text)
			assert.Empty(t, reply.Results)

			// The turn is still recorded.
			history := sess.Transcript()
			require.Len(t, history, 3)
			assert.Equal(t, constant.NoResultsResponse, history[2].Content)
			assert.Empty(t, history[2].Results)
		})
	}
}

func TestHistoryGrowsByOnePairPerTurn(t *testing.T) {
	provider := &fakeProvider{results: []store.SearchResult{{Name: "Fachowiec", Phone: "601 234 567", Link: "http://x.pl"}}}
	engine := NewSearchEngine(provider, logger.NewNopLogger())
	sess := store.NewSession("s1", "witaj")

	const turns = 4
	for i := 0; i < turns; i++ {
		_, err := engine.Respond(context.Background(), sess, "elektryk Warszawa")
		require.NoError(t, err)
	}

	history := sess.Transcript()
	require.Len(t, history, 1+2*turns)
	assert.Equal(t, store.RoleBot, history[0].Role)
	for i := 1; i < len(history); i += 2 {
		assert.Equal(t, store.RoleUser, history[i].Role)
		assert.Equal(t, store.RoleBot, history[i+1].Role)
	}
}

func TestResultsAttachedToBotMessage(t *testing.T) {
	provider := &fakeProvider{results: []store.SearchResult{
		{Name: "A", Phone: "601 234 567", Link: "http://a.pl"},
		{Name: "B", Phone: "Brak numeru", Link: "http://b.pl"},
	}}
	engine := NewSearchEngine(provider, logger.NewNopLogger())
	sess := store.NewSession("s1", "witaj")

	_, err := engine.Respond(context.Background(), sess, "malarz Poznań")
	require.NoError(t, err)

	history := sess.Transcript()
	require.Len(t, history, 3)
	assert.Empty(t, history[1].Results)
	assert.Equal(t, provider.results, history[2].Results)
}
