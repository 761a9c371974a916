package search

import (
	"context"

	"handyman-chat-be/pkg/store"
)

// Provider defines the contract for any keyword-search backend.
//
// Search never returns an error: transport or parse failures are absorbed
// into a single sentinel result so the conversation flow stays alive.
type Provider interface {
	Search(ctx context.Context, query string) []store.SearchResult
}

// Sentinel names used when a search yields nothing usable.
const (
	SentinelNoResults = "Brak wyników"
	SentinelError     = "Błąd"
	notAvailable      = "N/A"
)

// NoResultsSentinel signals a valid response with zero items.
func NoResultsSentinel() []store.SearchResult {
	return []store.SearchResult{{Name: SentinelNoResults, Phone: notAvailable, Link: notAvailable}}
}

// ErrorSentinel signals a failed search without raising an error.
func ErrorSentinel() []store.SearchResult {
	return []store.SearchResult{{Name: SentinelError, Phone: notAvailable, Link: notAvailable}}
}

// IsSentinel reports whether results carry no real candidates, i.e. the
// provider signalled "no results" or "error" instead of returning items.
func IsSentinel(results []store.SearchResult) bool {
	if len(results) == 0 {
		return true
	}
	if len(results) == 1 {
		name := results[0].Name
		return name == SentinelNoResults || name == SentinelError
	}
	return false
}
