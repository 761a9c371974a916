package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"handyman-chat-be/internal/pkg/logger"
	"handyman-chat-be/pkg/store"
)

const (
	defaultBaseURL = "https://www.googleapis.com/customsearch/v1"
	maxResults     = 5
)

// phonePattern matches a loose phone number inside free text: optional
// leading +, a digit, 8-14 digits/spaces/hyphens, and a trailing digit.
var phonePattern = regexp.MustCompile(`\+?\d[\d\s-]{8,14}\d`)

// GoogleProvider queries the Google Custom Search JSON API.
type GoogleProvider struct {
	APIKey  string
	CX      string
	BaseURL string
	Client  *http.Client
	log     logger.ILogger
}

// Ensure GoogleProvider implements Provider
var _ Provider = &GoogleProvider{}

func NewGoogleProvider(apiKey, cx string, log logger.ILogger) *GoogleProvider {
	return &GoogleProvider{
		APIKey:  apiKey,
		CX:      cx,
		BaseURL: defaultBaseURL,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

// --- Response structs (internal to this package) ---

type googleSearchResponse struct {
	Items []googleSearchItem `json:"items"`
}

type googleSearchItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Search runs the query and maps up to 5 items. Failures of any kind are
// logged and collapsed into the error sentinel.
func (g *GoogleProvider) Search(ctx context.Context, query string) []store.SearchResult {
	params := url.Values{}
	params.Add("q", query)
	params.Add("key", g.APIKey)
	params.Add("cx", g.CX)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		g.logFailure("build request", query, err)
		return ErrorSentinel()
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		g.logFailure("transport", query, err)
		return ErrorSentinel()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logFailure("read body", query, err)
		return ErrorSentinel()
	}

	if resp.StatusCode != http.StatusOK {
		g.logFailure("upstream status", query, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
		return ErrorSentinel()
	}

	var result googleSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		g.logFailure("decode", query, err)
		return ErrorSentinel()
	}

	if len(result.Items) == 0 {
		return NoResultsSentinel()
	}

	items := result.Items
	if len(items) > maxResults {
		items = items[:maxResults]
	}

	results := make([]store.SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, store.SearchResult{
			Name:  fallback(item.Title, "Brak nazwy"),
			Phone: extractPhone(item.Snippet),
			Link:  fallback(item.Link, "Brak linku"),
		})
	}
	return results
}

func (g *GoogleProvider) logFailure(stage, query string, err error) {
	if g.log == nil {
		return
	}
	g.log.Error("search", "google search failed", map[string]interface{}{
		"stage": stage,
		"query": query,
		"error": err.Error(),
	})
}

// extractPhone scans snippet text for the first phone-like token.
func extractPhone(snippet string) string {
	if match := phonePattern.FindString(snippet); match != "" {
		return match
	}
	return "Brak numeru"
}

func fallback(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
