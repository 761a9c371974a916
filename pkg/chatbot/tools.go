package chatbot

import (
	"context"
	"encoding/json"
	"fmt"

	"handyman-chat-be/pkg/assistant"
	"handyman-chat-be/pkg/search"
)

// ToolHandler executes one named capability for the assistant and returns
// the serialized output to feed back into the run.
type ToolHandler func(ctx context.Context, argsJSON string) (string, error)

// ToolRegistry is a closed mapping from tool name to handler, built once at
// engine construction. Dispatch never fails the run: unknown tools and
// handler errors are answered with an explanatory output so the assistant
// can recover in-conversation.
type ToolRegistry struct {
	handlers map[string]ToolHandler
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{handlers: make(map[string]ToolHandler)}
}

func (r *ToolRegistry) Register(name string, handler ToolHandler) {
	r.handlers[name] = handler
}

func (r *ToolRegistry) Dispatch(ctx context.Context, call assistant.ToolCall) assistant.ToolOutput {
	handler, ok := r.handlers[call.Name]
	if !ok {
		return assistant.ToolOutput{
			CallID: call.ID,
			Output: fmt.Sprintf(`{"error": "unknown tool %q"}`, call.Name),
		}
	}
	output, err := handler(ctx, call.Arguments)
	if err != nil {
		return assistant.ToolOutput{
			CallID: call.ID,
			Output: fmt.Sprintf(`{"error": %q}`, err.Error()),
		}
	}
	return assistant.ToolOutput{CallID: call.ID, Output: output}
}

// SearchToolName must match the function tool advertised on the run.
const SearchToolName = "searchGoogle"

// NewSearchToolHandler adapts a search provider into a tool handler. The
// assistant crafts its own query, so no keyword augmentation happens here.
func NewSearchToolHandler(provider search.Provider) ToolHandler {
	return func(ctx context.Context, argsJSON string) (string, error) {
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return "", fmt.Errorf("parse searchGoogle arguments: %w", err)
		}
		if args.Query == "" {
			return "", fmt.Errorf("searchGoogle called without a query")
		}

		results := provider.Search(ctx, args.Query)
		payload, err := json.Marshal(results)
		if err != nil {
			return "", fmt.Errorf("serialize search results: %w", err)
		}
		return string(payload), nil
	}
}
