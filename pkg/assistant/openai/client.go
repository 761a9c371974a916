package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"handyman-chat-be/pkg/assistant"
)

// SearchToolName is the function tool advertised on every run.
const SearchToolName = "searchGoogle"

// AssistantClient drives the OpenAI Assistants API (threads + runs).
type AssistantClient struct {
	client      openai.Client
	assistantID string
}

// Ensure AssistantClient implements assistant.Client
var _ assistant.Client = &AssistantClient{}

func NewAssistantClient(apiKey, assistantID string) *AssistantClient {
	return &AssistantClient{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		assistantID: assistantID,
	}
}

func (c *AssistantClient) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return thread.ID, nil
}

func (c *AssistantClient) AddUserMessage(ctx context.Context, threadID, content string) error {
	_, err := c.client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(content),
		},
	})
	if err != nil {
		return fmt.Errorf("add user message: %w", err)
	}
	return nil
}

func (c *AssistantClient) StartRun(ctx context.Context, threadID string) (*assistant.Run, error) {
	run, err := c.client.Beta.Threads.Runs.New(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: c.assistantID,
		Tools: []openai.AssistantToolUnionParam{
			{
				OfFunction: &openai.FunctionToolParam{
					Function: shared.FunctionDefinitionParam{
						Name:        SearchToolName,
						Description: openai.String("Wyszukuje lokalnych fachowców (złota rączka) dla podanego zapytania."),
						Parameters: shared.FunctionParameters{
							"type": "object",
							"properties": map[string]interface{}{
								"query": map[string]interface{}{
									"type":        "string",
									"description": "Zapytanie wyszukiwania, np. 'elektryk Warszawa'",
								},
							},
							"required": []string{"query"},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	return mapRun(run), nil
}

func (c *AssistantClient) GetRun(ctx context.Context, threadID, runID string) (*assistant.Run, error) {
	run, err := c.client.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return mapRun(run), nil
}

func (c *AssistantClient) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []assistant.ToolOutput) error {
	params := openai.BetaThreadRunSubmitToolOutputsParams{
		ToolOutputs: make([]openai.BetaThreadRunSubmitToolOutputsParamsToolOutput, 0, len(outputs)),
	}
	for _, out := range outputs {
		params.ToolOutputs = append(params.ToolOutputs, openai.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: openai.String(out.CallID),
			Output:     openai.String(out.Output),
		})
	}
	if _, err := c.client.Beta.Threads.Runs.SubmitToolOutputs(ctx, threadID, runID, params); err != nil {
		return fmt.Errorf("submit tool outputs: %w", err)
	}
	return nil
}

func (c *AssistantClient) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	page, err := c.client.Beta.Threads.Messages.List(ctx, threadID, openai.BetaThreadMessageListParams{
		Order: openai.BetaThreadMessageListParamsOrderDesc,
		Limit: openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}
	if len(page.Data) == 0 {
		return "", fmt.Errorf("thread %s has no messages", threadID)
	}
	msg := page.Data[0]
	for _, content := range msg.Content {
		if content.Type == "text" {
			return content.Text.Value, nil
		}
	}
	return "", fmt.Errorf("latest message on thread %s has no text content", threadID)
}

// mapRun converts the SDK run into the provider-agnostic shape. Pending tool
// calls are only attached while the run is waiting for action.
func mapRun(run *openai.Run) *assistant.Run {
	out := &assistant.Run{
		ID:     run.ID,
		Status: assistant.Status(run.Status),
	}
	if run.Status == openai.RunStatusRequiresAction {
		for _, tc := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
			out.ToolCalls = append(out.ToolCalls, assistant.ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
	}
	return out
}
