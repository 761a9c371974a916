package chatbot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handyman-chat-be/internal/constant"
	"handyman-chat-be/internal/pkg/logger"
	"handyman-chat-be/pkg/assistant"
	"handyman-chat-be/pkg/search"
	"handyman-chat-be/pkg/store"
)

// AssistantEngine delegates each turn to a managed assistant: it lazily
// creates a conversation thread per session, posts the user message, starts
// a run, and polls it to completion, answering tool calls along the way.
type AssistantEngine struct {
	client       assistant.Client
	tools        *ToolRegistry
	log          logger.ILogger
	pollInterval time.Duration
	runTimeout   time.Duration
}

// Ensure AssistantEngine implements Engine
var _ Engine = &AssistantEngine{}

func NewAssistantEngine(
	client assistant.Client,
	provider search.Provider,
	log logger.ILogger,
	pollInterval, runTimeout time.Duration,
) *AssistantEngine {
	tools := NewToolRegistry()
	tools.Register(SearchToolName, NewSearchToolHandler(provider))

	return &AssistantEngine{
		client:       client,
		tools:        tools,
		log:          log,
		pollInterval: pollInterval,
		runTimeout:   runTimeout,
	}
}

// Respond runs one assistant turn. A timeout is surfaced as ErrRunTimeout;
// every other failure is absorbed into the fixed apology reply. Failed
// turns are not recorded in history.
func (e *AssistantEngine) Respond(ctx context.Context, sess *store.Session, message string) (*Reply, error) {
	text, err := e.runTurn(ctx, sess, message)
	if err != nil {
		if errors.Is(err, ErrRunTimeout) {
			return nil, err
		}
		e.log.Error("chatbot", "assistant turn failed", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
		return &Reply{Text: constant.SearchErrorResponse, Results: []store.SearchResult{}}, nil
	}

	now := time.Now()
	sess.AppendPair(
		store.Message{Role: store.RoleUser, Content: message, CreatedAt: now},
		store.Message{Role: store.RoleBot, Content: text, CreatedAt: now},
	)
	return &Reply{Text: text, Results: []store.SearchResult{}}, nil
}

func (e *AssistantEngine) runTurn(ctx context.Context, sess *store.Session, message string) (string, error) {
	threadID, err := e.ensureThread(ctx, sess)
	if err != nil {
		return "", err
	}

	if err := e.client.AddUserMessage(ctx, threadID, message); err != nil {
		return "", fmt.Errorf("post user turn: %w", err)
	}

	run, err := e.client.StartRun(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}

	return e.pollRun(ctx, sess.ID, threadID, run)
}

// ensureThread returns the session's external thread, creating it on first
// use. The id is assigned at most once; a racing creator reuses whichever
// id landed first.
func (e *AssistantEngine) ensureThread(ctx context.Context, sess *store.Session) (string, error) {
	if id := sess.GetThreadID(); id != "" {
		return id, nil
	}

	created, err := e.client.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}

	id := sess.SetThreadID(created)
	if id != created {
		e.log.Warn("chatbot", "discarding duplicate thread", map[string]interface{}{
			"session_id": sess.ID,
			"kept":       id,
			"discarded":  created,
		})
	}
	return id, nil
}

// pollRun drives the run state machine to a terminal state:
//
//	created → {queued|in_progress} → requires_action → ... → completed
//
// requires_action can recur once per batch of tool calls. The loop is
// bounded by the configured wall-clock timeout.
func (e *AssistantEngine) pollRun(ctx context.Context, sessionID, threadID string, run *assistant.Run) (string, error) {
	deadline := time.Now().Add(e.runTimeout)

	for {
		switch {
		case run.Status == assistant.StatusCompleted:
			text, err := e.client.LatestAssistantMessage(ctx, threadID)
			if err != nil {
				return "", fmt.Errorf("fetch final message: %w", err)
			}
			return text, nil

		case run.Status == assistant.StatusRequiresAction:
			outputs := make([]assistant.ToolOutput, 0, len(run.ToolCalls))
			for _, call := range run.ToolCalls {
				e.log.Info("chatbot", "dispatching tool call", map[string]interface{}{
					"session_id": sessionID,
					"run_id":     run.ID,
					"tool":       call.Name,
				})
				outputs = append(outputs, e.tools.Dispatch(ctx, call))
			}
			if err := e.client.SubmitToolOutputs(ctx, threadID, run.ID, outputs); err != nil {
				return "", fmt.Errorf("submit tool outputs: %w", err)
			}

		case run.Status.Terminal():
			// failed, cancelled, expired, incomplete
			return "", fmt.Errorf("run %s ended with status %s", run.ID, run.Status)
		}

		if time.Now().After(deadline) {
			e.log.Error("chatbot", "run polling exceeded deadline", map[string]interface{}{
				"session_id": sessionID,
				"run_id":     run.ID,
				"status":     string(run.Status),
				"timeout":    e.runTimeout.String(),
			})
			return "", ErrRunTimeout
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(e.pollInterval):
		}

		next, err := e.client.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return "", fmt.Errorf("poll run: %w", err)
		}
		run = next
	}
}
