package assistant

import "context"

// Status of an assistant run, polled until a terminal state.
type Status string

const (
	StatusQueued         Status = "queued"
	StatusInProgress     Status = "in_progress"
	StatusRequiresAction Status = "requires_action"
	StatusCompleted      Status = "completed"
	StatusFailed         Status = "failed"
	StatusCancelled      Status = "cancelled"
	StatusExpired        Status = "expired"
	StatusIncomplete     Status = "incomplete"
)

// Terminal reports whether the run can make no further progress on its own.
// requires_action is not terminal: the run resumes once tool outputs arrive.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusExpired, StatusIncomplete:
		return true
	}
	return false
}

// ToolCall is a structured request the assistant emits mid-run, asking the
// caller to execute a named capability and return its output.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON as sent by the assistant
}

// ToolOutput answers one ToolCall so the run can resume.
type ToolOutput struct {
	CallID string
	Output string
}

// Run is one invocation of the assistant against a thread.
type Run struct {
	ID        string
	Status    Status
	ToolCalls []ToolCall // populated while Status == requires_action
}

// Client defines the contract for any managed conversational-assistant
// backend (create thread, post message, run, poll, submit tool outputs).
type Client interface {
	// CreateThread opens a new durable conversation thread and returns its id.
	CreateThread(ctx context.Context) (string, error)

	// AddUserMessage appends a user turn to the thread.
	AddUserMessage(ctx context.Context, threadID, content string) error

	// StartRun launches the assistant against the thread, advertising the
	// search tool, and returns the run in its initial state.
	StartRun(ctx context.Context, threadID string) (*Run, error)

	// GetRun fetches the current state of a run.
	GetRun(ctx context.Context, threadID, runID string) (*Run, error)

	// SubmitToolOutputs answers the pending tool calls of a run.
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error

	// LatestAssistantMessage returns the text of the most recent assistant
	// message on the thread.
	LatestAssistantMessage(ctx context.Context, threadID string) (string, error)
}
