// Package llm wraps the generative-text service behind a small interface so
// the pipeline can be exercised with fakes in tests.
package llm

import "context"

// Tool describes one function tool offered to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is one tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Turn is one assistant reply: free text, tool calls, or both.
type Turn struct {
	Content   string
	ToolCalls []ToolCall
}

// Conversation is an in-flight tool-calling exchange. Next issues one
// completion over the accumulated history; AppendToolResult feeds a tool
// outcome back before the following Next.
type Conversation interface {
	Next(ctx context.Context) (Turn, error)
	AppendToolResult(callID, content string)
}

// Client is the generative-text service boundary.
type Client interface {
	// CompleteJSON issues a single completion that must return a
	// JSON-shaped object.
	CompleteJSON(ctx context.Context, system, user string) (string, error)

	// StartConversation opens a tool-calling exchange seeded with a
	// system instruction and the user input.
	StartConversation(system, user string, tools []Tool) Conversation
}
