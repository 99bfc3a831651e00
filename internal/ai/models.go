// Package ai drives the conversational recommendation flow: an OpenAI
// chat-completions client, the tool schemas the model may invoke, and
// the orchestrator that bounds the exchange to one tool round-trip.
package ai

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one conversation turn in provider wire format.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a model-requested capability invocation.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolSchema declares one callable capability to the model.
type ToolSchema struct {
	Type     string         `json:"type"`
	Function FunctionSchema `json:"function"`
}

type FunctionSchema struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ChatClient is the LLM boundary: given turns and optional tool
// schemas it returns either a text answer or tool-invocation requests.
type ChatClient interface {
	ChatCompletion(ctx context.Context, messages []Message, tools []ToolSchema) (*Message, error)
}
