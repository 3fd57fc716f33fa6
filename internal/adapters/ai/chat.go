// Package ai abstracts LLM chat backends behind a provider-neutral
// contract: given a message history and tool schemas, a provider returns
// text and/or requested tool invocations.
package ai

import (
	"context"
	"strconv"
)

// ChatProvider is the contract every LLM backend satisfies.
type ChatProvider interface {
	// Name returns the provider identifier ("gemini", "openai", ...).
	Name() string

	// Chat sends a chat completion request with tool calling support.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// SupportsTools indicates whether tool/function calling is available.
	SupportsTools() bool
}

// ChatRequest represents a chat completion request.
type ChatRequest struct {
	Model        string
	SystemPrompt string
	Messages     []Message
	Tools        []ToolDefinition
	Temperature  float64
	MaxTokens    int
}

// MessageRole defines the role of a message sender.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// Message represents a single message in the conversation.
type Message struct {
	Role      MessageRole
	Content   string
	ToolCalls []ToolCall
	// ToolName, ToolCallID and ToolResult carry a tool response back to the model
	ToolName   string
	ToolCallID string
	ToolResult map[string]interface{}
}

// ToolDefinition describes a callable function exposed to the model.
// Parameters is a JSON schema.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]interface{}
}

// ChatResponse represents the model's reply for one round-trip.
type ChatResponse struct {
	Text      string
	ToolCalls []ToolCall
	Usage     Usage
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// callID synthesizes a stable identifier for the n-th tool call in a
// response, for backends that do not assign their own.
func callID(n int) string {
	return "call_" + strconv.Itoa(n)
}
