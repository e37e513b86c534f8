// ABOUTME: Role-tagged message, tool, and completion types for the chat capability
// ABOUTME: Keeps the orchestration core independent of the concrete OpenAI wire types
package llm

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one role-tagged entry in a chat request.
type Message struct {
	Role    string
	Content string

	// ToolCalls is set on an assistant message that requested tools.
	ToolCalls []ToolCall

	// ToolCallID ties a tool-role message to the invocation it answers.
	ToolCallID string
}

// ToolCall is a model-issued request to execute a named local capability.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Tool describes a callable function advertised to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Completion is the model's reply: either answer text or tool-call requests.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantToolCalls builds the assistant message that carries the original
// tool-call requests in a follow-up request. Content is deliberately empty.
func AssistantToolCalls(calls []ToolCall) Message {
	return Message{Role: RoleAssistant, ToolCalls: calls}
}

// ToolResult builds a tool-role message answering one invocation.
func ToolResult(toolCallID, output string) Message {
	return Message{Role: RoleTool, Content: output, ToolCallID: toolCallID}
}
