// ABOUTME: Tests for client construction and message conversion helpers
// ABOUTME: Wire-level behavior is exercised through fakes in the rag package

package llm

import (
	"testing"

	"github.com/acmecloud/askdocs/internal/fault"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	if err == nil {
		t.Fatal("NewClient() without API key should fail")
	}
	if !fault.IsKind(err, fault.KindModel) {
		t.Errorf("error kind = %v, want model", fault.KindOf(err))
	}
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.chatModel != DefaultChatModel {
		t.Errorf("chatModel = %q, want %q", c.chatModel, DefaultChatModel)
	}
	if c.embeddingModel != DefaultEmbeddingModel {
		t.Errorf("embeddingModel = %q, want %q", c.embeddingModel, DefaultEmbeddingModel)
	}
	if c.temperature != DefaultTemperature {
		t.Errorf("temperature = %v, want %v", c.temperature, DefaultTemperature)
	}
}

func TestToOpenAIMessages(t *testing.T) {
	calls := []ToolCall{{ID: "call_1", Name: "fetch_reference_documents", Arguments: "{}"}}
	messages := []Message{
		SystemMessage("be helpful"),
		UserMessage("what is the SLA?"),
		AssistantToolCalls(calls),
		ToolResult("call_1", "document text"),
	}

	out := toOpenAIMessages(messages)
	if len(out) != 4 {
		t.Fatalf("got %d messages, want 4", len(out))
	}

	if out[0].Role != RoleSystem || out[0].Content != "be helpful" {
		t.Errorf("system message = %+v", out[0])
	}
	if out[1].Role != RoleUser {
		t.Errorf("user role = %q", out[1].Role)
	}

	assistant := out[2]
	if assistant.Role != RoleAssistant || assistant.Content != "" {
		t.Errorf("assistant tool-call message should have empty content, got %+v", assistant)
	}
	if len(assistant.ToolCalls) != 1 || assistant.ToolCalls[0].ID != "call_1" {
		t.Errorf("assistant tool calls = %+v", assistant.ToolCalls)
	}
	if assistant.ToolCalls[0].Function.Name != "fetch_reference_documents" {
		t.Errorf("tool call function = %q", assistant.ToolCalls[0].Function.Name)
	}

	result := out[3]
	if result.Role != RoleTool || result.ToolCallID != "call_1" || result.Content != "document text" {
		t.Errorf("tool result message = %+v", result)
	}
}
