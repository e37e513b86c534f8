// ABOUTME: ResponseGenerator: grounded and tool-augmented generation with one-round tool resolution
// ABOUTME: Failures from model, embedding, or tool handlers abort the request with their specific kind
package rag

import (
	"context"
	"strings"

	"github.com/acmecloud/askdocs/internal/llm"
	"github.com/acmecloud/askdocs/internal/models"
)

// Completer is the language-model capability consumed by the generator.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, tools []llm.Tool) (*llm.Completion, error)
}

// Generator composes model requests and resolves tool calls.
type Generator struct {
	model  Completer
	tools  *Registry
	system string
}

// NewGenerator wires a model capability and a tool registry.
func NewGenerator(model Completer, tools *Registry) *Generator {
	return &Generator{
		model:  model,
		tools:  tools,
		system: systemInstruction,
	}
}

// GenerateWithContext answers the query grounded in the retrieved chunks.
// Tool calling is not advertised in this mode, but a tool-call response is
// still resolved through the shared protocol.
func (g *Generator) GenerateWithContext(ctx context.Context, query string, chunks []models.RetrievedChunk, history []models.Turn) (string, error) {
	messages := []llm.Message{
		llm.SystemMessage(g.system),
		llm.SystemMessage(contextInstruction(buildContext(chunks))),
	}
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, llm.UserMessage(query))

	resp, err := g.model.Complete(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	if len(resp.ToolCalls) > 0 {
		return g.resolveToolCalls(ctx, query, resp.ToolCalls)
	}
	return strings.TrimSpace(resp.Content), nil
}

// GenerateWithoutContext answers the query without retrieved context and
// advertises the registry's tools, letting the model fetch reference
// documents when it judges external knowledge is needed.
func (g *Generator) GenerateWithoutContext(ctx context.Context, query string, history []models.Turn) (string, error) {
	messages := []llm.Message{llm.SystemMessage(g.system)}
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, llm.UserMessage(query))

	resp, err := g.model.Complete(ctx, messages, g.tools.Tools())
	if err != nil {
		return "", err
	}
	if len(resp.ToolCalls) > 0 {
		return g.resolveToolCalls(ctx, query, resp.ToolCalls)
	}
	return strings.TrimSpace(resp.Content), nil
}

// resolveToolCalls executes each invocation and issues one follow-up model
// call carrying the results. A second round of tool calls in the follow-up is
// not resolved; its content is returned as-is.
func (g *Generator) resolveToolCalls(ctx context.Context, query string, calls []llm.ToolCall) (string, error) {
	results := make([]llm.Message, 0, len(calls))
	for _, call := range calls {
		result, err := g.tools.Dispatch(ctx, call)
		if err != nil {
			return "", err
		}
		results = append(results, result)
	}

	followup := []llm.Message{
		llm.SystemMessage(g.system),
		llm.UserMessage(query),
		llm.AssistantToolCalls(calls),
	}
	followup = append(followup, results...)

	resp, err := g.model.Complete(ctx, followup, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

func historyMessages(history []models.Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: string(turn.Role), Content: turn.Content})
	}
	return messages
}
