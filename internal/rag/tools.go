// ABOUTME: Tool registry binding model-callable functions to local handlers
// ABOUTME: Unknown tool names are an explicit error, never a silent skip
package rag

import (
	"context"
	"strings"

	"github.com/acmecloud/askdocs/internal/fault"
	"github.com/acmecloud/askdocs/internal/ingest"
	"github.com/acmecloud/askdocs/internal/llm"
)

// ToolFetchDocuments fetches the full text of every reference document.
const ToolFetchDocuments = "fetch_reference_documents"

// Handler executes one tool invocation and returns its output.
type Handler func(ctx context.Context, arguments string) (string, error)

// Registry is a fixed set of supported tools, each bound to a handler.
type Registry struct {
	defs     []llm.Tool
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a tool definition to its handler.
func (r *Registry) Register(tool llm.Tool, handler Handler) {
	r.defs = append(r.defs, tool)
	r.handlers[tool.Name] = handler
}

// Tools returns the definitions advertised to the model.
func (r *Registry) Tools() []llm.Tool {
	return r.defs
}

// Dispatch runs the handler matching the invocation's function name and
// returns a tool-result message with the invocation's ID. An unrecognized
// name or a failed handler is a tool error.
func (r *Registry) Dispatch(ctx context.Context, call llm.ToolCall) (llm.Message, error) {
	handler, ok := r.handlers[call.Name]
	if !ok {
		return llm.Message{}, fault.New(fault.KindTool, "no handler for tool %q", call.Name)
	}

	output, err := handler(ctx, call.Arguments)
	if err != nil {
		return llm.Message{}, fault.Wrap(fault.KindTool, err, "tool %q", call.Name)
	}
	return llm.ToolResult(call.ID, output), nil
}

// FetchDocumentsTool builds the one tool the assistant advertises: fetch the
// normalized text of all reference documents for questions the retrieved
// context cannot answer.
func FetchDocumentsTool(source ingest.Source) (llm.Tool, Handler) {
	tool := llm.Tool{
		Name:        ToolFetchDocuments,
		Description: "Fetch the full text of all available AcmeCloud reference documents.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
			"required":   []string{},
		},
	}

	handler := func(ctx context.Context, _ string) (string, error) {
		docs, err := source.Load()
		if err != nil {
			return "", err
		}

		var sb strings.Builder
		for _, doc := range docs {
			text := ingest.Normalize(doc.Text)
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
		return sb.String(), nil
	}

	return tool, handler
}
