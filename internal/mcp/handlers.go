// ABOUTME: MCP tool handler implementations for the document assistant
// ABOUTME: Argument errors become tool-result errors, never protocol failures
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/acmecloud/askdocs/internal/rag"
)

// defaultSessionID groups MCP calls that do not carry their own session.
const defaultSessionID = "mcp"

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	assistant *rag.Assistant
	retriever rag.Retriever
	topK      int
}

// AskDocs handles the ask_docs tool.
func (h *Handlers) AskDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	sessionID := request.GetString("session_id", defaultSessionID)

	answer, err := h.assistant.Ask(ctx, sessionID, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}

	payload, err := json.Marshal(answer)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode answer: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// SearchDocs handles the search_docs tool.
func (h *Handlers) SearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	topK := request.GetInt("top_k", h.topK)

	chunks, err := h.retriever.Query(ctx, query, topK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	type hit struct {
		Source string  `json:"source"`
		Text   string  `json:"text"`
		Score  float32 `json:"score"`
	}
	hits := make([]hit, 0, len(chunks))
	for _, chunk := range chunks {
		hits = append(hits, hit{Source: chunk.Source(), Text: chunk.Text(), Score: chunk.Score})
	}

	payload, err := json.Marshal(map[string]any{"results": hits})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
