// ABOUTME: MCP tool definitions and registration for the document assistant
// ABOUTME: Exposes ask_docs and search_docs over the Model Context Protocol
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/acmecloud/askdocs/internal/rag"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, assistant *rag.Assistant, retriever rag.Retriever, topK int) *Handlers {
	handlers := &Handlers{
		assistant: assistant,
		retriever: retriever,
		topK:      topK,
	}

	// 1. ask_docs - answer a question grounded in the document index
	server.AddTool(mcp.Tool{
		Name:        "ask_docs",
		Description: "Ask a question about the AcmeCloud documentation. The answer is grounded in retrieved document chunks and cites its sources.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation session ID for follow-up questions (default: 'mcp')",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskDocs)

	// 2. search_docs - raw similarity search without generation
	server.AddTool(mcp.Tool{
		Name:        "search_docs",
		Description: "Search the AcmeCloud document index and return the most similar chunks with scores, without generating an answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of chunks to return (default: 3)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchDocs)

	return handlers
}
