// ABOUTME: Prompt texts and grounded-context assembly for generation requests
// ABOUTME: Context blocks cite each chunk's source and join chunks with a separator line
package rag

import (
	"fmt"
	"strings"

	"github.com/acmecloud/askdocs/internal/models"
)

// systemInstruction is the fixed persona for every generation request.
const systemInstruction = "You are a helpful AI assistant that helps people find information."

// contextSeparator divides retrieved chunks inside the context block.
const contextSeparator = "\n\n----------\n\n"

// buildContext concatenates the retrieved chunks into one block, each headed
// by its source, preserving the retrieval ranking order.
func buildContext(chunks []models.RetrievedChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("[Source: %s]\n%s", chunk.Source(), strings.TrimSpace(chunk.Text())))
	}
	return strings.Join(parts, contextSeparator)
}

// contextInstruction wraps the context block in the grounding directive.
func contextInstruction(contextBlock string) string {
	return fmt.Sprintf("You are provided with the following retrieved context. Use ONLY this context to answer the question. CONTEXT: %s", contextBlock)
}
