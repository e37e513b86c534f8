// ABOUTME: Per-request orchestration: history, retrieval, generation, memory update
// ABOUTME: Session memory is appended only after generation fully succeeds
package rag

import (
	"context"
	"log"

	"github.com/acmecloud/askdocs/internal/fault"
	"github.com/acmecloud/askdocs/internal/models"
	"github.com/acmecloud/askdocs/internal/session"
)

// Retriever is the vector-store capability consumed by the assistant.
type Retriever interface {
	Query(ctx context.Context, text string, topK int) ([]models.RetrievedChunk, error)
}

// Answer is the outcome of one question.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []string `json:"source,omitempty"`
}

// Assistant serves independent conversational sessions over one document
// collection.
type Assistant struct {
	retriever Retriever
	sessions  *session.Store
	generator *Generator
	topK      int
}

// NewAssistant wires retrieval, session memory, and generation.
func NewAssistant(retriever Retriever, sessions *session.Store, generator *Generator, topK int) *Assistant {
	return &Assistant{
		retriever: retriever,
		sessions:  sessions,
		generator: generator,
		topK:      topK,
	}
}

// Ask answers a question grounded in retrieved context: get history, query
// the index, generate, then record the exchange. On any failure the session
// is left unchanged.
func (a *Assistant) Ask(ctx context.Context, sessionID, question string) (*Answer, error) {
	if err := validateAsk(sessionID, question); err != nil {
		return nil, err
	}

	history := a.sessions.Get(sessionID)

	chunks, err := a.retriever.Query(ctx, question, a.topK)
	if err != nil {
		return nil, err
	}
	log.Printf("session %s: retrieved %d chunks", sessionID, len(chunks))

	text, err := a.generator.GenerateWithContext(ctx, question, chunks, history)
	if err != nil {
		return nil, err
	}

	a.sessions.AppendExchange(sessionID, question, text)

	return &Answer{Text: text, Sources: distinctSources(chunks)}, nil
}

// AskDirect answers without retrieval, with tool calling enabled, so the
// model can fetch reference documents on demand.
func (a *Assistant) AskDirect(ctx context.Context, sessionID, question string) (*Answer, error) {
	if err := validateAsk(sessionID, question); err != nil {
		return nil, err
	}

	history := a.sessions.Get(sessionID)

	text, err := a.generator.GenerateWithoutContext(ctx, question, history)
	if err != nil {
		return nil, err
	}

	a.sessions.AppendExchange(sessionID, question, text)

	return &Answer{Text: text}, nil
}

func validateAsk(sessionID, question string) error {
	if sessionID == "" {
		return fault.New(fault.KindValidation, "session_id is required")
	}
	if question == "" {
		return fault.New(fault.KindValidation, "question is required")
	}
	return nil
}

// distinctSources returns each chunk source once, in retrieval order.
func distinctSources(chunks []models.RetrievedChunk) []string {
	seen := make(map[string]bool, len(chunks))
	var sources []string
	for _, chunk := range chunks {
		s := chunk.Source()
		if !seen[s] {
			seen[s] = true
			sources = append(sources, s)
		}
	}
	return sources
}
