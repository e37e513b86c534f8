// ABOUTME: One-shot ingestion pipeline: load documents, normalize, chunk, upsert
// ABOUTME: Batch upsert is at-least-once; deterministic chunk IDs make re-runs idempotent
package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/acmecloud/askdocs/internal/models"
)

// Upserter stores chunks in the vector index.
type Upserter interface {
	Upsert(ctx context.Context, chunks []models.Chunk) (int, error)
}

// Pipeline drives a single ingestion pass.
type Pipeline struct {
	source   Source
	store    Upserter
	maxChars int
}

// NewPipeline wires a document source to a vector store.
func NewPipeline(source Source, store Upserter, maxChars int) *Pipeline {
	return &Pipeline{source: source, store: store, maxChars: maxChars}
}

// Run loads all documents, normalizes and chunks them, and upserts the
// resulting chunks. It returns the number of chunks written. A partial
// failure mid-batch leaves previously written entries committed.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	docs, err := p.source.Load()
	if err != nil {
		return 0, fmt.Errorf("loading documents: %w", err)
	}
	log.Printf("Loaded %d documents", len(docs))

	for i := range docs {
		docs[i].Text = Normalize(docs[i].Text)
	}

	chunks := Chunk(docs, p.maxChars)
	log.Printf("Created %d chunks", len(chunks))
	if len(chunks) == 0 {
		return 0, nil
	}

	n, err := p.store.Upsert(ctx, chunks)
	if err != nil {
		return n, fmt.Errorf("upserting chunks: %w", err)
	}
	return n, nil
}
