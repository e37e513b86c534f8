// ABOUTME: Document, Chunk, and RetrievedChunk types for the ingestion and retrieval pipeline
// ABOUTME: Chunks carry provenance metadata from the source document through the vector index
package models

// Metadata keys attached to every indexed chunk.
const (
	MetaSource = "source"
	MetaText   = "text"
)

// Document is a named source with its normalized text. Produced by the
// extraction collaborator, consumed once by the chunker, not retained.
type Document struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Chunk is a sentence-aligned span of a document's text, bounded by the
// chunker's character budget except when a single sentence exceeds it.
type Chunk struct {
	ID       string            `json:"id"`
	Text     string            `json:"chunk_text"`
	Metadata map[string]string `json:"metadata"`
}

// RetrievedChunk is a chunk re-derived from the vector index at query time,
// ranked by similarity to the query.
type RetrievedChunk struct {
	ID       string            `json:"id"`
	Score    float32           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

// Source returns the chunk's provenance, or "Unknown" if the metadata
// was stored without one.
func (rc RetrievedChunk) Source() string {
	if s := rc.Metadata[MetaSource]; s != "" {
		return s
	}
	return "Unknown"
}

// Text returns the chunk's stored text content.
func (rc RetrievedChunk) Text() string {
	return rc.Metadata[MetaText]
}
