// ABOUTME: Sentence-bounded document chunking for vector ingestion
// ABOUTME: Greedily packs sentences into chunks under a character budget, never splitting a sentence
package ingest

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/acmecloud/askdocs/internal/models"
)

// chunkIDSpace seeds deterministic chunk IDs so re-ingesting the same
// document overwrites its existing entries instead of duplicating them.
var chunkIDSpace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// ChunkID derives a stable ID from a chunk's source and position.
func ChunkID(source string, index int) string {
	return uuid.NewSHA1(chunkIDSpace, []byte(source+"#"+strconv.Itoa(index))).String()
}

// Chunk splits each document's normalized text into sentence-aligned chunks
// of at most maxChars characters. Sentences are accumulated greedily with a
// single joining space; a sentence that alone exceeds maxChars is emitted as
// its own oversized chunk rather than split mid-sentence. Output order
// follows document and sentence order.
func Chunk(documents []models.Document, maxChars int) []models.Chunk {
	var chunks []models.Chunk

	for _, doc := range documents {
		idx := 0
		flush := func(text string) {
			text = strings.TrimSpace(text)
			if text == "" {
				return
			}
			chunks = append(chunks, models.Chunk{
				ID:       ChunkID(doc.Source, idx),
				Text:     text,
				Metadata: map[string]string{models.MetaSource: doc.Source},
			})
			idx++
		}

		var buf strings.Builder
		for _, sentence := range SplitSentences(doc.Text) {
			if buf.Len() > 0 && buf.Len()+1+len(sentence) > maxChars {
				flush(buf.String())
				buf.Reset()
			}
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(sentence)
		}
		flush(buf.String())
	}

	return chunks
}

// SplitSentences splits normalized text at sentence boundaries: after a run
// of terminal punctuation (. ! ?) followed by a space. Text without terminal
// punctuation is returned whole, so no content is ever dropped.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		// Consume the full punctuation run (handles "..." and "?!").
		for i+1 < len(runes) && isTerminal(runes[i+1]) {
			i++
		}
		if i+1 < len(runes) && runes[i+1] == ' ' {
			sentences = append(sentences, string(runes[start:i+1]))
			i++ // skip the boundary space
			start = i + 1
		}
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}

	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
