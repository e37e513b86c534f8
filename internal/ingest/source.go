// ABOUTME: Document source collaborator that loads raw text from a folder
// ABOUTME: Extraction failure for one file yields empty text, which chunks to nothing
package ingest

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/acmecloud/askdocs/internal/models"
)

// Source yields (source name, raw text) pairs for ingestion. Raw text may be
// empty when extraction fails for a given source.
type Source interface {
	Load() ([]models.Document, error)
}

// DirSource reads plain-text and markdown files from a single folder.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source over the given folder.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Load reads every .txt and .md file in the folder. A file that cannot be
// read is included with empty text rather than failing the whole batch.
func (s *DirSource) Load() ([]models.Document, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading documents folder %q: %w", s.Dir, err)
	}

	var docs []models.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".txt" && ext != ".md" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(s.Dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: extracting %s failed: %v", entry.Name(), err)
			docs = append(docs, models.Document{Source: entry.Name()})
			continue
		}

		docs = append(docs, models.Document{Source: entry.Name(), Text: string(raw)})
	}

	return docs, nil
}
