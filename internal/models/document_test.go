// ABOUTME: Tests for RetrievedChunk metadata accessors
// ABOUTME: Verifies source fallback and text lookup

package models

import "testing"

func TestRetrievedChunkSource(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
		want     string
	}{
		{"with source", map[string]string{MetaSource: "sla.pdf"}, "sla.pdf"},
		{"missing source", map[string]string{MetaText: "some text"}, "Unknown"},
		{"empty source", map[string]string{MetaSource: ""}, "Unknown"},
		{"nil metadata", nil, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := RetrievedChunk{Metadata: tt.metadata}
			if got := rc.Source(); got != tt.want {
				t.Errorf("Source() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetrievedChunkText(t *testing.T) {
	rc := RetrievedChunk{Metadata: map[string]string{MetaText: "Acme provides 99.9% uptime SLA."}}
	if got := rc.Text(); got != "Acme provides 99.9% uptime SLA." {
		t.Errorf("Text() = %q", got)
	}

	empty := RetrievedChunk{}
	if got := empty.Text(); got != "" {
		t.Errorf("Text() on empty metadata = %q, want empty", got)
	}
}
