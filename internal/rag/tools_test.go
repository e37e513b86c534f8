// ABOUTME: Tests for the tool registry and the document-fetch tool
// ABOUTME: Covers dispatch wiring, error tagging, and document concatenation
package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/acmecloud/askdocs/internal/fault"
	"github.com/acmecloud/askdocs/internal/llm"
	"github.com/acmecloud/askdocs/internal/models"
)

type staticSource struct {
	docs []models.Document
	err  error
}

func (s staticSource) Load() ([]models.Document, error) {
	return s.docs, s.err
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	r.Register(llm.Tool{Name: "echo"}, func(ctx context.Context, args string) (string, error) {
		return "got " + args, nil
	})

	msg, err := r.Dispatch(context.Background(), llm.ToolCall{ID: "c9", Name: "echo", Arguments: "abc"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if msg.Role != llm.RoleTool || msg.ToolCallID != "c9" || msg.Content != "got abc" {
		t.Errorf("Dispatch() = %+v", msg)
	}
}

func TestRegistryDispatchUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Dispatch(context.Background(), llm.ToolCall{ID: "c1", Name: "nope"})
	if !fault.IsKind(err, fault.KindTool) {
		t.Errorf("Dispatch(unknown) error = %v, want tool kind", err)
	}
}

func TestRegistryDispatchHandlerError(t *testing.T) {
	sentinel := errors.New("boom")
	r := NewRegistry()
	r.Register(llm.Tool{Name: "broken"}, func(ctx context.Context, _ string) (string, error) {
		return "", sentinel
	})

	_, err := r.Dispatch(context.Background(), llm.ToolCall{Name: "broken"})
	if !fault.IsKind(err, fault.KindTool) {
		t.Errorf("error kind = %v, want tool", fault.KindOf(err))
	}
	if !errors.Is(err, sentinel) {
		t.Error("handler error not wrapped in chain")
	}
}

func TestFetchDocumentsTool(t *testing.T) {
	source := staticSource{docs: []models.Document{
		{Source: "a.txt", Text: "  First   doc.\n"},
		{Source: "empty.txt", Text: "   "},
		{Source: "b.txt", Text: "Second\tdoc."},
	}}

	tool, handler := FetchDocumentsTool(source)
	if tool.Name != ToolFetchDocuments {
		t.Errorf("tool.Name = %q", tool.Name)
	}

	out, err := handler(context.Background(), "{}")
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	want := "First doc. Second doc."
	if out != want {
		t.Errorf("handler output = %q, want %q", out, want)
	}
}

func TestFetchDocumentsToolSourceError(t *testing.T) {
	_, handler := FetchDocumentsTool(staticSource{err: errors.New("dir missing")})
	if _, err := handler(context.Background(), "{}"); err == nil {
		t.Error("expected source load error to propagate")
	}
}
