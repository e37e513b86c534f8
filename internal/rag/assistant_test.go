// ABOUTME: Tests for per-request orchestration and session memory discipline
// ABOUTME: Failures anywhere in the chain must leave the session unchanged
package rag

import (
	"context"
	"testing"

	"github.com/acmecloud/askdocs/internal/fault"
	"github.com/acmecloud/askdocs/internal/llm"
	"github.com/acmecloud/askdocs/internal/models"
	"github.com/acmecloud/askdocs/internal/session"
)

type fakeRetriever struct {
	chunks []models.RetrievedChunk
	err    error

	lastQuery string
	lastTopK  int
}

func (f *fakeRetriever) Query(ctx context.Context, text string, topK int) ([]models.RetrievedChunk, error) {
	f.lastQuery = text
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}

func newTestAssistant(retriever *fakeRetriever, model Completer) (*Assistant, *session.Store) {
	sessions := session.NewStore(session.DefaultMaxTurns)
	generator := NewGenerator(model, NewRegistry())
	return NewAssistant(retriever, sessions, generator, 3), sessions
}

func TestAskGroundedAnswer(t *testing.T) {
	retriever := &fakeRetriever{chunks: []models.RetrievedChunk{
		retrieved("sla.txt", "The SLA is 99.9%."),
		retrieved("sla.txt", "Credits accrue beyond that."),
		retrieved("pricing.txt", "Plans start at $5."),
	}}
	model := &fakeModel{responses: []*llm.Completion{{Content: "99.9%, with credits beyond."}}}
	assistant, sessions := newTestAssistant(retriever, model)

	answer, err := assistant.Ask(context.Background(), "s1", "what is the SLA?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer.Text != "99.9%, with credits beyond." {
		t.Errorf("answer.Text = %q", answer.Text)
	}

	wantSources := []string{"sla.txt", "pricing.txt"}
	if len(answer.Sources) != len(wantSources) {
		t.Fatalf("Sources = %v, want %v", answer.Sources, wantSources)
	}
	for i, want := range wantSources {
		if answer.Sources[i] != want {
			t.Errorf("Sources[%d] = %q, want %q (distinct, retrieval order)", i, answer.Sources[i], want)
		}
	}

	if retriever.lastQuery != "what is the SLA?" || retriever.lastTopK != 3 {
		t.Errorf("retriever called with (%q, %d)", retriever.lastQuery, retriever.lastTopK)
	}

	turns := sessions.Get("s1")
	if len(turns) != 2 {
		t.Fatalf("session has %d turns after success, want 2", len(turns))
	}
	if turns[0].Role != models.RoleUser || turns[0].Content != "what is the SLA?" {
		t.Errorf("turns[0] = %+v", turns[0])
	}
	if turns[1].Role != models.RoleAssistant || turns[1].Content != "99.9%, with credits beyond." {
		t.Errorf("turns[1] = %+v", turns[1])
	}
}

func TestAskValidation(t *testing.T) {
	assistant, _ := newTestAssistant(&fakeRetriever{}, &fakeModel{})

	tests := []struct {
		name      string
		sessionID string
		question  string
	}{
		{"empty session", "", "q"},
		{"empty question", "s1", ""},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assistant.Ask(context.Background(), tt.sessionID, tt.question)
			if !fault.IsKind(err, fault.KindValidation) {
				t.Errorf("Ask(%q, %q) error = %v, want validation", tt.sessionID, tt.question, err)
			}
		})
	}
}

func TestAskRetrievalFailureLeavesSessionUnchanged(t *testing.T) {
	retriever := &fakeRetriever{err: fault.New(fault.KindEmbedding, "backend down")}
	model := &fakeModel{responses: []*llm.Completion{{Content: "never reached"}}}
	assistant, sessions := newTestAssistant(retriever, model)

	if _, err := assistant.Ask(context.Background(), "s1", "hello?"); !fault.IsKind(err, fault.KindEmbedding) {
		t.Fatalf("Ask() error = %v, want embedding kind", err)
	}
	if turns := sessions.Get("s1"); len(turns) != 0 {
		t.Errorf("session has %d turns after failure, want 0", len(turns))
	}
	if len(model.requests) != 0 {
		t.Errorf("model called %d times after retrieval failure, want 0", len(model.requests))
	}

	// Recovery on the next request starts from the same clean history.
	retriever.err = nil
	retriever.chunks = []models.RetrievedChunk{retrieved("faq.txt", "Hi!")}
	if _, err := assistant.Ask(context.Background(), "s1", "hello?"); err != nil {
		t.Fatalf("Ask() after recovery error = %v", err)
	}
	if turns := sessions.Get("s1"); len(turns) != 2 {
		t.Errorf("session has %d turns after recovery, want 2", len(turns))
	}
}

func TestAskGenerationFailureLeavesSessionUnchanged(t *testing.T) {
	retriever := &fakeRetriever{chunks: []models.RetrievedChunk{retrieved("a.txt", "text")}}
	model := &fakeModel{err: fault.New(fault.KindModel, "overloaded")}
	assistant, sessions := newTestAssistant(retriever, model)

	if _, err := assistant.Ask(context.Background(), "s1", "q"); !fault.IsKind(err, fault.KindModel) {
		t.Fatalf("Ask() error = %v, want model kind", err)
	}
	if turns := sessions.Get("s1"); len(turns) != 0 {
		t.Errorf("session has %d turns after model failure, want 0", len(turns))
	}
}

func TestAskHistoryFlowsIntoRequest(t *testing.T) {
	retriever := &fakeRetriever{chunks: []models.RetrievedChunk{retrieved("a.txt", "text")}}
	model := &fakeModel{responses: []*llm.Completion{
		{Content: "first answer"},
		{Content: "second answer"},
	}}
	assistant, _ := newTestAssistant(retriever, model)

	if _, err := assistant.Ask(context.Background(), "s1", "first?"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if _, err := assistant.Ask(context.Background(), "s1", "second?"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	second := model.requests[1]
	// system, context, prior user, prior assistant, current user
	if len(second) != 5 {
		t.Fatalf("second request has %d messages, want 5", len(second))
	}
	if second[2].Content != "first?" || second[3].Content != "first answer" {
		t.Errorf("second request history = %q / %q", second[2].Content, second[3].Content)
	}
}

func TestAskSessionsAreIndependent(t *testing.T) {
	retriever := &fakeRetriever{chunks: []models.RetrievedChunk{retrieved("a.txt", "text")}}
	model := &fakeModel{responses: []*llm.Completion{{Content: "a"}, {Content: "b"}}}
	assistant, sessions := newTestAssistant(retriever, model)

	if _, err := assistant.Ask(context.Background(), "alice", "q1"); err != nil {
		t.Fatal(err)
	}
	if _, err := assistant.Ask(context.Background(), "bob", "q2"); err != nil {
		t.Fatal(err)
	}

	// bob's request must not carry alice's history.
	if len(model.requests[1]) != 3 {
		t.Errorf("bob's request has %d messages, want system + context + user", len(model.requests[1]))
	}
	if got := sessions.Get("alice"); len(got) != 2 {
		t.Errorf("alice has %d turns, want 2", len(got))
	}
}

func TestAskDirectSkipsRetrieval(t *testing.T) {
	retriever := &fakeRetriever{err: fault.New(fault.KindIndex, "must not be called")}
	model := &fakeModel{responses: []*llm.Completion{{Content: "from the model's own knowledge"}}}
	assistant, sessions := newTestAssistant(retriever, model)

	answer, err := assistant.AskDirect(context.Background(), "s1", "q")
	if err != nil {
		t.Fatalf("AskDirect() error = %v", err)
	}
	if answer.Text != "from the model's own knowledge" {
		t.Errorf("answer.Text = %q", answer.Text)
	}
	if answer.Sources != nil {
		t.Errorf("AskDirect returned sources %v, want none", answer.Sources)
	}
	if retriever.lastQuery != "" {
		t.Error("AskDirect queried the retriever")
	}
	if turns := sessions.Get("s1"); len(turns) != 2 {
		t.Errorf("session has %d turns, want 2", len(turns))
	}
}
