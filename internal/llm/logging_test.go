package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vatly/vatly/internal/store"
)

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"title":"Đề"}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 80},
	})
	repo := &recordingRepo{}
	p := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), "quiz-gen")
	_, err := p.Generate(ctx, Request{
		System: "sys",
		Messages: []Message{{
			Role:    RoleUser,
			Content: "Giải bài",
			Images:  []Image{{MIMEType: "image/png", Data: []byte("1234")}},
		}},
		Schema: testSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Provider != "mock" || ev.Purpose != "quiz-gen" || !ev.Success {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.InputTokens != 120 || ev.OutputTokens != 80 {
		t.Fatalf("unexpected tokens: %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	for _, want := range []string{"[system]", "[user]", "[image: image/png, 4 bytes]", "[schema: test-measurement]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
}

func TestLoggingProvider_RecordsFailureAndIgnoresRepoError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(mock, repo)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("expected failed event, got %+v", repo.events)
	}
	if repo.events[0].Purpose != "unknown" {
		t.Fatalf("expected unknown purpose, got %q", repo.events[0].Purpose)
	}
}

func TestLoggingProvider_KeepsRejectedOutput(t *testing.T) {
	bad := json.RawMessage(`{"quantity":"Lực"}`)
	mock := NewMockProvider(MockResponse{Err: &ErrInvalidResponse{Content: bad, Err: errors.New("value missing")}})
	repo := &recordingRepo{}

	_, err := WithLogging(mock, repo).Generate(WithPurpose(context.Background(), PurposeQuizGen), Request{Schema: testSchema()})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].ResponseBody != string(bad) {
		t.Fatalf("expected rejected output in event, got %+v", repo.events)
	}
}

func TestTranscript(t *testing.T) {
	got := transcript(Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hỏi"}, {Role: RoleAssistant, Content: "đáp"}},
	})
	want := "[system]\nsys\n\n[user]\nhỏi\n\n[assistant]\nđáp\n"
	if got != want {
		t.Fatalf("transcript = %q, want %q", got, want)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected cost for gemini-2.5-flash")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-2.8) > 1e-9 {
		t.Fatalf("expected 2.8, got %v", got)
	}
	if LookupCost("google/gemini-2.5-flash") == nil {
		t.Fatal("expected vendor-prefixed id to resolve")
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
