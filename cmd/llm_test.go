package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatly/vatly/internal/store"
)

// seedEvents writes a quiz batch, a failed quiz batch and a chat turn.
func seedEvents(t *testing.T, dbPath string) {
	t.Helper()
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	for _, e := range []store.LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz-gen", InputTokens: 1000, OutputTokens: 4000, LatencyMs: 9000, Success: true, ResponseBody: `{"title":"Đề","questions":[]}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz-gen", InputTokens: 1000, LatencyMs: 30000, ErrorMessage: "deadline exceeded"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chat", InputTokens: 200, OutputTokens: 100, LatencyMs: 1200, Success: true, ResponseBody: `"Lực $F = ma$."`},
	} {
		require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, e))
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestLLMListCommand_FailedQuizCalls(t *testing.T) {
	db := filepath.Join(t.TempDir(), "events.db")
	seedEvents(t, db)

	out, err := runRoot(t, "llm", "list", "--db", db, "--purpose", "quiz-gen", "--failed")
	require.NoError(t, err)
	assert.Contains(t, out, "Purpose")
	assert.Contains(t, out, "✗")
	assert.NotContains(t, out, "✓", "successful calls are filtered out")
	assert.NotContains(t, out, "chat")
}

func TestLLMUsageCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "events.db")
	seedEvents(t, db)

	out, err := runRoot(t, "llm", "usage", "--db", db)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")

	var quizLine, chatLine string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "quiz-gen"):
			quizLine = l
		case strings.Contains(l, "chat"):
			chatLine = l
		}
	}
	require.NotEmpty(t, quizLine)
	require.NotEmpty(t, chatLine)
	assert.Less(t, strings.Index(out, "quiz-gen"), strings.Index(out, "chat"), "quiz-gen is listed first")
	assert.Contains(t, quizLine, "2000")
	assert.Contains(t, quizLine, "4000")
	assert.Contains(t, out, "TOTAL")
	assert.NotContains(t, out, "No pricing")
}

func TestListOptions_RejectsUnknownPurpose(t *testing.T) {
	require.NoError(t, llmListCmd.Flags().Set("purpose", "export"))
	t.Cleanup(func() { _ = llmListCmd.Flags().Set("purpose", "") })

	_, _, err := listOptions(llmListCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quiz-gen, chat")
}

func TestSummarizeUsage(t *testing.T) {
	rows := []store.UsageRow{
		{Purpose: "chat", Model: "gemini-2.5-flash", Calls: 3, InputTokens: 1_000_000, OutputTokens: 0, AvgLatencyMs: 1000},
		{Purpose: "quiz-gen", Model: "gemini-2.5-flash", Calls: 1, Failures: 1, InputTokens: 0, OutputTokens: 1_000_000, AvgLatencyMs: 8000},
		{Purpose: "quiz-gen", Model: "local-llama", Calls: 3, InputTokens: 10, OutputTokens: 10, AvgLatencyMs: 4000},
		{Purpose: "unknown", Model: "gpt-4o-mini", Calls: 1, InputTokens: 1_000_000, AvgLatencyMs: 500},
	}

	got := summarizeUsage(rows)
	require.Len(t, got, 3)

	assert.Equal(t, "quiz-gen", got[0].Purpose)
	assert.Equal(t, 4, got[0].Calls)
	assert.Equal(t, 1, got[0].Failures)
	assert.Equal(t, int64(5000), got[0].AvgLatencyMs, "weighted by calls")
	assert.InDelta(t, 2.5, got[0].CostUSD, 1e-9)
	assert.True(t, got[0].Partial, "local-llama has no pricing")

	assert.Equal(t, "chat", got[1].Purpose)
	assert.InDelta(t, 0.3, got[1].CostUSD, 1e-9)
	assert.False(t, got[1].Partial)

	assert.Equal(t, "unknown", got[2].Purpose, "unlabelled calls come last")
	assert.Equal(t, []string{"local-llama"}, unpricedModels(rows))
}

func TestReplyText(t *testing.T) {
	assert.Equal(t, "Lực $F = ma$.", replyText("chat", `"Lực $F = ma$."`))
	assert.Equal(t, "{\n  \"title\": \"Đề\"\n}", replyText("quiz-gen", `{"title":"Đề"}`))
	assert.Equal(t, "not json", replyText("quiz-gen", "not json"))
	assert.Equal(t, `"raw"`, replyText("unknown", `"raw"`))
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, &store.LLMRequestEvent{
		ID:        42,
		Timestamp: time.Date(2026, 4, 10, 7, 0, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chat",
			InputTokens: 200, OutputTokens: 100, LatencyMs: 1200,
			ErrorMessage: "llm: provider unavailable: 503",
			RequestBody:  "[user]\nGia tốc là gì?\n",
		},
	})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Event 42 · chat · "))
	assert.Contains(t, out, "Result:  failed: llm: provider unavailable: 503")
	assert.Contains(t, out, "Gia tốc là gì?")
	assert.Contains(t, out, "(empty)", "no reply was recorded")
}
