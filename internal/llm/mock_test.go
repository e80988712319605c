package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: quizJSON, Usage: Usage{InputTokens: 900, OutputTokens: 2400, TotalTokens: 3300}},
		MockText("Gia tốc là $a = \\frac{\\Delta v}{\\Delta t}$."),
	)
	require.Equal(t, 2, mock.Pending())

	first, err := mock.Generate(WithPurpose(context.Background(), PurposeQuizGen), Request{System: "quiz"})
	require.NoError(t, err)
	assert.JSONEq(t, string(quizJSON), string(first.Content))
	assert.Equal(t, 2400, first.Usage.OutputTokens)
	assert.Equal(t, "mock", first.Model)
	assert.Equal(t, "end", first.StopReason)

	second, err := mock.Generate(WithPurpose(context.Background(), PurposeChat), Request{
		Messages: []Message{{Role: RoleUser, Content: "Gia tốc là gì?"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gia tốc là $a = \\frac{\\Delta v}{\\Delta t}$.", second.Text())

	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "quiz", mock.Calls[0].System)
	assert.Equal(t, []string{PurposeQuizGen, PurposeChat}, mock.Purposes)
	assert.Zero(t, mock.Pending())
}

func TestMockProvider_DrainedQueue(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})

	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.ErrorIs(t, err, errMockDrained)
	assert.Equal(t, []string{PurposeUnknown}, mock.Purposes, "the failed call is still recorded")

	mock.Enqueue(MockText("Xin chào"))
	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Xin chào", resp.Text())
}

func TestMockProvider_ErrorAndModelOverride(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Content: quizJSON, Model: "gemini-2.5-flash"},
	)

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)

	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProvider_HoldBlocksUntilReleased(t *testing.T) {
	hold := make(chan struct{})
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`), Hold: hold})

	done := make(chan error, 1)
	go func() {
		_, err := mock.Generate(context.Background(), Request{})
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("call returned before release")
	case <-time.After(20 * time.Millisecond):
	}
	close(hold)
	require.NoError(t, <-done)
}

func TestPurposes(t *testing.T) {
	assert.Equal(t, PurposeUnknown, PurposeFrom(context.Background()))
	assert.Equal(t, PurposeUnknown, PurposeFrom(WithPurpose(context.Background(), "")))
	assert.Equal(t, PurposeChat, PurposeFrom(WithPurpose(context.Background(), PurposeChat)))

	assert.Equal(t, []string{"quiz-gen", "chat"}, Purposes())
	assert.True(t, KnownPurpose("quiz-gen"))
	assert.False(t, KnownPurpose("unknown"))
	assert.False(t, KnownPurpose("export"))
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ErrRateLimit{Err: errors.New("429")}, "llm: rate limited: 429"},
		{&ErrRateLimit{RetryAfter: 2 * time.Second, Err: errors.New("429")}, "llm: rate limited, retry in 2s: 429"},
		{&ErrProviderUnavailable{}, "llm: provider unavailable"},
		{&ErrProviderUnavailable{Err: errors.New("503")}, "llm: provider unavailable: 503"},
		{&ErrInvalidResponse{Err: errors.New("missing title")}, "llm: response does not match schema: missing title"},
		{&ErrMaxTokensExceeded{Content: json.RawMessage(`{"ti`)}, "llm: output truncated at max tokens (4 bytes received)"},
		{&ErrRequestRejected{Status: 401, Err: errors.New("bad key")}, "llm: request rejected (HTTP 401): bad key"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, retryNever, classify(context.Canceled))
	assert.Equal(t, retryNever, classify(context.DeadlineExceeded))
	assert.Equal(t, retryNever, classify(&ErrMaxTokensExceeded{}))
	assert.Equal(t, retryNever, classify(&ErrRequestRejected{Status: 401, Err: errors.New("bad key")}))
	assert.Equal(t, retryOnce, classify(&ErrInvalidResponse{Err: errors.New("x")}))
	assert.Equal(t, retryAlways, classify(&ErrRateLimit{}))
	assert.Equal(t, retryAlways, classify(&ErrProviderUnavailable{}))
	assert.Equal(t, retryAlways, classify(errors.New("connection reset")))
}
