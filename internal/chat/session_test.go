package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatly/vatly/internal/llm"
)

func reply(text string) llm.MockResponse {
	b, _ := json.Marshal(text)
	return llm.MockResponse{Content: b}
}

func TestNewSession_Welcome(t *testing.T) {
	s := NewSession(llm.NewMockProvider(), DefaultConfig())

	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, RoleModel, tr[0].Role)
	assert.Equal(t, WelcomeMessage, tr[0].Text)
	assert.Empty(t, s.History())
	assert.NotEmpty(t, s.ID)
}

func TestSend_TextTurn(t *testing.T) {
	mock := llm.NewMockProvider(reply("Gia tốc là $a = \\frac{\\Delta v}{\\Delta t}$."))
	s := NewSession(mock, DefaultConfig())

	got, err := s.Send(context.Background(), "Gia tốc là gì?")
	require.NoError(t, err)
	assert.Equal(t, RoleModel, got.Role)
	assert.Equal(t, "Gia tốc là $a = \\frac{\\Delta v}{\\Delta t}$.", got.Text)

	tr := s.Transcript()
	require.Len(t, tr, 3, "welcome + one user + one model")
	assert.Equal(t, RoleUser, tr[1].Role)
	assert.Equal(t, "Gia tốc là gì?", tr[1].Text)
	assert.Equal(t, got.ID, tr[2].ID)
	assert.NotEqual(t, tr[1].ID, tr[2].ID)

	hist := s.History()
	require.Len(t, hist, 2)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "Gia tốc là gì?"}, hist[0])
	assert.Equal(t, llm.RoleAssistant, hist[1].Role)
	assert.Equal(t, got.Text, hist[1].Content)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, 0.7, req.Temperature)
	assert.Contains(t, req.System, "Vật lý THPT")
	assert.Len(t, req.Messages, 1, "welcome message is never replayed")
	assert.Nil(t, req.Schema)
	assert.Equal(t, []string{llm.PurposeChat}, mock.Purposes)
}

func TestSend_ReplaysHistory(t *testing.T) {
	mock := llm.NewMockProvider(reply("Một"), reply("Hai"))
	s := NewSession(mock, DefaultConfig())
	ctx := context.Background()

	_, err := s.Send(ctx, "Câu một")
	require.NoError(t, err)
	img := llm.Image{MIMEType: "image/png", Data: []byte("png")}
	_, err = s.Send(ctx, "Câu hai", img)
	require.NoError(t, err)

	second := mock.Calls[1].Messages
	require.Len(t, second, 3)
	assert.Equal(t, "Câu một", second[0].Content)
	assert.Equal(t, "Một", second[1].Content)
	assert.Equal(t, []llm.Image{img}, second[2].Images)

	// The first recorded request is not mutated by later turns.
	assert.Len(t, mock.Calls[0].Messages, 1)
	assert.Len(t, s.History(), 4)
}

func TestSend_FailureKeepsHistoryClean(t *testing.T) {
	mock := llm.NewMockProvider(
		reply("Được"),
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}},
	)
	s := NewSession(mock, DefaultConfig())
	ctx := context.Background()

	_, err := s.Send(ctx, "Xin chào")
	require.NoError(t, err)

	got, err := s.Send(ctx, "Lực là gì?")
	var chatErr *ChatError
	require.ErrorAs(t, err, &chatErr)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, FailureReply, got.Text)

	tr := s.Transcript()
	require.Len(t, tr, 5)
	assert.Equal(t, "Lực là gì?", tr[3].Text)
	assert.Equal(t, FailureReply, tr[4].Text)

	assert.Len(t, s.History(), 2, "failed turn is not replayed")
	assert.False(t, s.Busy())
}

func TestSend_EmptyMessage(t *testing.T) {
	mock := llm.NewMockProvider()
	s := NewSession(mock, DefaultConfig())

	_, err := s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, s.Transcript(), 1)
	assert.Zero(t, mock.CallCount())
}

func TestSend_ImageOnly(t *testing.T) {
	mock := llm.NewMockProvider(reply("Đây là bài toán ném ngang."))
	s := NewSession(mock, DefaultConfig())

	_, err := s.Send(context.Background(), "", llm.Image{MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}})
	require.NoError(t, err)
	assert.Len(t, s.History(), 2)
}

func TestSend_EmptyReplyFallback(t *testing.T) {
	s := NewSession(llm.NewMockProvider(reply("")), DefaultConfig())

	got, err := s.Send(context.Background(), "Hỏi")
	require.NoError(t, err)
	assert.Equal(t, EmptyReply, got.Text)
}

type gateProvider struct {
	started chan struct{}
	release chan struct{}
}

func (g *gateProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	close(g.started)
	<-g.release
	return &llm.Response{Content: json.RawMessage(`"xong"`)}, nil
}

func (g *gateProvider) ModelID() string { return "gate" }

func TestSend_OneTurnAtATime(t *testing.T) {
	g := &gateProvider{started: make(chan struct{}), release: make(chan struct{})}
	s := NewSession(g, DefaultConfig())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.Send(context.Background(), "Câu đầu")
		assert.NoError(t, err)
	}()

	<-g.started
	assert.True(t, s.Busy())
	_, err := s.Send(context.Background(), "Câu thứ hai")
	assert.ErrorIs(t, err, ErrTurnInFlight)

	close(g.release)
	wg.Wait()
	assert.False(t, s.Busy())
	assert.Len(t, s.Transcript(), 3)
}
