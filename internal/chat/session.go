package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vatly/vatly/internal/llm"
)

// Session owns one conversation: the visible transcript and the replay
// history resent to the model on every turn. It is safe for concurrent
// use but runs at most one turn at a time.
type Session struct {
	ID string

	provider llm.Provider
	cfg      Config
	now      func() time.Time

	mu         sync.Mutex
	busy       bool
	transcript []Message
	history    []llm.Message
}

// NewSession creates a session whose transcript starts with the welcome
// message. The welcome message is not part of the replay history.
func NewSession(provider llm.Provider, cfg Config) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		provider: provider,
		cfg:      cfg,
		now:      time.Now,
	}
	s.transcript = []Message{{
		ID:        "welcome",
		Role:      RoleModel,
		Text:      WelcomeMessage,
		Timestamp: s.now(),
	}}
	return s
}

// Send runs one chat turn. The user message is appended to the transcript
// immediately. On success the reply is appended to the transcript and both
// turns to the replay history. On failure an apologetic model message is
// appended to the transcript only and a *ChatError is returned together
// with that message.
func (s *Session) Send(ctx context.Context, text string, images ...llm.Image) (Message, error) {
	if strings.TrimSpace(text) == "" && len(images) == 0 {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Message{}, ErrTurnInFlight
	}
	s.busy = true
	s.transcript = append(s.transcript, s.message(RoleUser, text, images))

	turn := llm.Message{Role: llm.RoleUser, Content: text, Images: images}
	msgs := make([]llm.Message, 0, len(s.history)+1)
	msgs = append(msgs, s.history...)
	msgs = append(msgs, turn)
	s.mu.Unlock()

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeChat), llm.Request{
		System:      s.cfg.System,
		Messages:    msgs,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		slog.Warn("chat turn failed", "session", s.ID, "error", err)
		reply := s.message(RoleModel, FailureReply, nil)
		s.transcript = append(s.transcript, reply)
		return reply, &ChatError{Err: err}
	}

	text = resp.Text()
	if strings.TrimSpace(text) == "" {
		text = EmptyReply
	}
	reply := s.message(RoleModel, text, nil)
	s.transcript = append(s.transcript, reply)
	s.history = append(s.history, turn, llm.Message{Role: llm.RoleAssistant, Content: text})
	return reply, nil
}

func (s *Session) message(role Role, text string, images []llm.Image) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Images:    images,
		Timestamp: s.now(),
	}
}

// Transcript returns a copy of the visible messages, oldest first.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.transcript...)
}

// History returns a copy of the replay history.
func (s *Session) History() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.Message(nil), s.history...)
}

// Busy reports whether a turn is waiting for the model.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}
