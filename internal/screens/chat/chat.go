// Package chat implements the tutor chat screen.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	sess "github.com/vatly/vatly/internal/chat"
	"github.com/vatly/vatly/internal/llm"
	"github.com/vatly/vatly/internal/screen"
	"github.com/vatly/vatly/internal/ui/components"
	"github.com/vatly/vatly/internal/ui/layout"
)

const (
	attachCommand = "/attach "
	clearCommand  = "/clear"
	inputLimit    = 2000
)

// Screen is the chat screen. It owns one chat session for as long as the
// screen is on the stack.
type Screen struct {
	session *sess.Session
	input   components.TextInput
	spinner spinner.Model

	pending []sess.Attachment
	sending bool
	scroll  int // lines scrolled up from the bottom
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)

// New creates a chat screen with a fresh session.
func New(provider llm.Provider, cfg sess.Config) *Screen {
	return &Screen{
		session: sess.NewSession(provider, cfg),
		input:   components.NewTextInput("Nhập câu hỏi Vật lý... (/attach <tệp> để đính kèm)", inputLimit),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.sending = false
		s.scroll = 0
		var chatErr *sess.ChatError
		switch {
		case msg.Err == nil, errors.As(msg.Err, &chatErr):
			// The reply or the apology is already in the transcript.
		default:
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case attachedMsg:
		if msg.Err != nil {
			s.errMsg = "Không thể đính kèm: " + msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.pending = append(s.pending, msg.Attachment)
		return s, nil

	case spinner.TickMsg:
		if !s.sending {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "pgup":
			s.scroll += 5
			return s, nil
		case "pgdown":
			s.scroll -= 5
			if s.scroll < 0 {
				s.scroll = 0
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit handles the input line: a command, or a new turn. Submits while a
// turn is in flight are ignored.
func (s *Screen) submit() tea.Cmd {
	if s.sending {
		return nil
	}
	line := s.input.Value()

	switch {
	case strings.HasPrefix(line, attachCommand):
		s.input.Reset()
		return readAttachment(strings.TrimSpace(strings.TrimPrefix(line, attachCommand)))
	case line == clearCommand:
		s.input.Reset()
		s.pending = nil
		s.errMsg = ""
		return nil
	}

	text, images := sess.Compose(line, s.pending...)
	if strings.TrimSpace(text) == "" && len(images) == 0 {
		s.errMsg = "Vui lòng nhập câu hỏi hoặc đính kèm ảnh."
		return nil
	}

	s.input.Reset()
	s.pending = nil
	s.errMsg = ""
	s.sending = true
	session := s.session

	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		reply, err := session.Send(context.Background(), text, images...)
		return replyMsg{Reply: reply, Err: err}
	})
}

func readAttachment(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return attachedMsg{Err: err}
		}
		att, err := sess.Attach(filepath.Base(path), data)
		if err != nil {
			slog.Debug("attachment rejected", "path", path, "error", err)
		}
		return attachedMsg{Attachment: att, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Trợ lý Vật lý"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Gửi"},
		{Key: "PgUp/PgDn", Description: "Cuộn"},
		{Key: "Esc", Description: "Quay lại"},
	}
}
