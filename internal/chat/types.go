package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/vatly/vatly/internal/llm"
)

// Role identifies who authored a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of the visible transcript.
type Message struct {
	ID        string      `json:"id"`
	Role      Role        `json:"role"`
	Text      string      `json:"text"`
	Images    []llm.Image `json:"images,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	// WelcomeMessage seeds every new transcript.
	WelcomeMessage = "Xin chào! Mình là Trợ lý Vật lý THPT. Bạn có thể dán ảnh bài tập (Ctrl+V), gửi file PDF, Word hoặc đặt câu hỏi trực tiếp tại đây."

	// FailureReply is appended to the transcript when a turn fails.
	FailureReply = "Xin lỗi, đã có lỗi xảy ra khi xử lý tệp hoặc tin nhắn. Vui lòng thử lại."

	// EmptyReply stands in for a model reply with no text.
	EmptyReply = "Xin lỗi, tôi không thể tạo câu trả lời vào lúc này."
)

var (
	// ErrEmptyMessage is returned for a turn with neither text nor images.
	ErrEmptyMessage = errors.New("message has no text or images")

	// ErrTurnInFlight is returned when a turn is sent while the previous
	// one is still waiting for the model.
	ErrTurnInFlight = errors.New("a chat turn is already in progress")

	// ErrUnsupportedAttachment is returned for files that are neither
	// images nor PDF/Word documents.
	ErrUnsupportedAttachment = errors.New("unsupported attachment")
)

// ChatError wraps a failed chat turn. The failed turn is never added to
// the replay history.
type ChatError struct {
	Err error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("chat turn failed: %v", e.Err)
}

func (e *ChatError) Unwrap() error { return e.Err }
