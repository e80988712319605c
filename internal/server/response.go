package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vatly/vatly/internal/chat"
	"github.com/vatly/vatly/internal/quiz"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, code int, data any, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString(traceIDKey),
		Data:    data,
	})
}

func respondError(c *gin.Context, code int, message string, data any) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString(traceIDKey),
		Data:    data,
	})
}

// handleServiceError maps domain errors to HTTP status codes.
func handleServiceError(c *gin.Context, err error) {
	var genErr *quiz.GenerationError
	var chatErr *chat.ChatError

	switch {
	case errors.Is(err, quiz.ErrInvalidSelection),
		errors.Is(err, quiz.ErrEmptySelection),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrUnsupportedAttachment):
		respondError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, quiz.ErrGenerationInFlight),
		errors.Is(err, chat.ErrTurnInFlight):
		respondError(c, http.StatusConflict, err.Error(), nil)
	case errors.As(err, &genErr):
		slog.Error("quiz generation failed", "trace_id", c.GetString(traceIDKey), "error", err)
		respondError(c, http.StatusBadGateway, quiz.GenerationFailedMessage, nil)
	case errors.As(err, &chatErr):
		respondError(c, http.StatusBadGateway, chat.FailureReply, nil)
	default:
		slog.Error("unhandled error", "trace_id", c.GetString(traceIDKey), "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
