package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when a selection cannot be queued.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrEmptySelection is returned when generation is requested with an
	// empty queue.
	ErrEmptySelection = errors.New("no request items queued")

	// ErrGenerationInFlight is returned when a generation is started while
	// another is still running.
	ErrGenerationInFlight = errors.New("a quiz generation is already in progress")

	// ErrRunnerClosed is returned for a generation that finished after its
	// runner was closed. The result is discarded.
	ErrRunnerClosed = errors.New("quiz runner closed")
)

// GenerationFailedMessage is shown to the user when generation fails.
const GenerationFailedMessage = "Không thể tạo bộ câu hỏi. Vui lòng thử lại."

// GenerationError wraps any failure of a generation call: provider
// errors, malformed output, or a failed validator.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate quiz: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError describes why a generated result was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func invalidSelection(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSelection, fmt.Sprintf(format, args...))
}
