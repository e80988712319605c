package quiz

import (
	"fmt"
	"strings"
)

// OptionsValidator enforces the per-type option contract: 4 options and a
// letter answer for multiple choice, 4 sub-statements for true/false, no
// options for short answer.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(r *Result, _ []RequestItem) *ValidationError {
	for _, q := range r.Questions {
		if want := q.Type.OptionCount(); len(q.Options) != want {
			return v.fail(fmt.Sprintf("question %d (%s) has %d options, want %d", q.ID, q.Type, len(q.Options), want))
		}
		answer := strings.TrimSpace(q.CorrectAnswer)
		if answer == "" {
			return v.fail(fmt.Sprintf("question %d has no correct answer", q.ID))
		}
		if q.Type == MultipleChoice && !isOptionLetter(answer) {
			return v.fail(fmt.Sprintf("question %d answer %q is not one of A, B, C, D", q.ID, q.CorrectAnswer))
		}
	}
	return nil
}

func (v *OptionsValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}

func isOptionLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'D'
}
