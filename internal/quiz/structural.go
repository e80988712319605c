package quiz

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that required fields are present, ids run
// 1..n, and every type is a known value.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(r *Result, _ []RequestItem) *ValidationError {
	if strings.TrimSpace(r.Title) == "" {
		return v.fail("title is empty")
	}
	if len(r.Questions) == 0 {
		return v.fail("no questions returned")
	}
	for i, q := range r.Questions {
		if q.ID != i+1 {
			return v.fail(fmt.Sprintf("question %d has id %d, ids must run from 1 without gaps", i+1, q.ID))
		}
		if strings.TrimSpace(q.Content) == "" {
			return v.fail(fmt.Sprintf("question %d has empty content", q.ID))
		}
		if !q.Type.Valid() {
			return v.fail(fmt.Sprintf("question %d has unknown type %q", q.ID, q.Type))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
