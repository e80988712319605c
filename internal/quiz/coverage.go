package quiz

import "fmt"

// CoverageValidator checks that the result answers the request: the
// question count equals the requested total and the questions follow the
// items in request order, each carrying the type of the item its position
// falls into.
type CoverageValidator struct{}

func (v *CoverageValidator) Name() string { return "coverage" }

func (v *CoverageValidator) Validate(r *Result, items []RequestItem) *ValidationError {
	if want := TotalQuestions(items); len(r.Questions) != want {
		return v.fail(fmt.Sprintf("got %d questions, requested %d", len(r.Questions), want))
	}

	pos := 0
	for n, it := range items {
		for range it.Quantity {
			q := r.Questions[pos]
			if q.Type != it.Type {
				return v.fail(fmt.Sprintf("question %d is %q, item %d (%s) asks for %q",
					pos+1, q.Type, n+1, it.LessonName, it.Type))
			}
			pos++
		}
	}
	return nil
}

func (v *CoverageValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
