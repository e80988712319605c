package builder

import "github.com/vatly/vatly/internal/quiz"

// generatedMsg is sent when a generation run finishes. runner names the
// builder that started the run; other builders drop it.
type generatedMsg struct {
	runner *quiz.Runner
	Result *quiz.Result
	Err    error
}
