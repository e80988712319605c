package quiz

// Validator checks a generated result against the items it was requested
// for. Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs,
	// e.g. "structural", "options", "coverage".
	Name() string

	// Validate returns nil if the result passes.
	Validate(r *Result, items []RequestItem) *ValidationError
}
