package quiz

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated result; the first
	// failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response. A full batch
	// can hold up to MaxQuantity questions per item with worked solutions.
	MaxTokens int

	// Temperature is kept low for precise academic content.
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
			&CoverageValidator{},
		},
		MaxTokens:   16384,
		Temperature: 0.4,
	}
}
