package qgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAskedTexts is the maximum number of already-asked questions
	// to include in the prompt for deduplication.
	MaxAskedTexts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&SkillScopeValidator{},
		},
		MaxTokens:     512,
		Temperature:   0.7,
		MaxAskedTexts: 10,
	}
}
