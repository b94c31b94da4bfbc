package quizgen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run on every generated question in order. A question
	// failing any of them is dropped from the quiz.
	Validators []Validator

	// QuestionCount is how many questions the prompt asks for.
	QuestionCount int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxTranscriptChars truncates very long transcripts before prompting.
	MaxTranscriptChars int
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
		},
		QuestionCount:      5,
		MaxTokens:          2048,
		Temperature:        0.4,
		MaxTranscriptChars: 24000,
	}
}
