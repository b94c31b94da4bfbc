package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/recall/internal/quiz"
)

// Validator checks a generated question. Implementations are stateless.
type Validator interface {
	// Name is a short identifier used in errors and logs.
	Name() string

	Validate(q quiz.Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxQuestionLen = 500
	maxOptionLen   = 200
)

// StructuralValidator checks shape and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q quiz.Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}
	if err := q.Validate(); err != nil {
		return fail(err.Error())
	}
	if len(q.Text) > maxQuestionLen {
		return fail(fmt.Sprintf("question exceeds %d characters", maxQuestionLen))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail(fmt.Sprintf("option %d is empty", i+1))
		}
		if len(opt) > maxOptionLen {
			return fail(fmt.Sprintf("option %d exceeds %d characters", i+1, maxOptionLen))
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions whose options repeat, which
// would make index grading ambiguous to the patient.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q quiz.Question) *ValidationError {
	seen := make(map[string]int, len(q.Options))
	for i, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if j, dup := seen[key]; dup {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("options %d and %d are the same", j+1, i+1),
			}
		}
		seen[key] = i
	}
	return nil
}
