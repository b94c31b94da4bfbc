package quiz

import (
	"errors"
	"fmt"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// MaxHearts is the number of lives a fresh quiz starts with.
const MaxHearts = 3

var (
	// ErrNoSelection is returned when an answer is confirmed before an option is selected.
	ErrNoSelection = errors.New("no option selected")

	// ErrInvalidOption is returned when an option index is outside the question's options.
	ErrInvalidOption = errors.New("invalid option")

	// ErrComplete is returned when a transition is attempted on a finished quiz.
	ErrComplete = errors.New("quiz complete")

	// ErrStaleRecord is returned by a ProgressStore asked to overwrite a newer record.
	ErrStaleRecord = errors.New("stale progress record")
)

// Question is a single multiple-choice quiz question. Correct is the index
// of the right option; text answers from the backend are normalized to an
// index before a Question is built.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	Correct      int      `json:"correct"`
	Hint         string   `json:"hint,omitempty"`
	VideoSegment string   `json:"videoSegment,omitempty"`
}

// Validate checks the question has a prompt, four options and a correct index among them.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question %q has %d options, want %d", q.Text, len(q.Options), OptionCount)
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("question %q: correct index %d out of range", q.Text, q.Correct)
	}
	return nil
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}

// ValidateAll validates a full question set.
func ValidateAll(qs []Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Phase is the controller's position in the quiz state machine.
type Phase int

const (
	PhaseLoading  Phase = iota // Waiting for question data
	PhaseResume                // Saved progress found, waiting for the user's choice
	PhaseQuestion              // Showing a question, collecting a selection
	PhaseFeedback              // Showing the graded answer
	PhaseResults               // Quiz finished
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseResume:
		return "resume"
	case PhaseQuestion:
		return "question"
	case PhaseFeedback:
		return "feedback"
	case PhaseResults:
		return "results"
	}
	return "unknown"
}

// TimingHint is the clip window returned by the hint backend.
type TimingHint struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	VideoID string  `json:"video_id"`
}

// Duration returns the clip length in seconds.
func (h TimingHint) Duration() float64 {
	return h.End - h.Start
}
