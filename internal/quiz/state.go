package quiz

import "fmt"

// State is the persisted quiz progress. Transition functions take a State
// by value and return the next one; nothing mutates a State in place.
type State struct {
	CurrentQuestionIndex int  `json:"currentQuestionIndex"`
	Score                int  `json:"score"`
	SelectedAnswer       *int `json:"selectedAnswer,omitempty"`
	HintsUsed            int  `json:"hintsUsed"`
	CorrectAnswers       int  `json:"correctAnswers"`
	IncorrectAnswers     int  `json:"incorrectAnswers"`
	HeartsRemaining      int  `json:"heartsRemaining"`

	// HintConsumed is true once a hint was shown for the current question.
	HintConsumed bool `json:"hintConsumed,omitempty"`

	// NoHeartsWarned is true once the out-of-hearts warning has fired.
	NoHeartsWarned bool `json:"noHeartsWarned,omitempty"`
}

// Outcome describes the result of a single submission.
type Outcome struct {
	Correct      bool
	Selected     int
	CorrectIndex int
	HeartLost    bool

	// OutOfHearts is set when a wrong answer arrived with no hearts left.
	// It is reported at most once per quiz.
	OutOfHearts bool
}

// NewState returns the state of a fresh quiz.
func NewState() State {
	return State{HeartsRemaining: MaxHearts}
}

// Answered returns how many questions have been graded.
func (s State) Answered() int {
	return s.CorrectAnswers + s.IncorrectAnswers
}

// Complete reports whether every question has been answered and advanced past.
func (s State) Complete(total int) bool {
	return s.CurrentQuestionIndex >= total
}

// Validate checks the invariants a restored state must satisfy for a quiz of total questions.
func (s State) Validate(total int) error {
	switch {
	case s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex > total:
		return fmt.Errorf("question index %d outside [0,%d]", s.CurrentQuestionIndex, total)
	case s.HeartsRemaining < 0 || s.HeartsRemaining > MaxHearts:
		return fmt.Errorf("hearts %d outside [0,%d]", s.HeartsRemaining, MaxHearts)
	case s.Score < 0 || s.HintsUsed < 0 || s.CorrectAnswers < 0 || s.IncorrectAnswers < 0:
		return fmt.Errorf("negative counter")
	case s.Score > s.CorrectAnswers:
		return fmt.Errorf("score %d exceeds correct answers %d", s.Score, s.CorrectAnswers)
	case s.SelectedAnswer != nil && (*s.SelectedAnswer < 0 || *s.SelectedAnswer >= OptionCount):
		return fmt.Errorf("selected answer %d out of range", *s.SelectedAnswer)
	}
	return nil
}

// Select records the chosen option for the current question.
func Select(s State, qs []Question, option int) (State, error) {
	if s.Complete(len(qs)) {
		return s, ErrComplete
	}
	q := qs[s.CurrentQuestionIndex]
	if option < 0 || option >= len(q.Options) {
		return s, ErrInvalidOption
	}
	s.SelectedAnswer = &option
	return s, nil
}

// Submit grades the selected option against the current question.
// The question index is not advanced; call Advance once feedback is done.
func Submit(s State, qs []Question) (State, Outcome, error) {
	if s.Complete(len(qs)) {
		return s, Outcome{}, ErrComplete
	}
	if s.SelectedAnswer == nil {
		return s, Outcome{}, ErrNoSelection
	}
	q := qs[s.CurrentQuestionIndex]
	selected := *s.SelectedAnswer
	if selected < 0 || selected >= len(q.Options) {
		return s, Outcome{}, ErrInvalidOption
	}

	out := Outcome{
		Correct:      selected == q.Correct,
		Selected:     selected,
		CorrectIndex: q.Correct,
	}

	if out.Correct {
		s.Score++
		s.CorrectAnswers++
		return s, out, nil
	}

	s.IncorrectAnswers++
	if s.HeartsRemaining > 0 {
		s.HeartsRemaining--
		out.HeartLost = true
	} else if !s.NoHeartsWarned {
		s.NoHeartsWarned = true
		out.OutOfHearts = true
	}
	return s, out, nil
}

// Advance moves to the next question and resets per-question fields.
func Advance(s State, total int) State {
	if s.Complete(total) {
		return s
	}
	s.CurrentQuestionIndex++
	s.SelectedAnswer = nil
	s.HintConsumed = false
	return s
}

// ConsumeHint marks the current question's hint as used. It returns false,
// leaving the state untouched, if the hint was already consumed.
func ConsumeHint(s State) (State, bool) {
	if s.HintConsumed {
		return s, false
	}
	s.HintConsumed = true
	s.HintsUsed++
	return s, true
}
