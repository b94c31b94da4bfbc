package quiz

import (
	qz "github.com/abhisek/recall/internal/quiz"
)

// startMsg triggers the one-time progress load.
type startMsg struct{}

// restartMsg begins the same question set again after the results screen.
type restartMsg struct{}

// questionsMsg carries freshly loaded questions.
type questionsMsg struct {
	Questions []qz.Question
	Err       error
}

// hintMsg carries the response to hint request seq for a question.
type hintMsg struct {
	seq   int
	Index int
	Query string
	Hint  *qz.TimingHint
	Err   error
}

// feedbackDoneMsg ends the feedback display for the feedback round seq.
type feedbackDoneMsg struct {
	seq int
}
