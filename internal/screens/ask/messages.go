package ask

import (
	"github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/voice"
)

// voiceMsg is one update from the recognizer session seq. Closed is set
// when the result channel ended.
type voiceMsg struct {
	seq    int
	Result voice.Result
	Closed bool
}

// listenTimeoutMsg fires when listening session seq hits its time limit.
type listenTimeoutMsg struct {
	seq int
}

// queryMsg carries everything fetched for one question.
type queryMsg struct {
	Query     string
	Hint      *quiz.TimingHint
	HintErr   error
	Raw       map[string]any
	TextErr   error
	Answer    string
	AnswerErr error
}
