package store

import (
	"context"
	"time"
)

// Session event actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// AnswerEventData captures a single graded answer.
type AnswerEventData struct {
	SessionID       string
	QuestionIndex   int
	QuestionText    string
	Selected        int
	CorrectIndex    int
	Correct         bool
	HeartsRemaining int
}

// HintEventData captures one hint request and its outcome.
type HintEventData struct {
	SessionID    string
	Query        string
	VideoID      string
	Start        float64
	End          float64
	Source       string // "quiz", "ask" or "cli"
	Success      bool
	ErrorMessage string
}

// SessionEventData captures the start or end of a quiz session.
type SessionEventData struct {
	SessionID        string
	Action           string
	VideoID          string
	Total            int
	Score            int
	CorrectAnswers   int
	IncorrectAnswers int
	HintsUsed        int
	HeartsRemaining  int
	EndedEarly       bool
}

// SessionSummary is a finished session as listed by `recall history`.
type SessionSummary struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// RequestEventData captures one outbound call to the backend or an LLM.
type RequestEventData struct {
	Service      string // "backend" or "llm"
	Operation    string // endpoint path or LLM purpose
	Model        string // LLM provider/model, empty for backend calls
	StatusCode   int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEvent is a stored RequestEventData.
type RequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	RequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendHintEvent(ctx context.Context, data HintEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendRequest records an outbound API call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// RecentSessions returns the most recent finished sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// RecentRequests returns the most recent request events, newest first.
	RecentRequests(ctx context.Context, limit int) ([]RequestEvent, error)
}

// Discard is an EventRepo that drops every event and reports no history.
var Discard EventRepo = discardEvents{}

type discardEvents struct{}

func (discardEvents) AppendAnswerEvent(context.Context, AnswerEventData) error   { return nil }
func (discardEvents) AppendHintEvent(context.Context, HintEventData) error       { return nil }
func (discardEvents) AppendSessionEvent(context.Context, SessionEventData) error { return nil }
func (discardEvents) AppendRequest(context.Context, RequestEventData) error      { return nil }

func (discardEvents) RecentSessions(context.Context, int) ([]SessionSummary, error) {
	return nil, nil
}

func (discardEvents) RecentRequests(context.Context, int) ([]RequestEvent, error) {
	return nil, nil
}
