package backend

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/store"
)

// LoggingService is a decorator that records every backend call as a
// request event.
type LoggingService struct {
	inner     Service
	eventRepo store.EventRepo
}

// WithLogging wraps a Service with event logging.
func WithLogging(s Service, repo store.EventRepo) Service {
	return &LoggingService{inner: s, eventRepo: repo}
}

func (l *LoggingService) Transcript(ctx context.Context, video, index string) (string, error) {
	start := time.Now()
	t, err := l.inner.Transcript(ctx, video, index)
	l.record(ctx, PathTranscript, start, err)
	return t, err
}

func (l *LoggingService) Quiz(ctx context.Context, transcript string) ([]quiz.Question, error) {
	start := time.Now()
	qs, err := l.inner.Quiz(ctx, transcript)
	l.record(ctx, PathQuiz, start, err)
	return qs, err
}

func (l *LoggingService) HintQuery(ctx context.Context, query string) (*quiz.TimingHint, error) {
	start := time.Now()
	h, err := l.inner.HintQuery(ctx, query)
	l.record(ctx, PathHintQuery, start, err)
	return h, err
}

func (l *LoggingService) TextQuery(ctx context.Context, query, videoID string) (map[string]any, error) {
	start := time.Now()
	resp, err := l.inner.TextQuery(ctx, query, videoID)
	l.record(ctx, PathTextQuery, start, err)
	return resp, err
}

func (l *LoggingService) record(ctx context.Context, op string, start time.Time, err error) {
	latency := time.Since(start)
	data := store.RequestEventData{
		Service:    "backend",
		Operation:  op,
		StatusCode: StatusCode(err),
		LatencyMs:  latency.Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		slog.Warn("backend request failed", "op", op, "latency", latency, "err", err)
	} else {
		slog.Debug("backend request", "op", op, "latency", latency)
	}

	// Logging failures never fail the request.
	if logErr := l.eventRepo.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
		slog.Warn("failed to record backend request event", "op", op, "err", logErr)
	}
}
