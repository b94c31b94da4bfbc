package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/recall/internal/store"
)

// LoggingProvider records every LLM attempt as a request event alongside
// the backend calls, so `recall history --requests` shows both.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.RequestEventData{
		Service:   "llm",
		Operation: purpose,
		Model:     l.inner.ModelID(),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		slog.Warn("llm request failed", "purpose", purpose, "model", data.Model, "latency", latency, "err", err)
	} else {
		slog.Debug("llm request", "purpose", purpose, "model", data.Model,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens, "latency", latency)
	}

	if logErr := l.eventRepo.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
		slog.Warn("failed to record llm request event", "purpose", purpose, "err", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
