package quizgen

import (
	"context"
	"fmt"

	"github.com/abhisek/recall/internal/backend"
	"github.com/abhisek/recall/internal/quiz"
)

// TranscriptFetcher is the part of the backend the LLM source needs.
type TranscriptFetcher interface {
	Transcript(ctx context.Context, video, index string) (string, error)
}

var _ TranscriptFetcher = (backend.Service)(nil)

// Source fetches the transcript from the backend and generates the quiz
// locally instead of calling the backend's quiz endpoint.
type Source struct {
	Backend TranscriptFetcher
	Gen     *Generator
}

func (s Source) Questions(ctx context.Context, video, index string) ([]quiz.Question, error) {
	transcript, err := s.Backend.Transcript(ctx, video, index)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	qs, err := s.Gen.Generate(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	return qs, nil
}
