package backend

import (
	"context"
	"fmt"

	"github.com/abhisek/recall/internal/quiz"
)

// Source builds a quiz by fetching a transcript and having the backend
// generate questions from it.
type Source struct {
	Service Service
}

// Questions returns the quiz for a video in an index.
func (s Source) Questions(ctx context.Context, video, index string) ([]quiz.Question, error) {
	transcript, err := s.Service.Transcript(ctx, video, index)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	qs, err := s.Service.Quiz(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	return qs, nil
}
