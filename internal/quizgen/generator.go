// Package quizgen generates visit quizzes directly with an LLM and phrases
// answers to spoken questions.
package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/recall/internal/llm"
	"github.com/abhisek/recall/internal/quiz"
)

// ErrNoQuestions is returned when no generated question survives validation.
var ErrNoQuestions = errors.New("no valid questions generated")

// Generator produces quiz questions from a visit transcript.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Quiz []questionOutput `json:"quiz"`
}

type questionOutput struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
	Hint     string   `json:"hint"`
}

// Generate asks the LLM for a quiz about transcript. Questions failing a
// validator are dropped; at least one must remain.
func (g *Generator) Generate(ctx context.Context, transcript string) ([]quiz.Question, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("generate quiz: empty transcript")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(transcript, g.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM quiz generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	qs := make([]quiz.Question, 0, len(raw.Quiz))
	for i, out := range raw.Quiz {
		q := quiz.Question{
			Text:    strings.TrimSpace(out.Question),
			Options: out.Options,
			Correct: out.Correct,
			Hint:    strings.TrimSpace(out.Hint),
		}
		if verr := g.validate(q); verr != nil {
			slog.Warn("dropping generated question", "index", i, "err", verr)
			continue
		}
		qs = append(qs, q)
	}

	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}

func (g *Generator) validate(q quiz.Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
