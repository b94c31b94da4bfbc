package quizgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/recall/internal/backend"
	"github.com/abhisek/recall/internal/clip"
	"github.com/abhisek/recall/internal/llm"
	"github.com/abhisek/recall/internal/quiz"
)

const answerPrompt = `You help a patient recall what their clinician said during a telehealth visit.
Answer in one or two short sentences of plain language. If you are not sure, say so and suggest they replay the clip or call the clinic.`

// Synthesizer produces a displayable answer for a spoken question.
type Synthesizer struct {
	// Provider is optional; without it answers are built from the clip window.
	Provider llm.Provider
}

// Answer returns the best answer available for query. Text carried in the
// backend response wins; otherwise the LLM is asked, and as a last resort
// the answer points at the clip.
func (s Synthesizer) Answer(ctx context.Context, query string, hint *quiz.TimingHint, raw map[string]any) (string, error) {
	if text := backend.ResponseText(raw); text != "" {
		return text, nil
	}
	if s.Provider == nil {
		return clipAnswer(hint), nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAnswer)

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", strings.TrimSpace(query))
	if hint != nil {
		fmt.Fprintf(&b, "The relevant part of the visit recording runs from %s to %s.\n",
			clip.FormatTime(hint.Start), clip.FormatTime(hint.End))
	}

	req := llm.UserRequest(answerPrompt, b.String())
	req.MaxTokens = 256
	resp, err := s.Provider.Generate(ctx, req)
	if err != nil {
		return clipAnswer(hint), fmt.Errorf("synthesize answer: %w", err)
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	return clipAnswer(hint), nil
}

func clipAnswer(hint *quiz.TimingHint) string {
	if hint == nil {
		return "I couldn't find an answer to that. Try asking another way."
	}
	return fmt.Sprintf("Your clinician covers this from %s to %s in your visit recording.",
		clip.FormatTime(hint.Start), clip.FormatTime(hint.End))
}
