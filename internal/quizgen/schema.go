package quizgen

import "github.com/abhisek/recall/internal/llm"

// QuizSchema is the structured output requested from the LLM. Count and
// range limits live in the descriptions because not every provider accepts
// them as keywords; the validators enforce them.
var QuizSchema = &llm.Schema{
	Name:        "visit-quiz",
	Description: "Multiple choice questions a patient answers about their telehealth visit",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the patient, in plain language",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options, one of them correct",
						},
						"correct": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A short nudge toward the answer without giving it away",
						},
					},
					"required":             []any{"question", "options", "correct", "hint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"quiz"},
		"additionalProperties": false,
	},
}
