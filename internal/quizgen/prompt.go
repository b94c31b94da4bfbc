package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write recall quizzes for patients after a telehealth visit.

Rules:
- Ask only about information stated in the transcript: medications and doses, warning signs, activity limits, wound care and follow-up plans.
- Use plain language a patient without medical training understands.
- Every question has exactly 4 options and exactly one correct option.
- Distractors should be plausible but clearly wrong according to the transcript.
- Do not ask about small talk, names of staff, or anything the patient does not need to remember.`

// buildUserMessage builds the quiz request for transcript.
func buildUserMessage(transcript string, cfg Config) string {
	transcript = strings.TrimSpace(transcript)
	if cfg.MaxTranscriptChars > 0 && len(transcript) > cfg.MaxTranscriptChars {
		transcript = transcript[:cfg.MaxTranscriptChars]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d question quiz about important information to remember from the following telehealth transcript. ", cfg.QuestionCount)
	b.WriteString("The patient will be taking the quiz.\n\n")
	b.WriteString("Transcript:\n")
	b.WriteString(transcript)
	return b.String()
}
