package quiz

// Band is the qualitative rating shown on the results screen.
type Band string

const (
	BandExcellent     Band = "excellent"
	BandGood          Band = "good"
	BandNeedsPractice Band = "needs practice"
)

var bandMessages = map[Band]string{
	BandExcellent:     "Excellent memory! You retained most of the important information.",
	BandGood:          "Good job! You remembered the key details well.",
	BandNeedsPractice: "Keep practicing! Regular review will help improve your recall.",
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	Score           int
	Total           int
	Correct         int
	Incorrect       int
	HintsUsed       int
	HeartsRemaining int
	Percentage      float64
	Band            Band
	Message         string

	// EndedEarly is true when the quiz stopped before the last question.
	EndedEarly bool
}

// BandFor maps a score percentage (0-100) to its band.
func BandFor(percentage float64) Band {
	switch {
	case percentage >= 80:
		return BandExcellent
	case percentage >= 60:
		return BandGood
	default:
		return BandNeedsPractice
	}
}

// Summarize builds the results summary for a quiz of total questions.
func Summarize(s State, total int) Summary {
	var pct float64
	if total > 0 {
		pct = float64(s.Score) / float64(total) * 100
	}
	band := BandFor(pct)
	return Summary{
		Score:           s.Score,
		Total:           total,
		Correct:         s.CorrectAnswers,
		Incorrect:       s.IncorrectAnswers,
		HintsUsed:       s.HintsUsed,
		HeartsRemaining: s.HeartsRemaining,
		Percentage:      pct,
		Band:            band,
		Message:         bandMessages[band],
		EndedEarly:      s.Answered() < total,
	}
}
