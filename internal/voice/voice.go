// Package voice captures a spoken question and turns it into text.
package voice

import (
	"context"
	"errors"
)

// ErrUnsupported means no speech recognizer is available on this machine.
var ErrUnsupported = errors.New("speech recognition is not supported")

// ErrNoSpeech means capture finished without any recognized words.
var ErrNoSpeech = errors.New("no speech recognized")

// Result is one update from a Recognizer. Interim results carry live text
// for display; exactly one Final result (or an error) ends a session.
type Result struct {
	Text  string
	Final bool
	Err   error
}

// Recognizer wraps a speech-to-text capability.
type Recognizer interface {
	// Start begins listening. The returned channel delivers interim results,
	// then a final result or an error, and is closed when the session ends.
	Start(ctx context.Context) (<-chan Result, error)

	// Stop ends listening early. The session still delivers a final result
	// for whatever was heard. Stop is safe to call more than once.
	Stop()
}

// StatusMessage converts a capture error into the text shown to the user.
func StatusMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupported):
		return "Voice input isn't available here. Type your question instead."
	case errors.Is(err, ErrNoSpeech):
		return "I didn't catch that. Try again."
	case errors.Is(err, context.Canceled):
		return "Listening cancelled."
	default:
		return "Voice input failed. Type your question instead."
	}
}
