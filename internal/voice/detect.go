package voice

import (
	"fmt"

	"github.com/abhisek/recall/internal/llm"
)

// Detect returns the recognizer available on this machine, or an error
// wrapping ErrUnsupported naming what is missing.
func Detect(cfg llm.OpenAIConfig) (Recognizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: set RECALL_OPENAI_API_KEY for transcription", ErrUnsupported)
	}
	if _, err := lookPath(recorderBinary); err != nil {
		return nil, fmt.Errorf("%w: %q (sox) not found on PATH", ErrUnsupported, recorderBinary)
	}
	return NewWhisperRecognizer(llm.NewOpenAIClient(cfg), cfg.TranscriptionModel), nil
}
