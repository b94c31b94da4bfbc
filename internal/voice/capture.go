package voice

import (
	"context"
	"strings"
	"time"
)

// DefaultTimeout caps a single listening session.
const DefaultTimeout = 10 * time.Second

// Capture runs one listening session on r and returns the final transcript.
// onInterim, when set, receives live text. When timeout elapses the
// recognizer is stopped and its final result is still awaited.
func Capture(ctx context.Context, r Recognizer, timeout time.Duration, onInterim func(string)) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	results, err := r.Start(ctx)
	if err != nil {
		return "", err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			r.Stop()
			return "", ctx.Err()
		case <-timer.C:
			r.Stop()
		case res, ok := <-results:
			if !ok {
				return finalText(last)
			}
			if res.Err != nil {
				return "", res.Err
			}
			if res.Final {
				r.Stop()
				return finalText(res.Text)
			}
			last = res.Text
			if onInterim != nil {
				onInterim(res.Text)
			}
		}
	}
}

func finalText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNoSpeech
	}
	return s, nil
}
