package voice

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ScriptedRecognizer replays a fixed utterance word by word. It backs tests
// and the offline demo.
type ScriptedRecognizer struct {
	// Phrase is revealed one word per Step as interim text.
	Phrase string

	// Step is the delay between words. Zero emits everything at once.
	Step time.Duration

	// Err, when set, is delivered instead of a final result.
	Err error

	mu   sync.Mutex
	stop chan struct{}
}

func (s *ScriptedRecognizer) Start(ctx context.Context) (<-chan Result, error) {
	s.mu.Lock()
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	out := make(chan Result, 1)
	go func() {
		defer close(out)
		words := strings.Fields(s.Phrase)
		heard := 0

		send := func(r Result) bool {
			select {
			case out <- r:
				return true
			case <-ctx.Done():
				return false
			}
		}

	loop:
		for heard < len(words) {
			if s.Step > 0 {
				select {
				case <-time.After(s.Step):
				case <-stop:
					break loop
				case <-ctx.Done():
					return
				}
			}
			heard++
			if heard < len(words) && !send(Result{Text: strings.Join(words[:heard], " ")}) {
				return
			}
		}

		if s.Err != nil {
			send(Result{Err: s.Err})
			return
		}
		send(Result{Text: strings.Join(words[:heard], " "), Final: true})
	}()
	return out, nil
}

func (s *ScriptedRecognizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}
