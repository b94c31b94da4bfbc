// Package ask is the screen where a patient asks a spoken or typed
// question about their visit and gets an answer with the matching clip.
package ask

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/recall/internal/clip"
	"github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/ui/components"
	"github.com/abhisek/recall/internal/ui/layout"
	"github.com/abhisek/recall/internal/voice"
)

const (
	msgSearching   = "Searching your visit…"
	msgUnreachable = "We couldn't reach the visit service right now. Try again in a moment."
	msgProcessing  = "Processing what you said…"

	inputWidth = 56
)

// QueryService is the part of the backend the screen calls.
type QueryService interface {
	HintQuery(ctx context.Context, query string) (*quiz.TimingHint, error)
	TextQuery(ctx context.Context, query, videoID string) (map[string]any, error)
}

// Answerer turns backend results into an answer to show.
type Answerer interface {
	Answer(ctx context.Context, query string, hint *quiz.TimingHint, raw map[string]any) (string, error)
}

// Options holds the screen's dependencies.
type Options struct {
	Backend  QueryService
	Answerer Answerer
	Events   store.EventRepo

	// Recognizer is nil when speech recognition is unavailable;
	// RecognizerErr then says why.
	Recognizer    voice.Recognizer
	RecognizerErr error

	VideoID       string
	MediaBase     string
	ListenTimeout time.Duration
}

// AskScreen implements screen.Screen for voice and typed questions.
type AskScreen struct {
	opts  Options
	input components.TextInput

	listening    bool
	listenSeq    int
	cancelListen context.CancelFunc
	voiceCh      <-chan voice.Result
	interim      string
	voiceOff     bool

	querying bool
	asked    string
	answer   string
	clip     *components.ClipPanel

	status string
	notice string
}

var _ screen.Screen = (*AskScreen)(nil)
var _ screen.KeyHintProvider = (*AskScreen)(nil)

// New creates an AskScreen. A nil Events discards events.
func New(opts Options) *AskScreen {
	if opts.Events == nil {
		opts.Events = store.Discard
	}
	if opts.ListenTimeout <= 0 {
		opts.ListenTimeout = voice.DefaultTimeout
	}
	input := components.NewTextInput("What did my clinician say about…", 200)
	input.SetWidth(inputWidth)
	return &AskScreen{
		opts:     opts,
		input:    input,
		voiceOff: opts.Recognizer == nil,
	}
}

func (s *AskScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *AskScreen) Title() string {
	return "Ask About Your Visit"
}

func (s *AskScreen) KeyHints() []layout.KeyHint {
	if s.notice != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Dismiss"}}
	}
	if s.listening {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Ctrl+R", Description: "Stop"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Ask"}}
	if !s.voiceOff {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Speak"})
	}
	if s.clip != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Switch focus"})
		if s.clip.Focused {
			hints = append(hints, s.clip.KeyHints()...)
		}
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Listening reports whether a voice session is active.
func (s *AskScreen) Listening() bool { return s.listening }

// Querying reports whether a question is being looked up.
func (s *AskScreen) Querying() bool { return s.querying }

// Answer returns the answer shown for the last question.
func (s *AskScreen) Answer() string { return s.answer }

// Status returns the status line.
func (s *AskScreen) Status() string { return s.status }

func (s *AskScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case voiceMsg:
		return s.handleVoice(msg)

	case listenTimeoutMsg:
		if msg.seq == s.listenSeq && s.listening {
			slog.Debug("listening timed out", "timeout", s.opts.ListenTimeout)
			s.opts.Recognizer.Stop()
			s.status = msgProcessing
		}
		return s, nil

	case queryMsg:
		return s.handleQuery(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.clip != nil {
		var cmd tea.Cmd
		*s.clip, cmd = s.clip.Update(msg)
		return s, cmd
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *AskScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.notice != "" {
		s.notice = ""
		return s, nil
	}

	if key == "ctrl+r" {
		if s.listening {
			s.opts.Recognizer.Stop()
			s.status = msgProcessing
			return s, nil
		}
		return s, s.startListening()
	}
	if s.listening {
		if key == "enter" {
			s.opts.Recognizer.Stop()
			s.status = msgProcessing
		}
		return s, nil
	}

	if key == "tab" && s.clip != nil {
		s.clip.Focused = !s.clip.Focused
		if s.clip.Focused {
			s.input.Blur()
			return s, nil
		}
		return s, s.input.Focus()
	}
	if s.clip != nil && s.clip.Focused {
		var cmd tea.Cmd
		*s.clip, cmd = s.clip.Update(msg)
		return s, cmd
	}

	if key == "enter" {
		q := s.input.Value()
		if q == "" {
			return s, nil
		}
		cmd := s.submit(q)
		if cmd != nil {
			s.input.Reset()
		}
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// startListening begins a voice session. An unavailable recognizer shows
// a notice and turns voice input off.
func (s *AskScreen) startListening() tea.Cmd {
	if s.querying {
		return nil
	}
	if s.voiceOff {
		s.showUnsupported(s.opts.RecognizerErr)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	results, err := s.opts.Recognizer.Start(ctx)
	if err != nil {
		cancel()
		slog.Warn("start speech recognition", "err", err)
		if errors.Is(err, voice.ErrUnsupported) {
			s.showUnsupported(err)
			return nil
		}
		s.status = voice.StatusMessage(err)
		return nil
	}

	s.listenSeq++
	s.listening = true
	s.cancelListen = cancel
	s.voiceCh = results
	s.interim = ""
	s.status = "Listening… speak your question"
	seq := s.listenSeq
	return tea.Batch(
		waitForVoice(results, seq),
		tea.Tick(s.opts.ListenTimeout, func(time.Time) tea.Msg {
			return listenTimeoutMsg{seq: seq}
		}),
	)
}

func (s *AskScreen) showUnsupported(err error) {
	if err == nil {
		err = voice.ErrUnsupported
	}
	s.voiceOff = true
	s.notice = voice.StatusMessage(voice.ErrUnsupported)
	slog.Info("voice input disabled", "reason", err)
}

func waitForVoice(results <-chan voice.Result, seq int) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return voiceMsg{seq: seq, Closed: true}
		}
		return voiceMsg{seq: seq, Result: res}
	}
}

func (s *AskScreen) handleVoice(msg voiceMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.listenSeq || !s.listening {
		return s, nil
	}
	res := msg.Result
	switch {
	case msg.Closed:
		s.endListening()
		return s, s.finishVoice(s.interim, nil)
	case res.Err != nil:
		s.endListening()
		return s, s.finishVoice("", res.Err)
	case res.Final:
		s.endListening()
		return s, s.finishVoice(res.Text, nil)
	}
	s.interim = res.Text
	return s, waitForVoice(s.voiceCh, msg.seq)
}

func (s *AskScreen) endListening() {
	s.listening = false
	s.voiceCh = nil
	if s.cancelListen != nil {
		s.cancelListen()
		s.cancelListen = nil
	}
}

func (s *AskScreen) finishVoice(text string, err error) tea.Cmd {
	s.interim = ""
	if err == nil && text == "" {
		err = voice.ErrNoSpeech
	}
	if err != nil {
		slog.Warn("speech recognition", "err", err)
		if errors.Is(err, voice.ErrUnsupported) {
			s.showUnsupported(err)
			s.status = ""
			return nil
		}
		s.status = voice.StatusMessage(err)
		return nil
	}
	return s.submit(text)
}

// submit sends query to the hint and text-query endpoints. A second
// submit while one is in flight is ignored.
func (s *AskScreen) submit(query string) tea.Cmd {
	if s.querying {
		return nil
	}
	s.querying = true
	s.asked = query
	s.answer = ""
	s.clip = nil
	s.status = msgSearching

	opts := s.opts
	return func() tea.Msg {
		ctx := context.Background()
		out := queryMsg{Query: query}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			out.Hint, out.HintErr = opts.Backend.HintQuery(ctx, query)
		}()
		go func() {
			defer wg.Done()
			out.Raw, out.TextErr = opts.Backend.TextQuery(ctx, query, opts.VideoID)
		}()
		wg.Wait()

		if out.HintErr != nil && out.TextErr != nil {
			return out
		}
		var hint *quiz.TimingHint
		if out.HintErr == nil {
			hint = out.Hint
		}
		out.Answer, out.AnswerErr = opts.Answerer.Answer(ctx, query, hint, out.Raw)
		return out
	}
}

func (s *AskScreen) handleQuery(msg queryMsg) (screen.Screen, tea.Cmd) {
	s.querying = false
	s.status = ""

	hintErr := msg.HintErr
	if hintErr == nil && msg.Hint != nil {
		hintErr = clip.FromHint(*msg.Hint).Validate()
	}
	ev := store.HintEventData{
		Query:   msg.Query,
		Source:  "ask",
		Success: hintErr == nil && msg.Hint != nil,
	}
	if msg.Hint != nil {
		ev.VideoID, ev.Start, ev.End = msg.Hint.VideoID, msg.Hint.Start, msg.Hint.End
	}
	if hintErr != nil {
		ev.ErrorMessage = hintErr.Error()
		slog.Warn("hint query failed", "query", msg.Query, "err", hintErr)
	}
	if err := s.opts.Events.AppendHintEvent(context.Background(), ev); err != nil {
		slog.Warn("record event", "err", err)
	}
	if msg.TextErr != nil {
		slog.Warn("text query failed", "query", msg.Query, "err", msg.TextErr)
	}

	if msg.HintErr != nil && msg.TextErr != nil {
		s.status = msgUnreachable
		return s, nil
	}
	if msg.AnswerErr != nil {
		slog.Warn("answer synthesis failed", "query", msg.Query, "err", msg.AnswerErr)
	}
	s.answer = msg.Answer

	if ev.Success {
		panel, err := components.NewClipPanel(*msg.Hint, s.opts.MediaBase)
		if err == nil {
			s.clip = &panel
		}
	}
	return s, nil
}
