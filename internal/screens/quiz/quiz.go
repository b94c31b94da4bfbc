// Package quiz is the screen that runs a visit-recall quiz: loading,
// resume prompt, questions with hearts and hints, and timed feedback.
package quiz

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/recall/internal/clip"
	qz "github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/router"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/screens/history"
	"github.com/abhisek/recall/internal/screens/results"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/ui/components"
	"github.com/abhisek/recall/internal/ui/layout"
)

const (
	msgLoadFailed = "We couldn't load your visit quiz right now."
	msgHintFailed = "Couldn't find a hint right now. Try again in a moment."
	msgSaveFailed = "Your progress couldn't be saved."
)

// QuestionSource loads the questions for a visit.
type QuestionSource interface {
	Questions(ctx context.Context, video, index string) ([]qz.Question, error)
}

// HintService finds the clip of the visit that answers a question.
type HintService interface {
	HintQuery(ctx context.Context, query string) (*qz.TimingHint, error)
}

// Options holds the screen's dependencies.
type Options struct {
	Controller *qz.Controller
	Source     QuestionSource
	Hints      HintService
	Events     store.EventRepo

	VideoID   string
	IndexID   string
	MediaBase string

	// NewAsk builds the ask screen offered on the results screen. Nil
	// hides that option.
	NewAsk func() screen.Screen
}

// QuizScreen implements screen.Screen for a quiz session.
type QuizScreen struct {
	opts      Options
	ctrl      *qz.Controller
	sessionID string

	mc          components.MultiChoice
	clip        *components.ClipPanel
	feedbackSeq int
	hintSeq     int
	fetching    bool
	restarting  bool

	errMsg string
	status string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. A nil Events discards events.
func New(opts Options) *QuizScreen {
	if opts.Events == nil {
		opts.Events = store.Discard
	}
	return &QuizScreen{opts: opts, ctrl: opts.Controller}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.restarting {
		return func() tea.Msg { return restartMsg{} }
	}
	return func() tea.Msg { return startMsg{} }
}

func (s *QuizScreen) Title() string {
	return "Visit Quiz"
}

func (s *QuizScreen) HeaderStatus() string {
	switch s.ctrl.Phase() {
	case qz.PhaseQuestion, qz.PhaseFeedback:
		return components.Hearts(s.ctrl.State().HeartsRemaining, qz.MaxHearts)
	}
	return ""
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	switch s.ctrl.Phase() {
	case qz.PhaseResume:
		return []layout.KeyHint{
			{Key: "Y", Description: "Resume"},
			{Key: "N", Description: "Start over"},
		}
	case qz.PhaseQuestion:
		hints := []layout.KeyHint{
			{Key: "1-4", Description: "Choose"},
			{Key: "Enter", Description: s.confirmLabel()},
		}
		if s.ctrl.HintAvailable() {
			hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
		}
		if s.clip != nil {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Focus clip"})
			hints = append(hints, s.clip.KeyHints()...)
		}
		return hints
	case qz.PhaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *QuizScreen) confirmLabel() string {
	if s.ctrl.IsLastQuestion() {
		return "View Results"
	}
	return "Confirm"
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return s.handleStart()

	case restartMsg:
		return s.handleRestart()

	case questionsMsg:
		return s.handleQuestions(msg)

	case hintMsg:
		return s.handleHint(msg)

	case feedbackDoneMsg:
		if msg.seq != s.feedbackSeq {
			return s, nil
		}
		return s.advance()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.clip != nil {
		var cmd tea.Cmd
		*s.clip, cmd = s.clip.Update(msg)
		return s, cmd
	}
	return s, nil
}

// handleStart reads saved progress once and either offers to resume or
// fetches a new quiz.
func (s *QuizScreen) handleStart() (screen.Screen, tea.Cmd) {
	rec, err := s.ctrl.Load(context.Background())
	if err != nil {
		slog.Warn("load saved progress", "err", err)
	}
	if rec != nil {
		return s, nil
	}
	return s, s.fetchQuestions()
}

func (s *QuizScreen) handleRestart() (screen.Screen, tea.Cmd) {
	s.restarting = false
	if err := s.ctrl.Restart(context.Background()); err != nil {
		slog.Warn("restart quiz", "err", err)
		s.status = msgSaveFailed
	}
	s.beginSession()
	return s, nil
}

func (s *QuizScreen) fetchQuestions() tea.Cmd {
	if s.fetching {
		return nil
	}
	s.fetching = true
	s.errMsg = ""
	src, video, index := s.opts.Source, s.opts.VideoID, s.opts.IndexID
	return func() tea.Msg {
		qs, err := src.Questions(context.Background(), video, index)
		return questionsMsg{Questions: qs, Err: err}
	}
}

func (s *QuizScreen) handleQuestions(msg questionsMsg) (screen.Screen, tea.Cmd) {
	s.fetching = false
	if msg.Err != nil {
		slog.Error("load quiz questions", "video", s.opts.VideoID, "index", s.opts.IndexID, "err", msg.Err)
		s.errMsg = msgLoadFailed
		return s, nil
	}
	if err := s.ctrl.StartFresh(context.Background(), msg.Questions); err != nil {
		if s.ctrl.Phase() != qz.PhaseQuestion {
			slog.Error("start quiz", "err", err)
			s.errMsg = msgLoadFailed
			return s, nil
		}
		slog.Warn("save progress", "err", err)
		s.status = msgSaveFailed
	}
	s.beginSession()
	return s, nil
}

// beginSession starts event recording and shows the current question.
func (s *QuizScreen) beginSession() {
	s.sessionID = uuid.New().String()
	s.hintSeq++
	s.record(s.opts.Events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:       s.sessionID,
		Action:          store.SessionStart,
		VideoID:         s.opts.VideoID,
		Total:           s.ctrl.Total(),
		HeartsRemaining: s.ctrl.State().HeartsRemaining,
	}))
	s.showQuestion()
}

func (s *QuizScreen) showQuestion() {
	s.clip = nil
	q, ok := s.ctrl.Current()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q.Text, q.Options, q.Correct)
	if sel := s.ctrl.State().SelectedAnswer; sel != nil {
		s.mc.Cursor = *sel
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		if key == "r" {
			return s, s.fetchQuestions()
		}
		return s, nil
	}

	switch s.ctrl.Phase() {
	case qz.PhaseResume:
		return s.handleResumeKey(key)
	case qz.PhaseQuestion:
		return s.handleQuestionKey(msg)
	case qz.PhaseFeedback:
		if s.clip != nil && (s.clip.Focused || key == "space" || key == "o" || key == "tab") {
			return s.handleClipKey(msg)
		}
		return s.advance()
	}
	return s, nil
}

func (s *QuizScreen) handleResumeKey(key string) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	switch key {
	case "y", "Y":
		if err := s.ctrl.Resume(ctx); err != nil {
			slog.Warn("resume quiz", "err", err)
			s.status = msgSaveFailed
		}
		if s.ctrl.Phase() == qz.PhaseResults {
			s.sessionID = uuid.New().String()
			return s, s.finish()
		}
		s.beginSession()
		return s, nil
	case "n", "N":
		if err := s.ctrl.Decline(ctx); err != nil {
			slog.Warn("discard saved progress", "err", err)
		}
		return s, s.fetchQuestions()
	}
	return s, nil
}

func (s *QuizScreen) handleQuestionKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.clip != nil {
		switch {
		case key == "tab":
			s.clip.Focused = !s.clip.Focused
			return s, nil
		case key == "space", key == "o",
			s.clip.Focused && (key == "left" || key == "right"):
			return s.handleClipKey(msg)
		}
	}

	switch key {
	case "enter", "right", "l":
		return s.confirm()
	case "h":
		return s, s.requestHint()
	}

	var changed bool
	s.mc, changed = s.mc.Update(msg)
	if changed {
		if err := s.ctrl.Select(s.mc.Cursor); err != nil {
			slog.Debug("select option", "option", s.mc.Cursor, "err", err)
		}
	}
	return s, nil
}

func (s *QuizScreen) handleClipKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "tab" {
		s.clip.Focused = !s.clip.Focused
		return s, nil
	}
	var cmd tea.Cmd
	*s.clip, cmd = s.clip.Update(msg)
	return s, cmd
}

// confirm grades the selection. With nothing selected it does nothing.
func (s *QuizScreen) confirm() (screen.Screen, tea.Cmd) {
	if !s.ctrl.CanConfirm() {
		return s, nil
	}
	q, _ := s.ctrl.Current()
	index := s.ctrl.State().CurrentQuestionIndex

	out, err := s.ctrl.Confirm(context.Background())
	if out == nil {
		if err != nil {
			slog.Debug("confirm answer", "err", err)
		}
		return s, nil
	}
	if err != nil {
		slog.Warn("save progress", "err", err)
		s.status = msgSaveFailed
	}

	s.record(s.opts.Events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:       s.sessionID,
		QuestionIndex:   index,
		QuestionText:    q.Text,
		Selected:        out.Selected,
		CorrectIndex:    out.CorrectIndex,
		Correct:         out.Correct,
		HeartsRemaining: s.ctrl.State().HeartsRemaining,
	}))
	if out.OutOfHearts {
		slog.Info("out of hearts", "session", s.sessionID, "question", index)
	}

	s.mc.Cursor = out.Selected
	s.mc.Revealed = true
	if s.clip != nil {
		s.clip.Focused = false
	}

	s.feedbackSeq++
	seq := s.feedbackSeq
	return s, tea.Tick(s.ctrl.FeedbackDelay(), func(time.Time) tea.Msg {
		return feedbackDoneMsg{seq: seq}
	})
}

// advance leaves feedback for the next question or the results.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if s.ctrl.Phase() != qz.PhaseFeedback {
		return s, nil
	}
	s.feedbackSeq++
	if err := s.ctrl.Continue(context.Background()); err != nil {
		slog.Warn("save progress", "err", err)
		s.status = msgSaveFailed
	}
	if s.ctrl.Phase() == qz.PhaseResults {
		return s, s.finish()
	}
	s.status = ""
	s.showQuestion()
	return s, nil
}

// requestHint claims the hint control before issuing the request, so a
// second press while it is in flight does nothing. Each request gets a new
// hintSeq; a response from an earlier session carries an older one.
func (s *QuizScreen) requestHint() tea.Cmd {
	query, ok := s.ctrl.BeginHint()
	if !ok {
		return nil
	}
	s.hintSeq++
	seq := s.hintSeq
	s.status = "Finding that part of your visit…"
	hints := s.opts.Hints
	index := s.ctrl.State().CurrentQuestionIndex
	return func() tea.Msg {
		h, err := hints.HintQuery(context.Background(), query)
		return hintMsg{seq: seq, Index: index, Query: query, Hint: h, Err: err}
	}
}

func (s *QuizScreen) handleHint(msg hintMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	reqErr := msg.Err
	if reqErr == nil && msg.Hint != nil {
		if err := clip.FromHint(*msg.Hint).Validate(); err != nil {
			reqErr = err
		}
	}
	stale := msg.Index != s.ctrl.State().CurrentQuestionIndex

	ev := store.HintEventData{
		SessionID: s.sessionID,
		Query:     msg.Query,
		Source:    "quiz",
		Success:   reqErr == nil && msg.Hint != nil,
	}
	if msg.Hint != nil {
		ev.VideoID, ev.Start, ev.End = msg.Hint.VideoID, msg.Hint.Start, msg.Hint.End
	}
	if reqErr != nil {
		ev.ErrorMessage = reqErr.Error()
	}
	s.record(s.opts.Events.AppendHintEvent(ctx, ev))

	if msg.seq != s.hintSeq {
		// The session it belonged to is gone and its in-flight claim was
		// reset with it.
		return s, nil
	}
	if stale {
		s.ctrl.FinishHint(ctx, nil, context.Canceled)
		return s, nil
	}

	hint, err := s.ctrl.FinishHint(ctx, msg.Hint, reqErr)
	if reqErr != nil || msg.Hint == nil {
		slog.Warn("hint request failed", "query", msg.Query, "err", reqErr)
		s.status = msgHintFailed
		return s, nil
	}
	if err != nil {
		slog.Warn("save progress", "err", err)
	}
	if hint == nil {
		s.status = ""
		return s, nil
	}

	panel, perr := components.NewClipPanel(*hint, s.opts.MediaBase)
	if perr != nil {
		s.status = msgHintFailed
		return s, nil
	}
	s.clip = &panel
	s.status = ""
	return s, nil
}

// finish records the end of the session and replaces this screen with
// the results.
func (s *QuizScreen) finish() tea.Cmd {
	sum := s.ctrl.Summary()
	s.record(s.opts.Events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:        s.sessionID,
		Action:           store.SessionEnd,
		VideoID:          s.opts.VideoID,
		Total:            sum.Total,
		Score:            sum.Score,
		CorrectAnswers:   sum.Correct,
		IncorrectAnswers: sum.Incorrect,
		HintsUsed:        sum.HintsUsed,
		HeartsRemaining:  sum.HeartsRemaining,
		EndedEarly:       sum.EndedEarly,
	}))
	s.clip = nil

	ropts := results.Options{
		OnRestart: func() tea.Cmd {
			s.restarting = true
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
		},
	}
	if s.opts.NewAsk != nil {
		newAsk := s.opts.NewAsk
		ropts.OnAsk = func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: newAsk()} }
		}
	}
	events := s.opts.Events
	ropts.OnHistory = func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(events)} }
	}
	resultsScreen := results.New(sum, ropts)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: resultsScreen} }
}

func (s *QuizScreen) record(err error) {
	if err != nil {
		slog.Warn("record event", "session", s.sessionID, "err", err)
	}
}
