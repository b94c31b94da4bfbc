package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultFeedbackDelay is how long feedback stays up before the quiz advances.
const DefaultFeedbackDelay = 1500 * time.Millisecond

// Config controls quiz policy.
type Config struct {
	// FeedbackDelay is how long feedback is shown before auto-advancing.
	FeedbackDelay time.Duration

	// EndOnNoHearts terminates the quiz after a wrong answer with no hearts left.
	// When false, the warning still fires once and the quiz continues.
	EndOnNoHearts bool
}

// DefaultConfig returns the standard quiz policy.
func DefaultConfig() Config {
	return Config{
		FeedbackDelay: DefaultFeedbackDelay,
		EndOnNoHearts: true,
	}
}

// Controller drives one quiz session. It owns the phase, persists progress
// after every transition and guards hint requests against overlap. It is not
// safe for concurrent use; callers drive it from a single event loop.
type Controller struct {
	cfg       Config
	store     ProgressStore
	now       func() time.Time
	questions []Question
	state     State
	phase     Phase
	pending   *Record
	outcome   *Outcome
	revision  int64

	hintInFlight bool
	terminated   bool
}

// NewController creates a controller in the loading phase.
func NewController(store ProgressStore, cfg Config) *Controller {
	return &Controller{
		cfg:   cfg,
		store: store,
		now:   time.Now,
		state: NewState(),
		phase: PhaseLoading,
	}
}

// State returns a copy of the current quiz state.
func (c *Controller) State() State { return c.state }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Total returns the number of questions in the loaded quiz.
func (c *Controller) Total() int { return len(c.questions) }

// Questions returns the loaded question set.
func (c *Controller) Questions() []Question { return c.questions }

// FeedbackDelay returns the configured feedback display time.
func (c *Controller) FeedbackDelay() time.Duration { return c.cfg.FeedbackDelay }

// LastOutcome returns the outcome of the most recent submission, or nil.
func (c *Controller) LastOutcome() *Outcome { return c.outcome }

// PendingResume returns the saved record offered for resumption, or nil.
func (c *Controller) PendingResume() *Record { return c.pending }

// HintInFlight reports whether a hint request is outstanding.
func (c *Controller) HintInFlight() bool { return c.hintInFlight }

// Current returns the question being shown.
func (c *Controller) Current() (Question, bool) {
	i := c.state.CurrentQuestionIndex
	if i < 0 || i >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[i], true
}

// IsLastQuestion reports whether the current question is the final one.
func (c *Controller) IsLastQuestion() bool {
	return c.state.CurrentQuestionIndex == len(c.questions)-1
}

// CanConfirm reports whether the confirm control is enabled.
func (c *Controller) CanConfirm() bool {
	return c.phase == PhaseQuestion && c.state.SelectedAnswer != nil
}

// HintAvailable reports whether the hint control is enabled.
func (c *Controller) HintAvailable() bool {
	return c.phase == PhaseQuestion && !c.hintInFlight && !c.state.HintConsumed
}

// Load reads the saved progress once at startup. A record that cannot be
// read, fails validation or describes a finished quiz is cleared, so the
// next StartFresh saves from a clean slate. A read error is still returned
// after clearing. When a resumable record exists the controller enters
// PhaseResume.
func (c *Controller) Load(ctx context.Context) (*Record, error) {
	rec, err := c.store.Load(ctx)
	if err != nil {
		err = fmt.Errorf("load progress: %w", err)
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			return nil, errors.Join(err, fmt.Errorf("clear progress: %w", clearErr))
		}
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if !rec.Resumable() {
		if err := c.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear stale progress: %w", err)
		}
		return nil, nil
	}
	c.pending = rec
	c.phase = PhaseResume
	return rec, nil
}

// Resume restores the pending record and shows its current question. A
// record saved while feedback was showing has already been graded, so it is
// advanced rather than asked again. A quiz that already ran out of hearts
// under EndOnNoHearts goes straight to the results.
func (c *Controller) Resume(ctx context.Context) error {
	if c.phase != PhaseResume || c.pending == nil {
		return nil
	}
	rec := c.pending
	c.pending = nil
	c.questions = rec.Questions
	c.state = rec.State
	c.revision = rec.Revision
	c.outcome = nil

	if c.cfg.EndOnNoHearts && c.state.NoHeartsWarned {
		return c.finish(ctx)
	}
	if c.state.Answered() > c.state.CurrentQuestionIndex {
		c.state = Advance(c.state, len(c.questions))
		if c.state.Complete(len(c.questions)) {
			return c.finish(ctx)
		}
		c.phase = PhaseQuestion
		return c.persist(ctx)
	}
	c.phase = PhaseQuestion
	return nil
}

// Decline discards the pending record. The caller then loads questions and
// calls StartFresh.
func (c *Controller) Decline(ctx context.Context) error {
	c.pending = nil
	c.phase = PhaseLoading
	c.revision = 0
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// StartFresh begins a new quiz over qs.
func (c *Controller) StartFresh(ctx context.Context, qs []Question) error {
	if err := ValidateAll(qs); err != nil {
		return err
	}
	c.questions = qs
	c.state = NewState()
	c.phase = PhaseQuestion
	c.pending = nil
	c.outcome = nil
	c.terminated = false
	c.hintInFlight = false
	return c.persist(ctx)
}

// Restart begins the same question set again from the first question.
func (c *Controller) Restart(ctx context.Context) error {
	if len(c.questions) == 0 {
		return nil
	}
	return c.StartFresh(ctx, c.questions)
}

// Select records the chosen option. Selections outside the question phase
// are ignored.
func (c *Controller) Select(option int) error {
	if c.phase != PhaseQuestion {
		return nil
	}
	next, err := Select(c.state, c.questions, option)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// Confirm grades the selected answer and enters the feedback phase. With no
// selection, or outside the question phase, it does nothing and returns
// ErrNoSelection or nil respectively.
func (c *Controller) Confirm(ctx context.Context) (*Outcome, error) {
	if c.phase != PhaseQuestion {
		return nil, nil
	}
	next, out, err := Submit(c.state, c.questions)
	if err != nil {
		return nil, err
	}
	c.state = next
	c.outcome = &out
	c.phase = PhaseFeedback
	if out.OutOfHearts && c.cfg.EndOnNoHearts {
		c.terminated = true
	}
	return &out, c.persist(ctx)
}

// Continue leaves the feedback phase, moving to the next question or the
// results. Calls outside the feedback phase are ignored, so a delayed
// auto-advance racing a manual dismissal advances once.
func (c *Controller) Continue(ctx context.Context) error {
	if c.phase != PhaseFeedback {
		return nil
	}
	if c.terminated {
		return c.finish(ctx)
	}
	c.state = Advance(c.state, len(c.questions))
	if c.state.Complete(len(c.questions)) {
		return c.finish(ctx)
	}
	c.phase = PhaseQuestion
	return c.persist(ctx)
}

// BeginHint claims the hint control for the current question. It returns
// the query text and true when a request should be sent; the control stays
// disabled until FinishHint is called.
func (c *Controller) BeginHint() (string, bool) {
	if !c.HintAvailable() {
		return "", false
	}
	q, ok := c.Current()
	if !ok {
		return "", false
	}
	c.hintInFlight = true
	return q.Text, true
}

// FinishHint completes a hint request started with BeginHint. On failure
// the control is re-enabled and the state is left untouched. On success the
// hint is consumed for the current question and progress is saved.
func (c *Controller) FinishHint(ctx context.Context, hint *TimingHint, reqErr error) (*TimingHint, error) {
	c.hintInFlight = false
	if reqErr != nil || hint == nil {
		return nil, nil
	}
	if c.phase != PhaseQuestion {
		return nil, nil
	}
	next, ok := ConsumeHint(c.state)
	if !ok {
		return nil, nil
	}
	c.state = next
	return hint, c.persist(ctx)
}

// Summary returns the results for the current state.
func (c *Controller) Summary() Summary {
	return Summarize(c.state, len(c.questions))
}

func (c *Controller) finish(ctx context.Context) error {
	c.phase = PhaseResults
	c.hintInFlight = false
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func (c *Controller) persist(ctx context.Context) error {
	c.revision++
	rec := Record{
		State:     c.state,
		Questions: c.questions,
		Revision:  c.revision,
		SavedAt:   c.now(),
	}
	if err := c.store.Save(ctx, rec); err != nil {
		if errors.Is(err, ErrStaleRecord) {
			return fmt.Errorf("save progress (revision %d): %w", c.revision, err)
		}
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
