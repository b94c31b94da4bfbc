package quiz

import (
	"context"
	"sync"
	"time"
)

// Record is the persisted progress snapshot: the quiz state plus the
// question set it refers to, so a resumed quiz shows the same questions.
type Record struct {
	State     State      `json:"state"`
	Questions []Question `json:"questions"`
	Revision  int64      `json:"revision"`
	SavedAt   time.Time  `json:"savedAt"`
}

// Resumable reports whether the record is valid and describes an
// unfinished quiz.
func (r Record) Resumable() bool {
	if ValidateAll(r.Questions) != nil {
		return false
	}
	if r.State.Validate(len(r.Questions)) != nil {
		return false
	}
	return r.State.CurrentQuestionIndex < len(r.Questions)
}

// ProgressStore persists a single progress record.
type ProgressStore interface {
	// Load returns the saved record, or nil if none exists.
	Load(ctx context.Context) (*Record, error)

	// Save replaces the saved record. Implementations must refuse a record
	// whose Revision is not newer than the one already stored.
	Save(ctx context.Context, rec Record) error

	// Clear removes the saved record.
	Clear(ctx context.Context) error
}

// MemoryProgress is an in-process ProgressStore.
type MemoryProgress struct {
	mu  sync.Mutex
	rec *Record

	// Saves counts successful Save calls.
	Saves int
}

var _ ProgressStore = (*MemoryProgress)(nil)

// NewMemoryProgress returns an empty in-memory store.
func NewMemoryProgress() *MemoryProgress {
	return &MemoryProgress{}
}

func (m *MemoryProgress) Load(_ context.Context) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return nil, nil
	}
	cp := *m.rec
	return &cp, nil
}

func (m *MemoryProgress) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec != nil && rec.Revision <= m.rec.Revision {
		return ErrStaleRecord
	}
	m.rec = &rec
	m.Saves++
	return nil
}

func (m *MemoryProgress) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}
