package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// eventRepo implements EventRepo on top of the migrated tables and the
// global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// appendEvent inserts one row into an event table, assigning it the next
// global sequence number and the current time.
func (r *eventRepo) appendEvent(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q := sqlite.Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, values...)...)
	if _, err := execQuery(ctx, r.db, q); err != nil {
		return err
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.appendEvent(ctx, AnswerEventsTable.Name,
		[]string{"session_id", "question_index", "question_text", "selected", "correct_index", "correct", "hearts_remaining"},
		[]any{data.SessionID, data.QuestionIndex, data.QuestionText, data.Selected, data.CorrectIndex, data.Correct, data.HeartsRemaining},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	err := r.appendEvent(ctx, HintEventsTable.Name,
		[]string{"session_id", "query", "video_id", "clip_start", "clip_end", "source", "success", "error_message"},
		[]any{data.SessionID, data.Query, data.VideoID, data.Start, data.End, data.Source, data.Success, data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}
