package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.appendEvent(ctx, SessionEventsTable.Name,
		[]string{"session_id", "action", "video_id", "total", "score", "correct_answers", "incorrect_answers", "hints_used", "hearts_remaining", "ended_early"},
		[]any{data.SessionID, data.Action, data.VideoID, data.Total, data.Score, data.CorrectAnswers, data.IncorrectAnswers, data.HintsUsed, data.HeartsRemaining, data.EndedEarly},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	q := sqlite.Select(
		"sequence", "timestamp", "session_id", "action", "video_id", "total", "score",
		"correct_answers", "incorrect_answers", "hints_used", "hearts_remaining", "ended_early",
	).
		From(sqlite.Table(SessionEventsTable.Name)).
		Where(entsql.EQ("action", SessionEnd)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		q = q.Limit(limit)
	}

	rows, err := selectRows(ctx, r.db, q)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(
			&s.Sequence, &s.Timestamp, &s.SessionID, &s.Action, &s.VideoID, &s.Total, &s.Score,
			&s.CorrectAnswers, &s.IncorrectAnswers, &s.HintsUsed, &s.HeartsRemaining, &s.EndedEarly,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
