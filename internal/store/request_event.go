package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	err := r.appendEvent(ctx, RequestEventsTable.Name,
		[]string{"service", "operation", "model", "status_code", "input_tokens", "output_tokens", "latency_ms", "success", "error_message"},
		[]any{data.Service, data.Operation, data.Model, data.StatusCode, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentRequests(ctx context.Context, limit int) ([]RequestEvent, error) {
	q := sqlite.Select(
		"sequence", "timestamp", "service", "operation", "model", "status_code",
		"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	).
		From(sqlite.Table(RequestEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		q = q.Limit(limit)
	}

	rows, err := selectRows(ctx, r.db, q)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var out []RequestEvent
	for rows.Next() {
		var e RequestEvent
		if err := rows.Scan(
			&e.Sequence, &e.Timestamp, &e.Service, &e.Operation, &e.Model, &e.StatusCode,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
