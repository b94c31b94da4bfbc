package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/recall/internal/quiz"
)

// ProgressRepo persists one quiz progress record under a fixed key.
type ProgressRepo struct {
	db  *sql.DB
	key string
}

var _ quiz.ProgressStore = (*ProgressRepo)(nil)

// Key returns the record key.
func (r *ProgressRepo) Key() string { return r.key }

// Load returns the saved record. A missing row, or one whose data cannot
// be decoded, is reported as no saved progress; an undecodable row is
// deleted so later saves start from a clean slate.
func (r *ProgressRepo) Load(ctx context.Context) (*quiz.Record, error) {
	q := sqlite.Select("revision", "data").
		From(sqlite.Table(ProgressTable.Name)).
		Where(entsql.EQ("key", r.key)).
		Limit(1)
	query, args := q.Query()

	var (
		revision int64
		data     []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&revision, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}

	var rec quiz.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("discarding unreadable progress record", "key", r.key, "revision", revision, "err", err)
		if err := r.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	rec.Revision = revision
	return &rec, nil
}

// Save upserts the record. The update only applies when rec.Revision is
// newer than the stored revision; otherwise quiz.ErrStaleRecord is returned.
func (r *ProgressRepo) Save(ctx context.Context, rec quiz.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	q := sqlite.Insert(ProgressTable.Name).
		Columns("key", "revision", "data", "updated_at").
		Values(r.key, rec.Revision, string(data), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
			entsql.UpdateWhere(entsql.LT("revision", rec.Revision)),
		)
	res, err := execQuery(ctx, r.db, q)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if n == 0 {
		return quiz.ErrStaleRecord
	}
	return nil
}

// Clear removes the record.
func (r *ProgressRepo) Clear(ctx context.Context) error {
	q := sqlite.Delete(ProgressTable.Name).Where(entsql.EQ("key", r.key))
	if _, err := execQuery(ctx, r.db, q); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
