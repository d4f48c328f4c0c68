package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// WeightRepo implements WeightRepository using PostgreSQL.
type WeightRepo struct{ db *DB }

// NewWeightRepo constructs a weight log repository.
func NewWeightRepo(db *DB) *WeightRepo { return &WeightRepo{db: db} }

// Create inserts a weight log row.
func (r *WeightRepo) Create(ctx context.Context, l *model.WeightLog) error {
	const q = `INSERT INTO weight_logs (user_id, date, weight) VALUES ($1, $2, $3) RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, l.UserID, l.Date, l.Weight).Scan(&l.ID)
}

// ListSince returns logs dated at or after cutoff, newest first.
func (r *WeightRepo) ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]model.WeightLog, error) {
	const q = `
SELECT id, date, weight FROM weight_logs
WHERE user_id=$1 AND date >= $2
ORDER BY date DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WeightLog{}
	for rows.Next() {
		l := model.WeightLog{UserID: userID}
		if err := rows.Scan(&l.ID, &l.Date, &l.Weight); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get returns a single owned log.
func (r *WeightRepo) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.WeightLog, error) {
	const q = `SELECT id, date, weight FROM weight_logs WHERE id=$1 AND user_id=$2`
	l := model.WeightLog{UserID: userID}
	if err := r.db.Pool.QueryRow(ctx, q, id, userID).Scan(&l.ID, &l.Date, &l.Weight); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &l, nil
}

// Update applies a partial update; nil fields are left untouched.
func (r *WeightRepo) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.WeightUpdate) error {
	const q = `
UPDATE weight_logs SET
  date   = COALESCE($3, date),
  weight = COALESCE($4, weight)
WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID, upd.Date, upd.Weight)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an owned log.
func (r *WeightRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	const q = `DELETE FROM weight_logs WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
