package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// NutritionRepo implements NutritionRepository using PostgreSQL.
type NutritionRepo struct{ db *DB }

// NewNutritionRepo constructs a nutrition log repository.
func NewNutritionRepo(db *DB) *NutritionRepo { return &NutritionRepo{db: db} }

// Create inserts a nutrition log row.
func (r *NutritionRepo) Create(ctx context.Context, l *model.NutritionLog) error {
	const q = `
INSERT INTO nutrition_logs (user_id, date, protein, carbs, fats, calories)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, l.UserID, l.Date, l.Protein, l.Carbs, l.Fats, l.Calories).Scan(&l.ID)
}

// ListSince returns logs dated at or after cutoff, newest first.
func (r *NutritionRepo) ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]model.NutritionLog, error) {
	const q = `
SELECT id, date, protein, carbs, fats, calories FROM nutrition_logs
WHERE user_id=$1 AND date >= $2
ORDER BY date DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.NutritionLog{}
	for rows.Next() {
		l := model.NutritionLog{UserID: userID}
		if err := rows.Scan(&l.ID, &l.Date, &l.Protein, &l.Carbs, &l.Fats, &l.Calories); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get returns a single owned log.
func (r *NutritionRepo) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.NutritionLog, error) {
	const q = `
SELECT id, date, protein, carbs, fats, calories FROM nutrition_logs
WHERE id=$1 AND user_id=$2`
	l := model.NutritionLog{UserID: userID}
	if err := r.db.Pool.QueryRow(ctx, q, id, userID).Scan(&l.ID, &l.Date, &l.Protein, &l.Carbs, &l.Fats, &l.Calories); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &l, nil
}

// Update applies a partial update; nil fields are left untouched.
func (r *NutritionRepo) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.NutritionUpdate) error {
	const q = `
UPDATE nutrition_logs SET
  date     = COALESCE($3, date),
  protein  = COALESCE($4, protein),
  carbs    = COALESCE($5, carbs),
  fats     = COALESCE($6, fats),
  calories = COALESCE($7, calories)
WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID, upd.Date, upd.Protein, upd.Carbs, upd.Fats, upd.Calories)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an owned log.
func (r *NutritionRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	const q = `DELETE FROM nutrition_logs WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
