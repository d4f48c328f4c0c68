package postgres

import (
	"context"
	"errors"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// GoalRepo implements GoalRepository using PostgreSQL.
type GoalRepo struct{ db *DB }

// NewGoalRepo constructs a goal repository.
func NewGoalRepo(db *DB) *GoalRepo { return &GoalRepo{db: db} }

// Create inserts a goal row with defaults current_value=0, completed=false.
func (r *GoalRepo) Create(ctx context.Context, g *model.Goal) error {
	const q = `
INSERT INTO goals (user_id, goal_type, target_value, period)
VALUES ($1, $2, $3, $4) RETURNING id, current_value, completed, created_at`
	return r.db.Pool.QueryRow(ctx, q, g.UserID, g.GoalType, g.TargetValue, g.Period).
		Scan(&g.ID, &g.CurrentValue, &g.Completed, &g.CreatedAt)
}

// List returns the user's goals, optionally filtered by completion status.
func (r *GoalRepo) List(ctx context.Context, userID uuid.UUID, completed *bool) ([]model.Goal, error) {
	const qAll = `
SELECT id, goal_type, target_value, current_value, period, completed, created_at
FROM goals WHERE user_id=$1 ORDER BY id`
	const qFiltered = `
SELECT id, goal_type, target_value, current_value, period, completed, created_at
FROM goals WHERE user_id=$1 AND completed=$2 ORDER BY id`

	var (
		rows pgx.Rows
		err  error
	)
	if completed == nil {
		rows, err = r.db.Pool.Query(ctx, qAll, userID)
	} else {
		rows, err = r.db.Pool.Query(ctx, qFiltered, userID, *completed)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Goal{}
	for rows.Next() {
		g := model.Goal{UserID: userID}
		if err := rows.Scan(&g.ID, &g.GoalType, &g.TargetValue, &g.CurrentValue, &g.Period, &g.Completed, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Get returns a single owned goal.
func (r *GoalRepo) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.Goal, error) {
	const q = `
SELECT id, goal_type, target_value, current_value, period, completed, created_at
FROM goals WHERE id=$1 AND user_id=$2`
	g := model.Goal{UserID: userID}
	if err := r.db.Pool.QueryRow(ctx, q, id, userID).
		Scan(&g.ID, &g.GoalType, &g.TargetValue, &g.CurrentValue, &g.Period, &g.Completed, &g.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &g, nil
}

// Update applies a partial update; nil fields are left untouched.
func (r *GoalRepo) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.GoalUpdate) error {
	const q = `
UPDATE goals SET
  target_value  = COALESCE($3, target_value),
  current_value = COALESCE($4, current_value),
  period        = COALESCE($5, period),
  completed     = COALESCE($6, completed)
WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID, upd.TargetValue, upd.CurrentValue, upd.Period, upd.Completed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an owned goal.
func (r *GoalRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	const q = `DELETE FROM goals WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
