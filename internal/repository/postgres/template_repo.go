package postgres

import (
	"context"
	"errors"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// TemplateRepo implements TemplateRepository using PostgreSQL.
type TemplateRepo struct{ db *DB }

// NewTemplateRepo constructs a template repository.
func NewTemplateRepo(db *DB) *TemplateRepo { return &TemplateRepo{db: db} }

func insertTemplateExercises(ctx context.Context, tx pgx.Tx, templateID int64, exs []model.TemplateExercise) error {
	const ins = `
INSERT INTO template_exercises (template_id, name, sets, reps, alternatives)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range exs {
		ex := &exs[i]
		if err := tx.QueryRow(ctx, ins, templateID, ex.Name, ex.Sets, ex.Reps, ex.Alternatives).Scan(&ex.ID); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the template and all exercises atomically.
func (r *TemplateRepo) Create(ctx context.Context, t *model.WorkoutTemplate) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const ins = `INSERT INTO workout_templates (user_id, name) VALUES ($1, $2) RETURNING id, created_at`
	if err = tx.QueryRow(ctx, ins, t.UserID, t.Name).Scan(&t.ID, &t.CreatedAt); err != nil {
		return err
	}
	return insertTemplateExercises(ctx, tx, t.ID, t.Exercises)
}

// List returns all templates owned by the user, store order.
func (r *TemplateRepo) List(ctx context.Context, userID uuid.UUID) ([]model.WorkoutTemplate, error) {
	const q = `SELECT id, name, created_at FROM workout_templates WHERE user_id=$1 ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WorkoutTemplate{}
	ids := []int64{}
	for rows.Next() {
		t := model.WorkoutTemplate{UserID: userID}
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	children, err := r.loadExercises(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Exercises = children[out[i].ID]
	}
	return out, nil
}

// Get returns a single owned template with exercises.
func (r *TemplateRepo) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.WorkoutTemplate, error) {
	const q = `SELECT id, name, created_at FROM workout_templates WHERE id=$1 AND user_id=$2`
	t := model.WorkoutTemplate{UserID: userID}
	if err := r.db.Pool.QueryRow(ctx, q, id, userID).Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}

	children, err := r.loadExercises(ctx, []int64{t.ID})
	if err != nil {
		return nil, err
	}
	t.Exercises = children[t.ID]
	return &t, nil
}

// Update applies a partial update; a non-nil exercise list replaces all
// existing children in the same transaction.
func (r *TemplateRepo) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.TemplateUpdate) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const sel = `SELECT 1 FROM workout_templates WHERE id=$1 AND user_id=$2 FOR UPDATE`
	var one int
	if err = tx.QueryRow(ctx, sel, id, userID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	if upd.Name != nil {
		const uq = `UPDATE workout_templates SET name=$3 WHERE id=$1 AND user_id=$2`
		if _, err = tx.Exec(ctx, uq, id, userID, *upd.Name); err != nil {
			return err
		}
	}

	if upd.Exercises != nil {
		const del = `DELETE FROM template_exercises WHERE template_id=$1`
		if _, err = tx.Exec(ctx, del, id); err != nil {
			return err
		}
		exs := make([]model.TemplateExercise, len(upd.Exercises))
		for i, ex := range upd.Exercises {
			exs[i] = model.TemplateExercise{Name: ex.Name, Sets: ex.Sets, Reps: ex.Reps, Alternatives: ex.Alternatives}
		}
		if err = insertTemplateExercises(ctx, tx, id, exs); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an owned template; exercises go by cascade.
func (r *TemplateRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	const q = `DELETE FROM workout_templates WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *TemplateRepo) loadExercises(ctx context.Context, templateIDs []int64) (map[int64][]model.TemplateExercise, error) {
	const q = `
SELECT id, template_id, name, sets, reps, alternatives FROM template_exercises
WHERE template_id = ANY($1)
ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q, templateIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byTemplate := map[int64][]model.TemplateExercise{}
	for rows.Next() {
		var ex model.TemplateExercise
		var templateID int64
		if err := rows.Scan(&ex.ID, &templateID, &ex.Name, &ex.Sets, &ex.Reps, &ex.Alternatives); err != nil {
			return nil, err
		}
		byTemplate[templateID] = append(byTemplate[templateID], ex)
	}
	return byTemplate, rows.Err()
}
