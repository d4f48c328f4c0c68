package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// WorkoutRepo implements WorkoutRepository using PostgreSQL.
type WorkoutRepo struct{ db *DB }

// NewWorkoutRepo constructs a workout repository.
func NewWorkoutRepo(db *DB) *WorkoutRepo { return &WorkoutRepo{db: db} }

// checkTemplateOwned verifies a referenced template belongs to the user.
// Ownership chains never cross users.
func checkTemplateOwned(ctx context.Context, tx pgx.Tx, userID uuid.UUID, templateID int64) error {
	const q = `SELECT 1 FROM workout_templates WHERE id=$1 AND user_id=$2`
	var one int
	if err := tx.QueryRow(ctx, q, templateID, userID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: template_id does not reference an owned template", errs.ErrValidation)
		}
		return err
	}
	return nil
}

// insertExercises writes the child exercises and sets for a workout,
// filling assigned IDs in place.
func insertExercises(ctx context.Context, tx pgx.Tx, workoutID int64, exs []model.WorkoutExercise) error {
	const insEx = `INSERT INTO workout_exercises (workout_id, name) VALUES ($1, $2) RETURNING id`
	const insSet = `INSERT INTO workout_sets (exercise_id, set_number, reps, weight) VALUES ($1, $2, $3, $4) RETURNING id`

	for i := range exs {
		if err := tx.QueryRow(ctx, insEx, workoutID, exs[i].Name).Scan(&exs[i].ID); err != nil {
			return err
		}
		for j := range exs[i].Sets {
			st := &exs[i].Sets[j]
			if err := tx.QueryRow(ctx, insSet, exs[i].ID, st.SetNumber, st.Reps, st.Weight).Scan(&st.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Create inserts the workout and all nested rows atomically.
func (r *WorkoutRepo) Create(ctx context.Context, w *model.Workout) (err error) {
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

	if w.TemplateID != nil {
		if err = checkTemplateOwned(ctx, tx, w.UserID, *w.TemplateID); err != nil {
			return err
		}
	}

	const ins = `INSERT INTO workouts (user_id, template_id, date) VALUES ($1, $2, $3) RETURNING id`
	if err = tx.QueryRow(ctx, ins, w.UserID, w.TemplateID, w.Date).Scan(&w.ID); err != nil {
		return err
	}
	return insertExercises(ctx, tx, w.ID, w.Exercises)
}

// ListSince returns workouts dated at or after cutoff, newest first.
func (r *WorkoutRepo) ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]model.Workout, error) {
	const q = `
SELECT id, template_id, date FROM workouts
WHERE user_id=$1 AND date >= $2
ORDER BY date DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Workout{}
	ids := []int64{}
	for rows.Next() {
		w := model.Workout{UserID: userID}
		if err := rows.Scan(&w.ID, &w.TemplateID, &w.Date); err != nil {
			return nil, err
		}
		out = append(out, w)
		ids = append(ids, w.ID)
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

// Get returns a single owned workout with children.
func (r *WorkoutRepo) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.Workout, error) {
	const q = `SELECT id, template_id, date FROM workouts WHERE id=$1 AND user_id=$2`
	w := model.Workout{UserID: userID}
	if err := r.db.Pool.QueryRow(ctx, q, id, userID).Scan(&w.ID, &w.TemplateID, &w.Date); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}

	children, err := r.loadExercises(ctx, []int64{w.ID})
	if err != nil {
		return nil, err
	}
	w.Exercises = children[w.ID]
	return &w, nil
}

// Update applies a partial update; a non-nil exercise list replaces all
// existing children in the same transaction.
func (r *WorkoutRepo) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.WorkoutUpdate) (err error) {
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

	const sel = `SELECT 1 FROM workouts WHERE id=$1 AND user_id=$2 FOR UPDATE`
	var one int
	if err = tx.QueryRow(ctx, sel, id, userID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	if upd.TemplateID != nil {
		if err = checkTemplateOwned(ctx, tx, userID, *upd.TemplateID); err != nil {
			return err
		}
	}
	if upd.Date != nil || upd.TemplateID != nil {
		const uq = `
UPDATE workouts SET date=COALESCE($3, date), template_id=COALESCE($4, template_id)
WHERE id=$1 AND user_id=$2`
		if _, err = tx.Exec(ctx, uq, id, userID, upd.Date, upd.TemplateID); err != nil {
			return err
		}
	}
	if upd.ClearTemplate {
		const cq = `UPDATE workouts SET template_id=NULL WHERE id=$1 AND user_id=$2`
		if _, err = tx.Exec(ctx, cq, id, userID); err != nil {
			return err
		}
	}

	if upd.Exercises != nil {
		// delete-all-then-insert: sets go with their exercises by cascade
		const del = `DELETE FROM workout_exercises WHERE workout_id=$1`
		if _, err = tx.Exec(ctx, del, id); err != nil {
			return err
		}
		exs := make([]model.WorkoutExercise, len(upd.Exercises))
		for i, ex := range upd.Exercises {
			exs[i].Name = ex.Name
			exs[i].Sets = make([]model.WorkoutSet, len(ex.Sets))
			for j, st := range ex.Sets {
				exs[i].Sets[j] = model.WorkoutSet{SetNumber: st.SetNumber, Reps: st.Reps, Weight: st.Weight}
			}
		}
		if err = insertExercises(ctx, tx, id, exs); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an owned workout; children go by cascade.
func (r *WorkoutRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	const q = `DELETE FROM workouts WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// loadExercises fetches exercises and sets for the given workout IDs,
// grouped by workout.
func (r *WorkoutRepo) loadExercises(ctx context.Context, workoutIDs []int64) (map[int64][]model.WorkoutExercise, error) {
	const qEx = `
SELECT id, workout_id, name FROM workout_exercises
WHERE workout_id = ANY($1)
ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, qEx, workoutIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byWorkout := map[int64][]model.WorkoutExercise{}
	owner := map[int64]int64{} // exercise id -> workout id
	exIDs := []int64{}
	for rows.Next() {
		var ex model.WorkoutExercise
		var workoutID int64
		if err := rows.Scan(&ex.ID, &workoutID, &ex.Name); err != nil {
			return nil, err
		}
		ex.Sets = []model.WorkoutSet{}
		byWorkout[workoutID] = append(byWorkout[workoutID], ex)
		owner[ex.ID] = workoutID
		exIDs = append(exIDs, ex.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(exIDs) == 0 {
		return byWorkout, nil
	}

	const qSet = `
SELECT id, exercise_id, set_number, reps, weight FROM workout_sets
WHERE exercise_id = ANY($1)
ORDER BY set_number, id`
	srows, err := r.db.Pool.Query(ctx, qSet, exIDs)
	if err != nil {
		return nil, err
	}
	defer srows.Close()

	for srows.Next() {
		var st model.WorkoutSet
		var exID int64
		if err := srows.Scan(&st.ID, &exID, &st.SetNumber, &st.Reps, &st.Weight); err != nil {
			return nil, err
		}
		workoutID := owner[exID]
		exs := byWorkout[workoutID]
		for i := range exs {
			if exs[i].ID == exID {
				exs[i].Sets = append(exs[i].Sets, st)
				break
			}
		}
	}
	return byWorkout, srows.Err()
}
