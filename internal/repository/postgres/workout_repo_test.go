package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestWorkoutRepo_Create_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWorkoutRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	w := &model.Workout{
		UserID: userID,
		Date:   date,
		Exercises: []model.WorkoutExercise{
			{Name: "Bench Press", Sets: []model.WorkoutSet{
				{SetNumber: 1, Reps: 8, Weight: 60},
				{SetNumber: 2, Reps: 6, Weight: 65},
			}},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO workouts \(user_id, template_id, date\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs(userID, pgxmock.AnyArg(), date).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery(`INSERT INTO workout_exercises \(workout_id, name\) VALUES \(\$1, \$2\) RETURNING id`).
		WithArgs(int64(10), "Bench Press").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(`INSERT INTO workout_sets \(exercise_id, set_number, reps, weight\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id`).
		WithArgs(int64(100), 1, 8, float64(60)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1000)))
	mock.ExpectQuery(`INSERT INTO workout_sets`).
		WithArgs(int64(100), 2, 6, float64(65)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1001)))
	mock.ExpectCommit()

	require.NoError(t, r.Create(ctx, w))
	require.Equal(t, int64(10), w.ID)
	require.Equal(t, int64(100), w.Exercises[0].ID)
	require.Equal(t, int64(1001), w.Exercises[0].Sets[1].ID)
}

func TestWorkoutRepo_Create_TemplateNotOwned(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWorkoutRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	tmplID := int64(7)

	w := &model.Workout{UserID: userID, TemplateID: &tmplID, Date: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM workout_templates WHERE id=\$1 AND user_id=\$2`).
		WithArgs(tmplID, userID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := r.Create(ctx, w)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestWorkoutRepo_Get_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWorkoutRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, template_id, date FROM workouts WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(99), userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.Get(ctx, userID, 99)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWorkoutRepo_Update_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWorkoutRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM workouts WHERE id=\$1 AND user_id=\$2 FOR UPDATE`).
		WithArgs(int64(5), userID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	date := time.Now().UTC()
	err := r.Update(ctx, userID, 5, model.WorkoutUpdate{Date: &date})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWorkoutRepo_Update_ClearsTemplate(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWorkoutRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM workouts WHERE id=\$1 AND user_id=\$2 FOR UPDATE`).
		WithArgs(int64(5), userID).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec(`UPDATE workouts SET template_id=NULL WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(5), userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, r.Update(ctx, userID, 5, model.WorkoutUpdate{ClearTemplate: true}))
}

func TestWorkoutRepo_Update_ReplacesExercises(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWorkoutRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	upd := model.WorkoutUpdate{
		Exercises: []model.NewExercise{
			{Name: "Squat", Sets: []model.NewSet{{SetNumber: 1, Reps: 5, Weight: 100}}},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM workouts WHERE id=\$1 AND user_id=\$2 FOR UPDATE`).
		WithArgs(int64(5), userID).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM workout_exercises WHERE workout_id=\$1`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectQuery(`INSERT INTO workout_exercises`).
		WithArgs(int64(5), "Squat").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(200)))
	mock.ExpectQuery(`INSERT INTO workout_sets`).
		WithArgs(int64(200), 1, 5, float64(100)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2000)))
	mock.ExpectCommit()

	require.NoError(t, r.Update(ctx, userID, 5, upd))
}

func TestWorkoutRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWorkoutRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM workouts WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(3), userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, userID, 3))

	mock.ExpectExec(`DELETE FROM workouts WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(3), userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, userID, 3), errs.ErrNotFound)
}

func TestWorkoutRepo_ListSince_LoadsChildren(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWorkoutRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	cutoff := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, template_id, date FROM workouts WHERE user_id=\$1 AND date >= \$2`).
		WithArgs(userID, cutoff).
		WillReturnRows(pgxmock.NewRows([]string{"id", "template_id", "date"}).
			AddRow(int64(1), nil, date))
	mock.ExpectQuery(`SELECT id, workout_id, name FROM workout_exercises WHERE workout_id = ANY\(\$1\)`).
		WithArgs([]int64{1}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "workout_id", "name"}).
			AddRow(int64(11), int64(1), "Deadlift"))
	mock.ExpectQuery(`SELECT id, exercise_id, set_number, reps, weight FROM workout_sets WHERE exercise_id = ANY\(\$1\)`).
		WithArgs([]int64{11}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "exercise_id", "set_number", "reps", "weight"}).
			AddRow(int64(111), int64(11), 1, 5, 120.0))

	out, err := r.ListSince(ctx, userID, cutoff)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Exercises, 1)
	require.Len(t, out[0].Exercises[0].Sets, 1)
	require.Equal(t, "Deadlift", out[0].Exercises[0].Name)
}
