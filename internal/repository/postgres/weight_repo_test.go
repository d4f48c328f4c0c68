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

func TestWeightRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWeightRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	l := &model.WeightLog{UserID: userID, Date: date, Weight: 82.5}

	mock.ExpectQuery(`INSERT INTO weight_logs \(user_id, date, weight\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs(userID, date, 82.5).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	require.NoError(t, r.Create(ctx, l))
	require.Equal(t, int64(1), l.ID)
}

func TestWeightRepo_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWeightRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, date, weight FROM weight_logs WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(1), userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "date", "weight"}).
			AddRow(int64(1), time.Now(), 82.5))
	l, err := r.Get(ctx, userID, 1)
	require.NoError(t, err)
	require.Equal(t, 82.5, l.Weight)

	mock.ExpectQuery(`SELECT id, date, weight FROM weight_logs WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(2), userID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, userID, 2)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWeightRepo_Update_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWeightRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	w := 80.0

	mock.ExpectExec(`UPDATE weight_logs SET`).
		WithArgs(int64(9), userID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(ctx, userID, 9, model.WeightUpdate{Weight: &w}), errs.ErrNotFound)
}

func TestWeightRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewWeightRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM weight_logs WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(1), userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, userID, 1))
}
