package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/fittrack/internal/model"
)

func TestLogWeight_Created(t *testing.T) {
	uid := uuid.Must(uuid.NewV4())
	f := &fakes{weight: fakeWeightSvc{
		logFn: func(_ context.Context, _ uuid.UUID, in model.NewWeightLog) (*model.WeightLog, error) {
			require.Equal(t, 82.5, in.Weight)
			return &model.WeightLog{ID: 1, UserID: uid, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Weight: in.Weight}, nil
		},
	}}
	h := newTestServer(f)

	rec := doAuthed(t, h, uid, http.MethodPost, "/weight", `{"date": "2025-06-01", "weight": 82.5}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got weightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, int64(1), got.ID)
	require.Equal(t, 82.5, got.Weight)
	require.Equal(t, "2025-06-01T00:00:00Z", got.Date)
}

func TestLogWeight_MissingWeight(t *testing.T) {
	h := newTestServer(&fakes{})
	uid := uuid.Must(uuid.NewV4())

	rec := doAuthed(t, h, uid, http.MethodPost, "/weight", `{"date": "2025-06-01"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "weight is required")
}

func TestUpdateWeight_Partial(t *testing.T) {
	uid := uuid.Must(uuid.NewV4())
	var got model.WeightUpdate
	f := &fakes{weight: fakeWeightSvc{
		updateFn: func(_ context.Context, _ uuid.UUID, id int64, upd model.WeightUpdate) (*model.WeightLog, error) {
			got = upd
			return &model.WeightLog{ID: id, UserID: uid, Date: time.Now().UTC(), Weight: 81}, nil
		},
	}}
	h := newTestServer(f)

	rec := doAuthed(t, h, uid, http.MethodPut, "/weight/1", `{"weight": 81}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Weight)
	require.Nil(t, got.Date)
}

func TestDeleteWeight_NoContent(t *testing.T) {
	h := newTestServer(&fakes{})
	rec := doAuthed(t, h, uuid.Must(uuid.NewV4()), http.MethodDelete, "/weight/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}
