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

func TestLogNutrition_Created(t *testing.T) {
	uid := uuid.Must(uuid.NewV4())
	f := &fakes{nutrition: fakeNutritionSvc{
		logFn: func(_ context.Context, _ uuid.UUID, in model.NewNutritionLog) (*model.NutritionLog, error) {
			require.Equal(t, 150.0, in.Protein)
			require.Equal(t, 2000.0, in.Calories)
			return &model.NutritionLog{
				ID: 1, UserID: uid, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				Protein: in.Protein, Carbs: in.Carbs, Fats: in.Fats, Calories: in.Calories,
			}, nil
		},
	}}
	h := newTestServer(f)

	body := `{"date": "2025-06-01", "protein": 150, "carbs": 200, "fats": 70, "calories": 2000}`
	rec := doAuthed(t, h, uid, http.MethodPost, "/nutrition", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got nutritionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, int64(1), got.ID)
	require.Equal(t, "2025-06-01T00:00:00Z", got.Date)
	require.Equal(t, 150.0, got.Protein)
}

func TestLogNutrition_MissingMacros(t *testing.T) {
	h := newTestServer(&fakes{})
	uid := uuid.Must(uuid.NewV4())

	rec := doAuthed(t, h, uid, http.MethodPost, "/nutrition", `{"protein": 150, "carbs": 200}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "protein, carbs, fats and calories are required")
}

func TestLogNutrition_TypeMismatch(t *testing.T) {
	h := newTestServer(&fakes{})
	uid := uuid.Must(uuid.NewV4())

	rec := doAuthed(t, h, uid, http.MethodPost, "/nutrition", `{"protein": "a lot", "carbs": 200, "fats": 70, "calories": 2000}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Error, `field "protein"`)
}

func TestUpdateNutrition_Partial(t *testing.T) {
	uid := uuid.Must(uuid.NewV4())
	var got model.NutritionUpdate
	f := &fakes{nutrition: fakeNutritionSvc{
		updateFn: func(_ context.Context, _ uuid.UUID, id int64, upd model.NutritionUpdate) (*model.NutritionLog, error) {
			got = upd
			return &model.NutritionLog{ID: id, UserID: uid, Date: time.Now().UTC(), Protein: 160}, nil
		},
	}}
	h := newTestServer(f)

	rec := doAuthed(t, h, uid, http.MethodPut, "/nutrition/1", `{"protein": 160}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Protein)
	require.Equal(t, 160.0, *got.Protein)
	require.Nil(t, got.Carbs)
	require.Nil(t, got.Date)
}
