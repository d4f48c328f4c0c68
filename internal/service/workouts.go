package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/avolkov/fittrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// DefaultWorkoutLookbackDays bounds workout listings when no filter is given.
const DefaultWorkoutLookbackDays = 30

// WorkoutService defines operations over logged workouts.
type WorkoutService interface {
	// Log validates and stores a workout with its exercises and sets atomically.
	Log(ctx context.Context, userID uuid.UUID, in model.NewWorkout) (*model.Workout, error)
	// List returns workouts from the last `days` days, newest first.
	List(ctx context.Context, userID uuid.UUID, days int) ([]model.Workout, error)
	// Get returns a single owned workout.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.Workout, error)
	// Update applies a partial update; a present exercise list replaces all children.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.WorkoutUpdate) (*model.Workout, error)
	// Delete removes an owned workout and its children.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type WorkoutServiceImpl struct {
	repo repository.WorkoutRepository
}

// NewWorkoutService constructs WorkoutService.
func NewWorkoutService(repo repository.WorkoutRepository) *WorkoutServiceImpl {
	return &WorkoutServiceImpl{repo: repo}
}

// validateExercises checks the nested exercise/set structure before any write.
func validateExercises(exs []model.NewExercise) error {
	if len(exs) == 0 {
		return fmt.Errorf("%w: at least one exercise is required", errs.ErrValidation)
	}
	for i := range exs {
		if exs[i].Name == "" || len(exs[i].Sets) == 0 {
			return fmt.Errorf("%w: each exercise needs a name and at least one set", errs.ErrValidation)
		}
	}
	return nil
}

// Log validates and stores a workout. Date defaults to now when zero.
func (s *WorkoutServiceImpl) Log(ctx context.Context, userID uuid.UUID, in model.NewWorkout) (*model.Workout, error) {
	if err := validateExercises(in.Exercises); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	w := &model.Workout{
		UserID:     userID,
		TemplateID: in.TemplateID,
		Date:       date,
		Exercises:  make([]model.WorkoutExercise, len(in.Exercises)),
	}
	for i, ex := range in.Exercises {
		w.Exercises[i].Name = ex.Name
		w.Exercises[i].Sets = make([]model.WorkoutSet, len(ex.Sets))
		for j, st := range ex.Sets {
			w.Exercises[i].Sets[j] = model.WorkoutSet{SetNumber: st.SetNumber, Reps: st.Reps, Weight: st.Weight}
		}
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// List returns workouts from the lookback window, newest first.
func (s *WorkoutServiceImpl) List(ctx context.Context, userID uuid.UUID, days int) ([]model.Workout, error) {
	if days <= 0 {
		days = DefaultWorkoutLookbackDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.ListSince(ctx, userID, cutoff)
}

// Get returns a single owned workout.
func (s *WorkoutServiceImpl) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.Workout, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update validates present fields, applies the update and returns the new state.
func (s *WorkoutServiceImpl) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.WorkoutUpdate) (*model.Workout, error) {
	if upd.Exercises != nil {
		if err := validateExercises(upd.Exercises); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, userID, id, upd); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes an owned workout.
func (s *WorkoutServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
