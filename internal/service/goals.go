package service

import (
	"context"
	"fmt"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/avolkov/fittrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// GoalService defines operations over fitness goals.
type GoalService interface {
	// Create validates enumeration and target constraints and stores a goal.
	Create(ctx context.Context, userID uuid.UUID, in model.NewGoal) (*model.Goal, error)
	// List returns goals, optionally filtered by completion status.
	List(ctx context.Context, userID uuid.UUID, completed *bool) ([]model.Goal, error)
	// Get returns a single owned goal.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.Goal, error)
	// Update applies a partial update with the same constraints as create.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.GoalUpdate) (*model.Goal, error)
	// Delete removes an owned goal.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type GoalServiceImpl struct {
	repo repository.GoalRepository
}

// NewGoalService constructs GoalService.
func NewGoalService(repo repository.GoalRepository) *GoalServiceImpl {
	return &GoalServiceImpl{repo: repo}
}

func validGoalType(t string) bool {
	return t == model.GoalTypeWeight || t == model.GoalTypeCalories || t == model.GoalTypeWorkoutCount
}

func validPeriod(p string) bool {
	return p == model.PeriodMonth || p == model.PeriodYear
}

// Create validates and stores a goal. CurrentValue starts at 0, Completed false.
func (s *GoalServiceImpl) Create(ctx context.Context, userID uuid.UUID, in model.NewGoal) (*model.Goal, error) {
	if !validGoalType(in.GoalType) {
		return nil, fmt.Errorf("%w: goal_type must be one of weight, calories, workout_count", errs.ErrValidation)
	}
	if !validPeriod(in.Period) {
		return nil, fmt.Errorf("%w: period must be month or year", errs.ErrValidation)
	}
	if in.TargetValue <= 0 {
		return nil, fmt.Errorf("%w: target_value must be positive", errs.ErrValidation)
	}

	g := &model.Goal{
		UserID:      userID,
		GoalType:    in.GoalType,
		TargetValue: in.TargetValue,
		Period:      in.Period,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// List returns goals, optionally filtered by completion status.
func (s *GoalServiceImpl) List(ctx context.Context, userID uuid.UUID, completed *bool) ([]model.Goal, error) {
	return s.repo.List(ctx, userID, completed)
}

// Get returns a single owned goal.
func (s *GoalServiceImpl) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.Goal, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update re-checks constraints on supplied fields before any write.
func (s *GoalServiceImpl) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.GoalUpdate) (*model.Goal, error) {
	if upd.TargetValue != nil && *upd.TargetValue <= 0 {
		return nil, fmt.Errorf("%w: target_value must be positive", errs.ErrValidation)
	}
	if upd.Period != nil && !validPeriod(*upd.Period) {
		return nil, fmt.Errorf("%w: period must be month or year", errs.ErrValidation)
	}
	if err := s.repo.Update(ctx, userID, id, upd); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes an owned goal.
func (s *GoalServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
